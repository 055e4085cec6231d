package output

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleGraphWriter writes commit graph reports to the console.
type ConsoleGraphWriter struct{}

// Write outputs a summary table of the graph.
func (w *ConsoleGraphWriter) Write(report *GraphReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	graph := report.Graph.Restrict()

	fmt.Fprintln(out, color.GreenString("Commit Graph for %s", report.Target))
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	fmt.Fprintf(out, "Generated: %s\n", report.GeneratedAt.Format(reportDateTimeLayout))
	fmt.Fprintf(out, "Total commits: %d, Total edges: %d\n\n", graph.Len(), len(graph.Edges()))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	// Write header
	fmt.Fprintln(tw, "#\tCommit\tParents\tFiles\tSample")

	// Write rows
	for i, h := range graph.Sorted() {
		parents := make([]string, len(graph.Nodes[h]))
		for j, p := range graph.Nodes[h] {
			parents[j] = shortHash(p.String())
		}
		parentCol := strings.Join(parents, ",")
		if parentCol == "" {
			parentCol = color.YellowString("(root)")
		}

		files := report.Files[h]
		shown, truncated := labelFiles(files, options.MaxLabelFiles)
		sample := strings.Join(limitTop(shown, 3), ", ")
		if truncated || len(shown) > 3 {
			sample += ", ..."
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
			i+1,
			color.CyanString(shortHash(h.String())),
			parentCol,
			len(files),
			sample,
		)
	}

	return tw.Flush()
}
