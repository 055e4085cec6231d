package output

import (
	"fmt"
	"io"
	"strings"
)

// DOTGraphWriter writes the commit graph as Graphviz DOT.
type DOTGraphWriter struct{}

// Write renders the report and writes it to the output path or stdout.
func (w *DOTGraphWriter) Write(report *GraphReport, options OutputOptions) error {
	dot := RenderDOT(report, options)

	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	if _, err := io.WriteString(out, dot); err != nil {
		return err
	}

	if file != nil && options.Echo {
		echo := stdout(options)
		fmt.Fprintf(echo, "Graphviz code written to %s.\n\n", options.OutputPath)
		fmt.Fprint(echo, dot)
	}
	return nil
}

// RenderDOT returns the DOT text for the report. Nodes are ordered by hash and
// only edges whose parent is itself a node are emitted.
func RenderDOT(report *GraphReport, options OutputOptions) string {
	shape := options.NodeShape
	if shape == "" {
		shape = DefaultNodeShape
	}
	fontSize := options.FontSize
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}

	graph := report.Graph.Restrict()

	var sb strings.Builder
	sb.WriteString("digraph G {\n")
	fmt.Fprintf(&sb, "    node [shape=%s, fontsize=%d];\n", dotID(shape), fontSize)

	for _, h := range graph.Sorted() {
		id := h.String()
		label := escapeDOT(id)
		shown, truncated := labelFiles(report.Files[h], options.MaxLabelFiles)
		for _, f := range shown {
			label += `\n` + escapeDOT(f)
		}
		if truncated {
			label += `\n...`
		}
		fmt.Fprintf(&sb, "    %q [label=\"%s\"];\n", id, label)
	}

	for _, e := range graph.Edges() {
		fmt.Fprintf(&sb, "    %q -> %q;\n", e.From.String(), e.To.String())
	}

	sb.WriteString("}\n")
	return sb.String()
}

// escapeDOT escapes a string for use inside a double-quoted DOT ID.
func escapeDOT(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// dotID quotes an attribute value unless it is a plain identifier.
func dotID(s string) string {
	for _, r := range s {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return `"` + escapeDOT(s) + `"`
		}
	}
	return s
}
