package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// JSONGraphWriter writes commit graph reports as JSON.
type JSONGraphWriter struct{}

// JSONGraphReport is the JSON output structure for a commit graph.
type JSONGraphReport struct {
	RepoPath     string       `json:"repo"`
	Target       string       `json:"target"`
	GeneratedAt  string       `json:"generatedAt"`
	TotalCommits int          `json:"totalCommits"`
	TotalEdges   int          `json:"totalEdges"`
	Commits      []JSONCommit `json:"commits"`
}

// JSONCommit is the JSON output structure for a single commit node.
type JSONCommit struct {
	Hash      string   `json:"hash"`
	Parents   []string `json:"parents"`
	FileCount int      `json:"fileCount"`
	Files     []string `json:"files,omitempty"`
	Truncated bool     `json:"truncated,omitempty"`
}

// Write outputs the graph report as JSON. Parents are limited to commits in the graph.
func (w *JSONGraphWriter) Write(report *GraphReport, options OutputOptions) error {
	graph := report.Graph.Restrict()

	commits := make([]JSONCommit, 0, graph.Len())
	edges := 0
	for _, h := range graph.Sorted() {
		parents := make([]string, len(graph.Nodes[h]))
		for i, p := range graph.Nodes[h] {
			parents[i] = p.String()
		}
		edges += len(parents)

		all := report.Files[h]
		shown, truncated := labelFiles(all, options.MaxLabelFiles)
		commits = append(commits, JSONCommit{
			Hash:      h.String(),
			Parents:   parents,
			FileCount: len(all),
			Files:     shown,
			Truncated: truncated,
		})
	}

	jsonReport := JSONGraphReport{
		RepoPath:     report.RepoPath,
		Target:       report.Target,
		GeneratedAt:  report.GeneratedAt.Format(time.RFC3339),
		TotalCommits: len(commits),
		TotalEdges:   edges,
		Commits:      commits,
	}

	return writeJSON(jsonReport, options)
}

func writeJSON(data interface{}, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	return encodeJSON(out, data)
}

func encodeJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
