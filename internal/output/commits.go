package output

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// CommitListReport is the plain list of commits that contain a file.
type CommitListReport struct {
	RepoPath string
	Target   string
	Commits  []plumbing.Hash
}

type jsonCommitList struct {
	RepoPath string   `json:"repo"`
	Target   string   `json:"target"`
	Total    int      `json:"total"`
	Commits  []string `json:"commits"`
}

// WriteCommitList prints one hash per line, or a JSON document for FormatJSON.
func WriteCommitList(report *CommitListReport, options OutputOptions) error {
	hashes := make([]string, len(report.Commits))
	for i, h := range report.Commits {
		hashes[i] = h.String()
	}

	if options.Format == FormatJSON {
		return writeJSON(jsonCommitList{
			RepoPath: report.RepoPath,
			Target:   report.Target,
			Total:    len(hashes),
			Commits:  hashes,
		}, options)
	}

	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	for _, h := range hashes {
		if _, err := fmt.Fprintln(out, h); err != nil {
			return err
		}
	}
	return nil
}
