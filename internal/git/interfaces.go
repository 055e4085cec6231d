package git

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// RepositoryReader finds the commits whose tree holds a file and the ancestry between them.
// This abstraction allows for easier testing and alternative object sources.
type RepositoryReader interface {
	// FindCommits returns every commit whose tree contains target.
	FindCommits(ctx context.Context, target string) (CommitSet, error)
	// BuildGraph records the full parent list of each commit. Edges to commits
	// outside the set are kept; renderers drop them with CommitGraph.Restrict.
	BuildGraph(ctx context.Context, commits CommitSet) (*CommitGraph, error)
	// ListFiles returns the paths in the tree of commit, after include/exclude filters.
	ListFiles(ctx context.Context, commit plumbing.Hash) ([]string, error)
}

// Compile-time interface conformance checks.
var (
	_ RepositoryReader = (*LooseReader)(nil)
	_ RepositoryReader = (*GoGitReader)(nil)
)

// NewReader opens the repository with the backend named in opts.
func NewReader(opts ReadOptions) (RepositoryReader, error) {
	switch opts.Backend {
	case BackendLoose, "":
		return NewLooseReader(opts)
	case BackendGoGit:
		return NewGoGitReader(opts)
	default:
		return nil, fmt.Errorf("unknown backend %q (expected %q or %q)", opts.Backend, BackendLoose, BackendGoGit)
	}
}

// ParseBackend parses a backend name.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "", "loose", "objects":
		return BackendLoose, nil
	case "gogit", "go-git":
		return BackendGoGit, nil
	default:
		return "", fmt.Errorf("unknown backend %q (expected loose or gogit)", s)
	}
}
