package git

import (
	"context"

	"github.com/go-git/go-git/v5/plumbing"
)

// MockReader is a test double for RepositoryReader.
// It allows tests to provide predefined commit data without needing a real Git repository.
type MockReader struct {
	Commits CommitSet
	Parents map[plumbing.Hash][]plumbing.Hash
	Files   map[plumbing.Hash][]string
	Error   error
}

// NewMockReader creates a new MockReader with the given data.
func NewMockReader(parents map[plumbing.Hash][]plumbing.Hash, files map[plumbing.Hash][]string, err error) *MockReader {
	commits := make(CommitSet, len(parents))
	for h := range parents {
		commits.Add(h)
	}
	return &MockReader{
		Commits: commits,
		Parents: parents,
		Files:   files,
		Error:   err,
	}
}

// FindCommits returns the predefined commit set or error.
func (m *MockReader) FindCommits(_ context.Context, _ string) (CommitSet, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Commits, nil
}

// BuildGraph returns the predefined parents of the requested commits.
func (m *MockReader) BuildGraph(_ context.Context, commits CommitSet) (*CommitGraph, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	graph := NewCommitGraph()
	for h := range commits {
		graph.Add(h, m.Parents[h])
	}
	return graph, nil
}

// ListFiles returns the predefined file list of a commit.
func (m *MockReader) ListFiles(_ context.Context, commit plumbing.Hash) ([]string, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Files[commit], nil
}

// Compile-time interface conformance check.
var _ RepositoryReader = (*MockReader)(nil)
