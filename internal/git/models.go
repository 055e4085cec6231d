package git

import (
	"bytes"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/masmgr/gitdepgraph/internal/objstore"
)

// Backend selects the object source used to read a repository.
type Backend string

const (
	// BackendLoose reads loose objects directly from .git/objects.
	BackendLoose Backend = "loose"
	// BackendGoGit reads through go-git, which also understands pack files.
	BackendGoGit Backend = "gogit"
)

// CommitSet is a set of commit hashes.
type CommitSet map[plumbing.Hash]struct{}

// NewCommitSet creates a set holding the given hashes.
func NewCommitSet(hashes ...plumbing.Hash) CommitSet {
	s := make(CommitSet, len(hashes))
	for _, h := range hashes {
		s.Add(h)
	}
	return s
}

// Add inserts h into the set.
func (s CommitSet) Add(h plumbing.Hash) {
	s[h] = struct{}{}
}

// Has reports whether h is in the set.
func (s CommitSet) Has(h plumbing.Hash) bool {
	_, ok := s[h]
	return ok
}

// Sorted returns the members in ascending hash order.
func (s CommitSet) Sorted() []plumbing.Hash {
	out := make([]plumbing.Hash, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	sortHashes(out)
	return out
}

// CommitGraph maps each commit to its parent hashes. Nodes are never removed;
// Restrict only drops edges.
type CommitGraph struct {
	Nodes map[plumbing.Hash][]plumbing.Hash
}

// NewCommitGraph creates an empty graph.
func NewCommitGraph() *CommitGraph {
	return &CommitGraph{Nodes: make(map[plumbing.Hash][]plumbing.Hash)}
}

// Add records the parents of a commit.
func (g *CommitGraph) Add(commit plumbing.Hash, parents []plumbing.Hash) {
	g.Nodes[commit] = append([]plumbing.Hash(nil), parents...)
}

// Has reports whether commit is a node of the graph.
func (g *CommitGraph) Has(commit plumbing.Hash) bool {
	_, ok := g.Nodes[commit]
	return ok
}

// Len returns the number of nodes.
func (g *CommitGraph) Len() int {
	return len(g.Nodes)
}

// Sorted returns the nodes in ascending hash order.
func (g *CommitGraph) Sorted() []plumbing.Hash {
	out := make([]plumbing.Hash, 0, len(g.Nodes))
	for h := range g.Nodes {
		out = append(out, h)
	}
	sortHashes(out)
	return out
}

// Edge is a child to parent link.
type Edge struct {
	From plumbing.Hash
	To   plumbing.Hash
}

// Edges returns every edge, ordered by child hash then parent order.
func (g *CommitGraph) Edges() []Edge {
	var edges []Edge
	for _, from := range g.Sorted() {
		for _, to := range g.Nodes[from] {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// Restrict returns a copy of the graph keeping only edges whose parent is also a node.
func (g *CommitGraph) Restrict() *CommitGraph {
	out := NewCommitGraph()
	for commit, parents := range g.Nodes {
		kept := make([]plumbing.Hash, 0, len(parents))
		for _, p := range parents {
			if g.Has(p) {
				kept = append(kept, p)
			}
		}
		out.Nodes[commit] = kept
	}
	return out
}

// SkipFunc receives objects that were excluded from a scan and why.
type SkipFunc func(h plumbing.Hash, err error)

// ReadOptions configures a repository reader.
type ReadOptions struct {
	RepoPath     string
	Backend      Backend
	MatchMode    objstore.MatchMode
	MaxDepth     int
	CacheSize    int
	Include      []string // Glob patterns applied to file listings
	Exclude      []string // Glob patterns applied to file listings
	OnSkip       SkipFunc
	OnProgress   func(scanned int)
	OnUnreadable func(path string, err error) // Object directories the loose scan stepped over
}

func sortHashes(hashes []plumbing.Hash) {
	sort.Slice(hashes, func(i, j int) bool {
		return bytes.Compare(hashes[i][:], hashes[j][:]) < 0
	})
}
