package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/masmgr/gitdepgraph/internal/objstore"
)

// LooseReader locates commits by scanning the loose objects of a repository.
// Packed objects are not visible to it; use GoGitReader for packed repositories.
type LooseReader struct {
	store   *objstore.Store
	opts    ReadOptions
	filter  *pathFilter
	commits map[plumbing.Hash]*objstore.Commit // parsed during FindCommits, reused by BuildGraph
}

// NewLooseReader opens the object store of the repository at opts.RepoPath.
func NewLooseReader(opts ReadOptions) (*LooseReader, error) {
	store, err := objstore.Open(opts.RepoPath, objstore.Options{
		MaxDepth:     opts.MaxDepth,
		MatchMode:    opts.MatchMode,
		CacheSize:    opts.CacheSize,
		OnUnreadable: opts.OnUnreadable,
	})
	if err != nil {
		return nil, err
	}
	filter, err := newPathFilter(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}
	return &LooseReader{
		store:   store,
		opts:    opts,
		filter:  filter,
		commits: make(map[plumbing.Hash]*objstore.Commit),
	}, nil
}

// Store returns the underlying object store.
func (r *LooseReader) Store() *objstore.Store {
	return r.store
}

// FindCommits decodes every loose object and keeps the commits whose tree contains target.
// Objects that cannot be read are reported through OnSkip and left out; they never abort the scan.
func (r *LooseReader) FindCommits(ctx context.Context, target string) (CommitSet, error) {
	hashes, err := r.store.ListObjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}

	result := make(CommitSet)
	for i, h := range hashes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c, ok := r.readCommitForScan(h)
		if ok {
			match, err := r.store.ContainsPath(c.Tree, target)
			switch {
			case match == objstore.MatchFound:
				result.Add(h)
			case err != nil:
				r.skip(h, fmt.Errorf("resolve tree %s: %w", c.Tree, err))
			}
		}

		if r.opts.OnProgress != nil {
			r.opts.OnProgress(i + 1)
		}
	}
	return result, nil
}

// readCommitForScan decodes h and parses it when it is a commit.
// Non-commits are skipped silently; read and parse failures are reported.
func (r *LooseReader) readCommitForScan(h plumbing.Hash) (*objstore.Commit, bool) {
	obj, err := r.store.Decode(h)
	if err != nil {
		r.skip(h, err)
		return nil, false
	}
	if obj.Kind != plumbing.CommitObject {
		return nil, false
	}

	c, err := objstore.ParseCommit(obj.Payload)
	if err != nil {
		r.skip(h, &objstore.ObjectError{Op: "parse commit", Hash: h, Err: err})
		return nil, false
	}
	c.Hash = h
	r.commits[h] = c
	return c, true
}

// BuildGraph records the full parent list of every commit in the set.
func (r *LooseReader) BuildGraph(ctx context.Context, commits CommitSet) (*CommitGraph, error) {
	graph := NewCommitGraph()
	for _, h := range commits.Sorted() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := r.commit(h)
		if err != nil {
			return nil, err
		}
		graph.Add(h, c.Parents)
	}
	return graph, nil
}

// ListFiles returns the filtered file list of the commit's tree.
func (r *LooseReader) ListFiles(ctx context.Context, commit plumbing.Hash) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := r.commit(commit)
	if err != nil {
		return nil, err
	}
	files, err := r.store.ListFiles(c.Tree)
	if err != nil {
		return nil, fmt.Errorf("list files of %s: %w", commit, err)
	}
	return r.filter.apply(files)
}

func (r *LooseReader) commit(h plumbing.Hash) (*objstore.Commit, error) {
	if c, ok := r.commits[h]; ok {
		return c, nil
	}
	c, err := r.store.ReadCommit(h)
	if err != nil {
		return nil, err
	}
	r.commits[h] = c
	return c, nil
}

func (r *LooseReader) skip(h plumbing.Hash, err error) {
	if r.opts.OnSkip != nil {
		r.opts.OnSkip(h, err)
	}
}

// IsSkippable reports whether err describes a per-object failure that a bulk scan may step over.
func IsSkippable(err error) bool {
	return errors.Is(err, objstore.ErrObjectNotFound) ||
		errors.Is(err, objstore.ErrCorruptObject) ||
		errors.Is(err, objstore.ErrUnexpectedKind) ||
		errors.Is(err, objstore.ErrResolutionTooDeep)
}
