package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/masmgr/gitdepgraph/internal/objstore"
)

// GoGitReader answers the same queries as LooseReader through go-git,
// so packed objects are included.
type GoGitReader struct {
	repo   *gogit.Repository
	opts   ReadOptions
	filter *pathFilter
}

// NewGoGitReader opens the repository at opts.RepoPath with go-git.
func NewGoGitReader(opts ReadOptions) (*GoGitReader, error) {
	repo, err := gogit.PlainOpen(opts.RepoPath)
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", objstore.ErrNotRepository, opts.RepoPath)
		}
		return nil, err
	}
	filter, err := newPathFilter(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}
	return &GoGitReader{repo: repo, opts: opts, filter: filter}, nil
}

// FindCommits iterates every commit object in the repository storage.
func (r *GoGitReader) FindCommits(ctx context.Context, target string) (CommitSet, error) {
	iter, err := r.repo.CommitObjects()
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	result := make(CommitSet)
	scanned := 0
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		scanned++
		defer func() {
			if r.opts.OnProgress != nil {
				r.opts.OnProgress(scanned)
			}
		}()

		tree, err := c.Tree()
		if err != nil {
			r.skip(c.Hash, err)
			return nil
		}
		found, err := r.treeContains(tree, target)
		if err != nil {
			r.skip(c.Hash, err)
			return nil
		}
		if found {
			result.Add(c.Hash)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *GoGitReader) treeContains(tree *object.Tree, target string) (bool, error) {
	if r.opts.MatchMode == objstore.MatchFullPath {
		target = strings.Trim(target, "/")
		if target == "" {
			return false, nil
		}
		_, err := tree.FindEntry(target)
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, object.ErrEntryNotFound), errors.Is(err, object.ErrDirectoryNotFound):
			return false, nil
		default:
			return false, err
		}
	}

	walker := object.NewTreeWalker(tree, true, nil)
	defer walker.Close()
	for {
		name, _, err := walker.Next()
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if path.Base(name) == target {
			return true, nil
		}
	}
}

// BuildGraph records the full parent list of every commit in the set.
func (r *GoGitReader) BuildGraph(ctx context.Context, commits CommitSet) (*CommitGraph, error) {
	graph := NewCommitGraph()
	for _, h := range commits.Sorted() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := r.repo.CommitObject(h)
		if err != nil {
			return nil, fmt.Errorf("read commit %s: %w", h, err)
		}
		graph.Add(h, c.ParentHashes)
	}
	return graph, nil
}

// ListFiles returns every non-tree path of the commit's tree, after filters.
func (r *GoGitReader) ListFiles(ctx context.Context, commit plumbing.Hash) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := r.repo.CommitObject(commit)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", commit, err)
	}
	tree, err := c.Tree()
	if err != nil {
		return nil, fmt.Errorf("read tree of %s: %w", commit, err)
	}

	var files []string
	walker := object.NewTreeWalker(tree, true, nil)
	defer walker.Close()
	for {
		name, entry, err := walker.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("walk tree of %s: %w", commit, err)
		}
		if entry.Mode == filemode.Dir {
			continue
		}
		files = append(files, name)
	}
	return r.filter.apply(files)
}

func (r *GoGitReader) skip(h plumbing.Hash, err error) {
	if r.opts.OnSkip != nil {
		r.opts.OnSkip(h, err)
	}
}
