package objstore

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
)

type resolveFrame struct {
	hash   plumbing.Hash
	depth  int
	prefix string
}

// ContainsPath reports whether target names an entry anywhere below the tree root.
//
// In MatchBaseName mode an entry matches when its own name equals target, so
// "x" matches a file called x in any directory. In MatchFullPath mode target is
// a slash separated path from the root and only the directories on that path
// are opened.
//
// The walk uses an explicit stack and visits entries in tree order. Neither a
// subtree that cannot be read nor one below the depth limit stops the walk. If
// nothing matches, a depth overrun returns ErrResolutionTooDeep; otherwise an
// unreadable subtree gives MatchMalformed with the first read error.
func (s *Store) ContainsPath(root plumbing.Hash, target string) (Match, error) {
	fullPath := s.opts.MatchMode == MatchFullPath
	if fullPath {
		target = strings.Trim(target, "/")
	}
	if target == "" {
		return MatchNone, nil
	}

	result := MatchNone
	var firstErr, tooDeep error

	stack := []resolveFrame{{hash: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth > s.opts.MaxDepth {
			if tooDeep == nil {
				tooDeep = &ObjectError{Op: "resolve", Hash: root, Err: ErrResolutionTooDeep}
			}
			continue
		}

		entries, isTree, err := s.treeEntries(f.hash)
		if err != nil {
			result = MatchMalformed
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if !isTree {
			continue
		}

		var subtrees []resolveFrame
		for _, e := range entries {
			name := e.Name
			if fullPath {
				name = f.prefix + e.Name
			}
			if name == target {
				return MatchFound, nil
			}
			if !e.IsDir() {
				continue
			}
			if fullPath && !strings.HasPrefix(target, name+"/") {
				continue
			}
			subtrees = append(subtrees, resolveFrame{hash: e.Target, depth: f.depth + 1, prefix: name + "/"})
		}
		// Pushed in reverse so the first subtree is popped first.
		for i := len(subtrees) - 1; i >= 0; i-- {
			stack = append(stack, subtrees[i])
		}
	}

	if tooDeep != nil {
		return MatchNone, tooDeep
	}
	return result, firstErr
}

type listFrame struct {
	entries []TreeEntry
	next    int
	prefix  string
	depth   int
}

// ListFiles returns every non-tree path below root in tree order, like
// "git ls-tree -r --name-only". Submodule entries are listed but not opened.
func (s *Store) ListFiles(root plumbing.Hash) ([]string, error) {
	entries, _, err := s.treeEntries(root)
	if err != nil {
		return nil, err
	}

	var files []string
	stack := []*listFrame{{entries: entries}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next >= len(f.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		e := f.entries[f.next]
		f.next++

		path := f.prefix + e.Name
		if !e.IsDir() {
			if e.Mode != filemode.Empty {
				files = append(files, path)
			}
			continue
		}

		if f.depth+1 > s.opts.MaxDepth {
			return nil, &ObjectError{Op: "list files", Hash: root, Err: ErrResolutionTooDeep}
		}
		sub, _, err := s.treeEntries(e.Target)
		if err != nil {
			return nil, err
		}
		stack = append(stack, &listFrame{entries: sub, prefix: path + "/", depth: f.depth + 1})
	}
	return files, nil
}
