package objstore

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
)

// Object is a decoded loose object: the header kind and size plus the raw payload.
type Object struct {
	Hash    plumbing.Hash
	Kind    plumbing.ObjectType
	Size    int64
	Payload []byte
}

// TreeEntry is one entry of a tree object.
type TreeEntry struct {
	Mode   filemode.FileMode
	Name   string
	Target plumbing.Hash
}

// IsDir reports whether the entry points at a subtree.
func (e TreeEntry) IsDir() bool {
	return e.Mode == filemode.Dir
}

// Header is one "key value" line from a commit header block.
type Header struct {
	Key   string
	Value string
}

// Commit holds the parsed header block of a commit object.
type Commit struct {
	Hash    plumbing.Hash
	Tree    plumbing.Hash
	Parents []plumbing.Hash
	Headers []Header // declaration order, continuation lines folded in
	Message []byte   // everything after the first blank line, unparsed
}

// Header returns the value of the first header with the given key.
func (c *Commit) Header(key string) (string, bool) {
	for _, h := range c.Headers {
		if h.Key == key {
			return h.Value, true
		}
	}
	return "", false
}

// IsMerge reports whether the commit has more than one parent.
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// Match is the outcome of a path lookup inside a tree.
type Match int

const (
	MatchNone Match = iota
	MatchFound
	// MatchMalformed means the target was not found and part of the tree could not be read.
	MatchMalformed
)

// String returns a string representation of the match.
func (m Match) String() string {
	switch m {
	case MatchNone:
		return "none"
	case MatchFound:
		return "found"
	case MatchMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// MatchMode controls how a target path is compared with tree entries.
type MatchMode int

const (
	// MatchBaseName matches an entry name at any depth, ignoring its directory.
	MatchBaseName MatchMode = iota
	// MatchFullPath matches the slash separated path from the root tree.
	MatchFullPath
)

// String returns a string representation of the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchBaseName:
		return "basename"
	case MatchFullPath:
		return "path"
	default:
		return "unknown"
	}
}

// ParseMatchMode parses a match mode name. The empty string selects MatchBaseName.
func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "", "basename", "name":
		return MatchBaseName, nil
	case "path", "fullpath":
		return MatchFullPath, nil
	default:
		return MatchBaseName, fmt.Errorf("unknown match mode %q (expected basename or path)", s)
	}
}
