package objstore

import (
	"bytes"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// ParseTree decodes a tree payload. Each entry is packed as
//
//	<octal mode> SP <name> NUL <20 byte hash>
//
// with no separator between entries.
func ParseTree(payload []byte) ([]TreeEntry, error) {
	var entries []TreeEntry
	pos := 0
	for pos < len(payload) {
		sp := bytes.IndexByte(payload[pos:], ' ')
		if sp < 0 {
			return nil, corruptf("tree entry at offset %d: missing mode terminator", pos)
		}
		mode, err := parseMode(string(payload[pos : pos+sp]))
		if err != nil {
			return nil, err
		}
		nameStart := pos + sp + 1

		nul := bytes.IndexByte(payload[nameStart:], 0)
		if nul < 0 {
			return nil, corruptf("tree entry at offset %d: missing name terminator", pos)
		}
		name := string(payload[nameStart : nameStart+nul])
		if name == "" {
			return nil, corruptf("tree entry at offset %d: empty name", pos)
		}
		if strings.ContainsRune(name, '/') {
			return nil, corruptf("tree entry %q: name contains a path separator", name)
		}

		hashStart := nameStart + nul + 1
		if len(payload)-hashStart < HashSize {
			return nil, corruptf("tree entry %q: truncated hash", name)
		}

		entries = append(entries, TreeEntry{
			Mode:   mode,
			Name:   name,
			Target: hashFromBytes(payload[hashStart : hashStart+HashSize]),
		})
		pos = hashStart + HashSize
	}
	return entries, nil
}

// EncodeTree is the inverse of ParseTree. Entries are written in the given order.
func EncodeTree(entries []TreeEntry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		buf.WriteString(formatMode(e.Mode))
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(e.Target[:])
	}
	return buf.Bytes()
}

// ReadTree decodes and parses the tree h. An object of another kind has no entries.
// The returned slice is a copy; changing it does not affect the cache.
func (s *Store) ReadTree(h plumbing.Hash) ([]TreeEntry, error) {
	entries, _, err := s.treeEntries(h)
	if err != nil {
		return nil, err
	}
	return slices.Clone(entries), nil
}

// treeEntries returns the parsed entries of h and whether h is a tree at all.
func (s *Store) treeEntries(h plumbing.Hash) ([]TreeEntry, bool, error) {
	if s.trees != nil {
		if entries, ok := s.trees.Get(h); ok {
			return entries, true, nil
		}
	}

	obj, err := s.Decode(h)
	if err != nil {
		return nil, false, err
	}
	if obj.Kind != plumbing.TreeObject {
		return nil, false, nil
	}

	entries, err := ParseTree(obj.Payload)
	if err != nil {
		return nil, false, &ObjectError{Op: "parse tree", Hash: h, Err: err}
	}
	if s.trees != nil {
		s.trees.Add(h, entries)
	}
	return entries, true, nil
}
