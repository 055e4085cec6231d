// Package objtest builds loose-object repositories on disk for tests.
package objtest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/klauspost/compress/zlib"

	"github.com/masmgr/gitdepgraph/internal/objstore"
)

// Repo is a minimal repository directory: .git/HEAD and .git/objects.
type Repo struct {
	t          testing.TB
	Root       string
	ObjectsDir string
	when       int64
}

// New creates an empty repository in a temporary directory.
func New(t testing.TB) *Repo {
	t.Helper()
	root := t.TempDir()
	gitDir := filepath.Join(root, ".git")
	objects := filepath.Join(gitDir, "objects")
	if err := os.MkdirAll(objects, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte("ref: refs/heads/master\n"), 0o644); err != nil {
		t.Fatalf("WriteFile HEAD: %v", err)
	}
	return &Repo{t: t, Root: root, ObjectsDir: objects, when: 1700000000}
}

// Deflate zlib-compresses data.
func Deflate(t testing.TB, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("zlib write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zlib close: %v", err)
	}
	return buf.Bytes()
}

// Envelope returns "kind len\0payload".
func Envelope(kind plumbing.ObjectType, payload []byte) []byte {
	header := fmt.Sprintf("%s %d\x00", kind, len(payload))
	return append([]byte(header), payload...)
}

// Write stores a well-formed loose object and returns its hash.
func (r *Repo) Write(kind plumbing.ObjectType, payload []byte) plumbing.Hash {
	r.t.Helper()
	h := plumbing.ComputeHash(kind, payload)
	r.WriteRaw(h, Deflate(r.t, Envelope(kind, payload)))
	return h
}

// WriteRaw stores data verbatim at the loose-object path of h.
func (r *Repo) WriteRaw(h plumbing.Hash, data []byte) {
	r.t.Helper()
	hex := h.String()
	r.WriteFile(filepath.Join(hex[:2], hex[2:]), data)
}

// WriteFile stores data at a path relative to the objects directory.
func (r *Repo) WriteFile(rel string, data []byte) {
	r.t.Helper()
	full := filepath.Join(r.ObjectsDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		r.t.Fatalf("WriteFile: %v", err)
	}
}

// Blob stores a blob.
func (r *Repo) Blob(content string) plumbing.Hash {
	r.t.Helper()
	return r.Write(plumbing.BlobObject, []byte(content))
}

// Tree stores a tree with the entries in the given order.
func (r *Repo) Tree(entries ...objstore.TreeEntry) plumbing.Hash {
	r.t.Helper()
	return r.Write(plumbing.TreeObject, objstore.EncodeTree(entries))
}

// Commit stores a commit pointing at tree with the given parents.
// Each call advances the commit timestamp by one minute.
func (r *Repo) Commit(tree plumbing.Hash, message string, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	r.when += 60
	return r.Write(plumbing.CommitObject, CommitPayload(tree, message, r.when, parents...))
}

// CommitPayload renders a commit object body.
func CommitPayload(tree plumbing.Hash, message string, when int64, parents ...plumbing.Hash) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", tree)
	for _, p := range parents {
		fmt.Fprintf(&buf, "parent %s\n", p)
	}
	fmt.Fprintf(&buf, "author Test <test@example.com> %d +0000\n", when)
	fmt.Fprintf(&buf, "committer Test <test@example.com> %d +0000\n", when)
	buf.WriteByte('\n')
	buf.WriteString(message)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// File returns a regular file entry.
func File(name string, h plumbing.Hash) objstore.TreeEntry {
	return objstore.TreeEntry{Mode: filemode.Regular, Name: name, Target: h}
}

// Dir returns a subtree entry.
func Dir(name string, h plumbing.Hash) objstore.TreeEntry {
	return objstore.TreeEntry{Mode: filemode.Dir, Name: name, Target: h}
}
