package objstore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/klauspost/compress/zlib"
)

const (
	// DefaultMaxDepth bounds tree walks. Real repositories rarely nest past a few dozen levels.
	DefaultMaxDepth = 256
	// DefaultCacheSize is the number of parsed trees kept per Store.
	DefaultCacheSize = 4096
)

// Options configures a Store.
type Options struct {
	MaxDepth     int
	MatchMode    MatchMode
	CacheSize    int                          // parsed trees to keep; negative disables the cache
	OnUnreadable func(path string, err error) // fan-out directories ListObjects skipped
}

// Store reads loose objects from an objects/ directory laid out as objects/ab/cdef0123...
// It never writes. A Store is not safe for concurrent use.
type Store struct {
	dir   string
	opts  Options
	trees *lru.Cache[plumbing.Hash, []TreeEntry]
}

// Open locates the object directory of the repository at repoRoot and returns a Store for it.
func Open(repoRoot string, opts Options) (*Store, error) {
	gitDir, err := FindGitDir(repoRoot)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(gitDir, "objects")
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s has no objects directory", ErrNotRepository, gitDir)
	}
	return NewStore(dir, opts), nil
}

// NewStore creates a Store rooted at an objects/ directory.
func NewStore(objectsDir string, opts Options) *Store {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.CacheSize == 0 {
		opts.CacheSize = DefaultCacheSize
	}
	s := &Store{dir: objectsDir, opts: opts}
	if opts.CacheSize > 0 {
		// lru.New only fails for a non-positive size.
		s.trees, _ = lru.New[plumbing.Hash, []TreeEntry](opts.CacheSize)
	}
	return s
}

// FindGitDir resolves the git directory for a work tree, a bare repository,
// or a work tree whose .git is a "gitdir:" file.
func FindGitDir(repoRoot string) (string, error) {
	dotGit := filepath.Join(repoRoot, ".git")
	fi, err := os.Stat(dotGit)
	if err == nil && fi.IsDir() {
		return dotGit, nil
	}
	if err == nil {
		data, err := os.ReadFile(dotGit)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", dotGit, err)
		}
		line := strings.TrimSpace(string(data))
		target, ok := strings.CutPrefix(line, "gitdir:")
		if !ok {
			return "", fmt.Errorf("%w: malformed .git file in %s", ErrNotRepository, repoRoot)
		}
		target = strings.TrimSpace(target)
		if !filepath.IsAbs(target) {
			target = filepath.Join(repoRoot, target)
		}
		return target, nil
	}

	if isDir(filepath.Join(repoRoot, "objects")) && isFile(filepath.Join(repoRoot, "HEAD")) {
		return repoRoot, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotRepository, repoRoot)
}

// Dir returns the objects directory.
func (s *Store) Dir() string {
	return s.dir
}

// MatchMode returns the configured path match mode.
func (s *Store) MatchMode() MatchMode {
	return s.opts.MatchMode
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h plumbing.Hash) string {
	hex := h.String()
	return filepath.Join(s.dir, hex[:2], hex[2:])
}

// Has reports whether a loose object exists for the hash.
func (s *Store) Has(h plumbing.Hash) bool {
	return isFile(s.objectPath(h))
}

// Decode reads, inflates and splits the loose object for h.
func (s *Store) Decode(h plumbing.Hash) (*Object, error) {
	raw, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ObjectError{Op: "decode", Hash: h, Err: ErrObjectNotFound}
		}
		return nil, &ObjectError{Op: "decode", Hash: h, Err: err}
	}

	data, err := inflate(raw)
	if err != nil {
		return nil, &ObjectError{Op: "decode", Hash: h, Err: corruptf("inflate: %v", err)}
	}

	kind, size, payload, err := splitEnvelope(data)
	if err != nil {
		return nil, &ObjectError{Op: "decode", Hash: h, Err: err}
	}

	return &Object{Hash: h, Kind: kind, Size: size, Payload: payload}, nil
}

func inflate(raw []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// splitEnvelope parses "kind len\0payload".
func splitEnvelope(data []byte) (plumbing.ObjectType, int64, []byte, error) {
	nulIdx := bytes.IndexByte(data, 0)
	if nulIdx < 0 {
		return plumbing.InvalidObject, 0, nil, corruptf("missing header terminator")
	}
	header := string(data[:nulIdx])
	payload := data[nulIdx+1:]

	kindTok, sizeTok, ok := strings.Cut(header, " ")
	if !ok || kindTok == "" || sizeTok == "" || strings.Contains(sizeTok, " ") {
		return plumbing.InvalidObject, 0, nil, corruptf("invalid header %q", header)
	}

	kind, err := parseKind(kindTok)
	if err != nil {
		return plumbing.InvalidObject, 0, nil, err
	}

	size, err := strconv.ParseInt(sizeTok, 10, 64)
	if err != nil || size < 0 {
		return plumbing.InvalidObject, 0, nil, corruptf("invalid length %q", sizeTok)
	}
	if int64(len(payload)) != size {
		return plumbing.InvalidObject, 0, nil, corruptf("length mismatch (header=%d, actual=%d)", size, len(payload))
	}

	return kind, size, payload, nil
}

// parseKind accepts the four kinds a loose object can have.
func parseKind(s string) (plumbing.ObjectType, error) {
	switch s {
	case "commit":
		return plumbing.CommitObject, nil
	case "tree":
		return plumbing.TreeObject, nil
	case "blob":
		return plumbing.BlobObject, nil
	case "tag":
		return plumbing.TagObject, nil
	default:
		return plumbing.InvalidObject, corruptf("unknown object kind %q", s)
	}
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
