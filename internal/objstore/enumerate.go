package objstore

import (
	"bytes"
	"context"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
)

// ListObjects walks the objects directory and returns the hash of every loose
// object, sorted. A file counts as an object only when its two character
// directory name and its own name together form a 40 character hex hash;
// everything else (pack/, info/, temp files) is skipped. Only a failure to
// read the objects directory itself is an error; unreadable fan-out
// directories go to Options.OnUnreadable.
func (s *Store) ListObjects(ctx context.Context) ([]plumbing.Hash, error) {
	var hashes []plumbing.Hash

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.dir || d == nil {
				return err
			}
			if s.opts.OnUnreadable != nil {
				s.opts.OnUnreadable(path, err)
			}
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == s.dir {
			return nil
		}

		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			// Loose objects live exactly one level down, in two character fan-out directories.
			if len(d.Name()) != 2 || filepath.Dir(rel) != "." {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		dir := filepath.Base(filepath.Dir(path))
		candidate := dir + d.Name()
		if len(candidate) != HashHexSize || !plumbing.IsHash(candidate) {
			return nil
		}
		hashes = append(hashes, plumbing.NewHash(candidate))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(hashes, func(i, j int) bool {
		return bytes.Compare(hashes[i][:], hashes[j][:]) < 0
	})
	return hashes, nil
}
