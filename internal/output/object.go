package output

import (
	"fmt"
	"io"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"

	"github.com/masmgr/gitdepgraph/internal/objstore"
)

// WriteObject prints a decoded object. Trees are listed like ls-tree; other
// kinds are printed as their raw payload.
func WriteObject(w io.Writer, obj *objstore.Object, headerOnly bool) error {
	if headerOnly {
		_, err := fmt.Fprintf(w, "%s %d\n", obj.Kind, obj.Size)
		return err
	}
	if obj.Kind != plumbing.TreeObject {
		_, err := w.Write(obj.Payload)
		return err
	}

	entries, err := objstore.ParseTree(obj.Payload)
	if err != nil {
		return fmt.Errorf("parse tree %s: %w", obj.Hash, err)
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%06o %s %s\t%s\n", uint32(e.Mode), entryKind(e.Mode), e.Target, e.Name); err != nil {
			return err
		}
	}
	return nil
}

func entryKind(m filemode.FileMode) plumbing.ObjectType {
	switch m {
	case filemode.Dir:
		return plumbing.TreeObject
	case filemode.Submodule:
		return plumbing.CommitObject
	default:
		return plumbing.BlobObject
	}
}
