package objstore

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

var (
	// ErrNotRepository is returned when no object directory can be found.
	ErrNotRepository = errors.New("not a git repository")
	// ErrInvalidHash is returned for strings that are not 40 hex characters.
	ErrInvalidHash = errors.New("invalid object hash")
	// ErrObjectNotFound is returned when a hash has no backing loose object.
	ErrObjectNotFound = errors.New("object not found")
	// ErrCorruptObject covers inflate failures and structural parse failures.
	ErrCorruptObject = errors.New("corrupt object")
	// ErrUnexpectedKind is returned when a typed read finds another object kind.
	ErrUnexpectedKind = errors.New("unexpected object kind")
	// ErrResolutionTooDeep is returned when a tree walk exceeds the depth limit.
	ErrResolutionTooDeep = errors.New("tree resolution too deep")
)

// ObjectError records the operation and object that failed.
type ObjectError struct {
	Op   string
	Hash plumbing.Hash
	Err  error
}

func (e *ObjectError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Hash, e.Err)
}

func (e *ObjectError) Unwrap() error {
	return e.Err
}

// IsCorrupt reports whether err describes an object that could not be decoded or parsed.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorruptObject)
}

// IsNotFound reports whether err describes a missing object.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptObject, fmt.Sprintf(format, args...))
}
