package objstore

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

const (
	// HashSize is the length of a raw object hash in bytes.
	HashSize = 20
	// HashHexSize is the length of a hex-encoded object hash.
	HashHexSize = 2 * HashSize
)

// ParseHash validates a 40 character hex string and converts it to a hash.
func ParseHash(s string) (plumbing.Hash, error) {
	s = strings.TrimSpace(s)
	if !plumbing.IsHash(s) {
		return plumbing.ZeroHash, fmt.Errorf("%w: %q", ErrInvalidHash, s)
	}
	return plumbing.NewHash(strings.ToLower(s)), nil
}

// hashFromBytes copies a raw 20 byte hash.
func hashFromBytes(b []byte) plumbing.Hash {
	var h plumbing.Hash
	copy(h[:], b)
	return h
}
