package objstore

import (
	"strconv"

	"github.com/go-git/go-git/v5/plumbing/filemode"
)

// parseMode parses the octal mode token of a tree entry (e.g. "100644", "40000").
func parseMode(s string) (filemode.FileMode, error) {
	if s == "" {
		return filemode.Empty, corruptf("empty tree entry mode")
	}
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return filemode.Empty, corruptf("parse tree entry mode %q: %v", s, err)
	}
	return filemode.FileMode(v), nil
}

// formatMode renders a mode the way git writes it in tree objects, without zero padding.
func formatMode(m filemode.FileMode) string {
	return strconv.FormatUint(uint64(m), 8)
}
