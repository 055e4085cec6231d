package git

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// pathFilter applies include/exclude globs to repository paths.
type pathFilter struct {
	include []string
	exclude []string
	cache   map[string]bool
}

func newPathFilter(include, exclude []string) (*pathFilter, error) {
	for _, pattern := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return &pathFilter{
		include: include,
		exclude: exclude,
		cache:   make(map[string]bool),
	}, nil
}

// matches checks if a path passes the include/exclude filters.
func (f *pathFilter) matches(path string) (bool, error) {
	if len(f.include) == 0 && len(f.exclude) == 0 {
		return true, nil
	}
	if v, ok := f.cache[path]; ok {
		return v, nil
	}

	// Normalize path separators
	normalized := strings.ReplaceAll(path, "\\", "/")

	result, err := f.evaluate(normalized)
	if err != nil {
		return false, err
	}
	f.cache[path] = result
	return result, nil
}

func (f *pathFilter) evaluate(path string) (bool, error) {
	// Check exclude patterns first
	for _, pattern := range f.exclude {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		if matched {
			return false, nil
		}
	}

	// If no include patterns, accept all
	if len(f.include) == 0 {
		return true, nil
	}

	for _, pattern := range f.include {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("include pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// apply returns the paths that pass the filters, in their original order.
func (f *pathFilter) apply(paths []string) ([]string, error) {
	if len(f.include) == 0 && len(f.exclude) == 0 {
		return paths, nil
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		ok, err := f.matches(p)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}
