package cmd

import (
	"fmt"
	"os"

	"github.com/masmgr/gitdepgraph/internal/objstore"
)

// verifyRepoPath returns the git directory of repoPath.
func verifyRepoPath(repoPath string) (string, error) {
	gitDir, err := objstore.FindGitDir(repoPath)
	if err != nil {
		return "", fmt.Errorf("path %q is not a Git repository: %w", repoPath, err)
	}
	return gitDir, nil
}

// verifyGraphvizPath checks that path names an executable regular file.
// An empty path is accepted since rendering is left to the caller.
func verifyGraphvizPath(path string) error {
	if path == "" {
		return nil
	}
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return fmt.Errorf("graph visualization program not found at %q", path)
	}
	if fi.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("program %q is not executable", path)
	}
	return nil
}
