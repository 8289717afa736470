package repo

import (
	"fmt"
	"os"
	"path/filepath"
)

const pyplantDirName = ".pyplant"

// FindRoot finds the repository root directory.
// It first checks if .git exists in the current directory or any parent.
// If not found, it uses the current working directory as the repo root.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	dir := cwd
	for {
		gitPath := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	// No .git found, use current working directory
	return cwd, nil
}

// PyplantDir returns the path to the .pyplant directory for a given
// repo root.
func PyplantDir(repoRoot string) string {
	return filepath.Join(repoRoot, pyplantDirName)
}
