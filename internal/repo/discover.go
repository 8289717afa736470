package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var excludedDirs = map[string]bool{
	".git":          true,
	pyplantDirName:  true,
	"node_modules":  true,
	".venv":         true,
	"venv":          true,
	".env":          true,
	"vendor":        true,
	"target":        true,
	"build":         true,
	"dist":          true,
	".idea":         true,
	".vscode":       true,
	"__pycache__":   true,
	".tox":          true,
	".mypy_cache":   true,
	".pytest_cache": true,
	"site-packages": true,
}

// DiscoverPackageDirs walks the repository and returns, as paths
// relative to the root, every directory that holds at least one Python
// source file. These are the candidate package roots offered during
// setup.
func DiscoverPackageDirs(repoRoot string) ([]string, error) {
	var dirs []string
	err := filepath.Walk(repoRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(repoRoot, path)
		if err != nil {
			return nil
		}
		if relPath == "." {
			return nil
		}

		base := filepath.Base(relPath)
		if excludedDirs[base] || strings.HasPrefix(base, ".") {
			return filepath.SkipDir
		}

		if hasPythonSource(path) {
			dirs = append(dirs, relPath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory tree: %w", err)
	}
	return dirs, nil
}

// hasPythonSource reports whether the directory directly contains a
// Python file.
func hasPythonSource(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".py") {
			return true
		}
	}
	return false
}
