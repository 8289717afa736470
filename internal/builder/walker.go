package builder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pyplant/cli/internal/pymodel"
	"github.com/pyplant/cli/internal/pyparse"
)

// Walker discovers a Python package tree on disk and parses every
// module in it. Directory entries are visited in name order, so two
// walks over the same tree produce identical discovery order.
type Walker struct {
	parser *pyparse.Parser
	// packages is the arena of every package created during the walk,
	// keyed by fully qualified name.
	packages map[string]*pymodel.Package
}

// NewWalker creates a walker with its own parser.
func NewWalker() (*Walker, error) {
	parser, err := pyparse.NewParser()
	if err != nil {
		return nil, err
	}
	return &Walker{parser: parser}, nil
}

// Close releases the walker's parser.
func (w *Walker) Close() {
	if w.parser != nil {
		w.parser.Close()
		w.parser = nil
	}
}

// Walk builds the package tree rooted at dir, documented under
// rootFQN. The last segment of rootFQN names the root package.
func (w *Walker) Walk(dir, rootFQN string) (*pymodel.Package, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("package directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("package directory %s is not a directory", dir)
	}

	w.packages = map[string]*pymodel.Package{}
	name := rootFQN
	if idx := strings.LastIndex(rootFQN, "."); idx >= 0 {
		name = rootFQN[idx+1:]
	}
	root := pymodel.NewPackage(name, rootFQN, dir, 0, packageKind(dir))
	w.packages[rootFQN] = root
	if err := w.walkPackage(root); err != nil {
		return nil, err
	}
	return root, nil
}

// Package returns a walked package by fully qualified name, or nil.
func (w *Walker) Package(fqn string) *pymodel.Package {
	return w.packages[fqn]
}

func (w *Walker) walkPackage(pkg *pymodel.Package) error {
	entries, err := os.ReadDir(pkg.Path)
	if err != nil {
		return fmt.Errorf("read package %s: %w", pkg.FullyQualifiedName, err)
	}

	// The initializer module comes first. It is kept only when it
	// declares classes; those belong to the package itself.
	if pkg.Kind == pymodel.KindRegular {
		init, err := w.parseModule(pkg, pymodel.InitModuleName)
		if err != nil {
			return err
		}
		if init.HasClasses() {
			pkg.AddModule(init)
			pkg.Classes = append(pkg.Classes, init.Classes...)
		}
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".py") {
			continue
		}
		moduleName := strings.TrimSuffix(name, ".py")
		if moduleName == pymodel.InitModuleName {
			continue
		}
		module, err := w.parseModule(pkg, moduleName)
		if err != nil {
			return err
		}
		pkg.AddModule(module)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") || name == "__pycache__" {
			continue
		}
		path := filepath.Join(pkg.Path, name)
		sub := pymodel.NewPackage(name, pkg.FullyQualifiedName+"."+name, path, 0, packageKind(path))
		pkg.AddSubpackage(sub)
		w.packages[sub.FullyQualifiedName] = sub
		if err := w.walkPackage(sub); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) parseModule(pkg *pymodel.Package, name string) (*pymodel.Module, error) {
	path := filepath.Join(pkg.Path, name+".py")
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module %s: %w", path, err)
	}
	module := pymodel.NewModule(name, pkg.FullyQualifiedName+"."+name, path)
	module.Parent = pkg
	if err := w.parser.ParseModule(source, module); err != nil {
		return nil, err
	}
	return module, nil
}

// packageKind tells regular packages, which carry an initializer
// module, from namespace packages, which are directories only.
func packageKind(dir string) pymodel.PackageKind {
	if _, err := os.Stat(filepath.Join(dir, pymodel.InitModuleName+".py")); err == nil {
		return pymodel.KindRegular
	}
	return pymodel.KindNamespace
}
