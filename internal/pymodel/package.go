package pymodel

import "fmt"

// PackageKind distinguishes regular packages (with an __init__ module)
// from namespace packages (directory only).
type PackageKind int

const (
	KindRegular   PackageKind = 1
	KindNamespace PackageKind = 2
)

// String returns the human-readable name of the kind.
func (k PackageKind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindNamespace:
		return "namespace"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Package is one Python package with its modules and subpackages.
// A package exclusively owns its modules and subpackages; Parent is a
// back-reference only. Classes holds the classes declared at package
// level, i.e. found in the package's __init__ module.
type Package struct {
	Name               string
	FullyQualifiedName string
	Path               string
	Depth              int
	Kind               PackageKind
	Modules            []*Module
	Subpackages        []*Package
	Classes            []*Class
	Parent             *Package
}

// NewPackage creates an empty package record.
func NewPackage(name, fqn, path string, depth int, kind PackageKind) *Package {
	return &Package{
		Name:               name,
		FullyQualifiedName: fqn,
		Path:               path,
		Depth:              depth,
		Kind:               kind,
	}
}

// AddModule attaches a module and sets its back-reference.
func (p *Package) AddModule(m *Module) {
	m.Parent = p
	p.Modules = append(p.Modules, m)
}

// AddSubpackage attaches a subpackage and sets its back-reference.
func (p *Package) AddSubpackage(sub *Package) {
	sub.Parent = p
	sub.Depth = p.Depth + 1
	p.Subpackages = append(p.Subpackages, sub)
}

// FindSubpackage returns the direct subpackage of the given simple
// name, or nil.
func (p *Package) FindSubpackage(name string) *Package {
	for _, sub := range p.Subpackages {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

// AllModules returns the package's modules and, recursively, the
// modules of its subpackages. With skipEmpty, modules owning no class
// are left out.
func (p *Package) AllModules(skipEmpty bool) []*Module {
	var modules []*Module
	for _, m := range p.Modules {
		if !skipEmpty || m.HasClasses() {
			modules = append(modules, m)
		}
	}
	for _, sub := range p.Subpackages {
		modules = append(modules, sub.AllModules(skipEmpty)...)
	}
	return modules
}

// AllClasses returns every class in the package tree in discovery order.
func (p *Package) AllClasses() []*Class {
	var classes []*Class
	for _, m := range p.Modules {
		classes = append(classes, m.Classes...)
	}
	for _, sub := range p.Subpackages {
		classes = append(classes, sub.AllClasses()...)
	}
	return classes
}

// ClassRegistry maps every fully qualified class name in the tree to
// its class record.
func (p *Package) ClassRegistry() map[string]*Class {
	registry := map[string]*Class{}
	for _, c := range p.AllClasses() {
		registry[c.FullyQualifiedName] = c
	}
	return registry
}
