package pymodel

import "strings"

// InitModuleName is the canonical name of a package initializer module.
const InitModuleName = "__init__"

// ImportRecord represents one name brought in by a
// "from <module> import <name> [as <alias>]" statement.
//
// ModuleName is the module path as written, never carrying leading dots;
// relative ascent is expressed by Level instead (0 means absolute, N>0
// means "walk up N packages from the importing module"). The
// FullyQualifiedName starts empty and is filled exactly once by import
// resolution, after the whole package tree has been walked.
type ImportRecord struct {
	ModuleName         string
	Name               string
	Alias              string
	Level              int
	FullyQualifiedName string
}

// IsRelative reports whether the import uses relative ascent.
func (ir *ImportRecord) IsRelative() bool {
	return ir.Level > 0
}

// LocalName returns the name under which the import is visible in the
// importing module.
func (ir *ImportRecord) LocalName() string {
	if ir.Alias != "" {
		return ir.Alias
	}
	return ir.Name
}

// Module is one Python source file with its classes and import table.
type Module struct {
	Name               string
	FullyQualifiedName string
	Path               string
	Classes            []*Class
	// Imports maps the locally visible name (alias if present) to its
	// import record. ImportOrder keeps source order for deterministic
	// resolution passes.
	Imports     map[string]*ImportRecord
	ImportOrder []string
	// Parent is a back-reference only; the package owns the module.
	Parent *Package
}

// NewModule creates an empty module record.
func NewModule(name, fqn, path string) *Module {
	return &Module{
		Name:               name,
		FullyQualifiedName: fqn,
		Path:               path,
		Imports:            map[string]*ImportRecord{},
	}
}

// IsInit reports whether the module is a package initializer.
func (m *Module) IsInit() bool {
	return m.Name == InitModuleName
}

// HasClasses reports whether the module owns at least one class.
func (m *Module) HasClasses() bool {
	return len(m.Classes) > 0
}

// AddImport records an import under its locally visible name.
func (m *Module) AddImport(ir *ImportRecord) {
	local := ir.LocalName()
	if _, seen := m.Imports[local]; !seen {
		m.ImportOrder = append(m.ImportOrder, local)
	}
	m.Imports[local] = ir
}

// FindClass returns the class of the given simple name, or nil.
func (m *Module) FindClass(name string) *Class {
	for _, c := range m.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ParentFQN returns the fully qualified name of the enclosing package.
func (m *Module) ParentFQN() string {
	if idx := strings.LastIndex(m.FullyQualifiedName, "."); idx >= 0 {
		return m.FullyQualifiedName[:idx]
	}
	return ""
}
