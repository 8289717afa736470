package resolve

import (
	"fmt"
	"strings"

	"github.com/pyplant/cli/internal/pymodel"
)

// ResolveImports fills the fully qualified name of every import record
// in the tree. Absolute imports keep the module path as written;
// relative imports walk up the package chain, level 1 landing on the
// importing module's own package. Imports that ascend past the root
// are reported and left unresolved so later passes skip them.
func ResolveImports(root *pymodel.Package) []error {
	var errs []error
	for _, module := range root.AllModules(false) {
		for _, local := range module.ImportOrder {
			ir := module.Imports[local]
			if !ir.IsRelative() {
				ir.FullyQualifiedName = ir.ModuleName
				continue
			}
			pkg := module.Parent
			for level := ir.Level; level > 1 && pkg != nil; level-- {
				pkg = pkg.Parent
			}
			if pkg == nil {
				errs = append(errs, fmt.Errorf(
					"module %s imports %s at level %d: %w",
					module.FullyQualifiedName, local, ir.Level, ErrPastRoot))
				continue
			}
			if ir.ModuleName == "" {
				ir.FullyQualifiedName = pkg.FullyQualifiedName
			} else {
				ir.FullyQualifiedName = pkg.FullyQualifiedName + "." + ir.ModuleName
			}
		}
	}
	return errs
}

// ResolveBases binds every class to the base classes that live inside
// the documented tree. Base names pointing outside the tree, to the
// standard library or to third-party code, are dropped without an
// error; only relationships between documented classes are drawn.
func ResolveBases(root *pymodel.Package) {
	registry := root.ClassRegistry()
	for _, class := range root.AllClasses() {
		ns := NewNamespace(class.Module)
		for _, baseName := range class.BaseNames {
			fqn, _ := ns.ResolveType(baseName)
			if fqn == "" {
				continue
			}
			if base, ok := registry[fqn]; ok {
				class.Bases = append(class.Bases, base)
			}
		}
	}
}

// ResolveAttributeTypes resolves the raw annotation of every attribute
// into its display form and gathers composition edges along the way.
// An instance attribute discovered in a constructor composes its class
// with the attribute's type when that type is a class of the documented
// tree; edges are deduplicated by target per owning class.
//
// Simple names that resolve to nothing leave the attribute untyped.
// Unresolvable names inside compound annotations are hard errors,
// collected and returned so the caller can surface them; the pass
// keeps going over the remaining attributes.
func ResolveAttributeTypes(root *pymodel.Package) ([]pymodel.Relationship, []error) {
	registry := root.ClassRegistry()
	rootPrefix := root.FullyQualifiedName + "."
	var relations []pymodel.Relationship
	var errs []error

	for _, class := range root.AllClasses() {
		ns := NewNamespace(class.Module)
		seen := map[string]bool{}
		record := func(targetFQN string) {
			if !strings.HasPrefix(targetFQN, rootPrefix) || seen[targetFQN] {
				return
			}
			if _, ok := registry[targetFQN]; !ok {
				return
			}
			seen[targetFQN] = true
			relations = append(relations, pymodel.Relationship{
				SourceFQN: class.FullyQualifiedName,
				TargetFQN: targetFQN,
				Kind:      pymodel.RelComposition,
			})
		}

		for i := range class.Attributes {
			attr := &class.Attributes[i]
			if attr.RawType == "" {
				continue
			}
			if strings.ContainsRune(attr.RawType, '[') {
				display, fqns, err := ns.ShortenCompound(attr.RawType)
				if err != nil {
					errs = append(errs, fmt.Errorf("class %s, attribute %s: %w",
						class.FullyQualifiedName, attr.Name, err))
					continue
				}
				attr.Type = display
				if attr.FromInit {
					for _, fqn := range fqns {
						record(fqn)
					}
				}
				continue
			}
			fqn, short := ns.ResolveType(strings.Trim(attr.RawType, `'"`))
			if short == "" {
				continue
			}
			attr.Type = short
			if attr.FromInit {
				record(fqn)
			}
		}
	}
	return relations, errs
}
