package diagram

import (
	"github.com/pyplant/cli/internal/pymodel"
	"github.com/pyplant/cli/internal/resolve"
)

// Relations derives the edges of the diagram. All inheritance edges
// come first, class discovery order with base order as declared,
// followed by all composition edges in attribute discovery order.
func Relations(root *pymodel.Package, compositions []pymodel.Relationship) []pymodel.Relationship {
	var out []pymodel.Relationship
	for _, class := range root.AllClasses() {
		for _, base := range class.Bases {
			out = append(out, pymodel.Relationship{
				SourceFQN: base.FullyQualifiedName,
				TargetFQN: class.FullyQualifiedName,
				Kind:      pymodel.RelInheritance,
			})
		}
	}
	return append(out, compositions...)
}

// Build runs the resolution passes over a freshly walked tree and
// renders the PlantUML document. Resolution errors come back alongside
// the document; the diagram covers everything that did resolve.
func Build(root *pymodel.Package) (string, []pymodel.Relationship, []error) {
	var errs []error
	errs = append(errs, resolve.ResolveImports(root)...)
	resolve.ResolveBases(root)
	compositions, typeErrs := resolve.ResolveAttributeTypes(root)
	errs = append(errs, typeErrs...)

	relations := Relations(root, compositions)
	return Render(root, relations), relations, errs
}
