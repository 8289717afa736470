package diagram

import (
	"strings"
	"testing"

	"github.com/pyplant/cli/internal/pymodel"
)

func TestWriteNamespacesCollapsesLoneChains(t *testing.T) {
	items := []string{
		"garden.domain.package.Package",
		"garden.domain.package.Module",
		"garden.domain.umlclass.UmlClass",
		"garden.inspection.inspectclass.Inspector",
	}
	var sb strings.Builder
	writeNamespaces(&sb, items)

	want := "namespace garden {\n" +
		"  namespace domain {\n" +
		"    namespace package {}\n" +
		"    namespace umlclass {}\n" +
		"  }\n" +
		"  namespace inspection.inspectclass {}\n" +
		"}\n"
	if got := sb.String(); got != want {
		t.Errorf("namespaces:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteNamespacesSingleModule(t *testing.T) {
	var sb strings.Builder
	writeNamespaces(&sb, []string{"garden.plants.Fern", "garden.plants.Moss"})

	want := "namespace garden.plants {}\n"
	if got := sb.String(); got != want {
		t.Errorf("namespaces = %q, want %q", got, want)
	}
}

func TestMethodLine(t *testing.T) {
	cases := []struct {
		method pymodel.Method
		want   string
	}{
		{
			pymodel.Method{Name: "__init__", Params: []pymodel.Parameter{
				{Name: "self"}, {Name: "length", Type: "float"},
			}},
			"__init__(self, float length)",
		},
		{
			pymodel.Method{Name: "default_sharpness", IsStatic: true, ReturnType: "int"},
			"{static} int default_sharpness()",
		},
		{
			pymodel.Method{Name: "grow", ReturnType: "'Branch'", Params: []pymodel.Parameter{
				{Name: "self"}, {Name: "by", Type: "float"},
			}},
			"'Branch' grow(self, float by)",
		},
	}
	for _, tc := range cases {
		if got := methodLine(tc.method); got != tc.want {
			t.Errorf("methodLine(%s) = %q, want %q", tc.method.Name, got, tc.want)
		}
	}
}

func TestWriteClass(t *testing.T) {
	class := &pymodel.Class{
		Name:               "Pot",
		FullyQualifiedName: "greenhouse.pots.pot.Pot",
		Attributes: []pymodel.Attribute{
			{Name: "MAX_LOAD", Type: "float", Static: true},
			{Name: "length", Type: "float"},
			{Name: "label"},
		},
		Methods: []pymodel.Method{
			{Name: "__init__", Params: []pymodel.Parameter{{Name: "self"}}},
		},
	}
	var sb strings.Builder
	writeClass(&sb, class)

	want := "class greenhouse.pots.pot.Pot {\n" +
		"  MAX_LOAD: float {static}\n" +
		"  length: float\n" +
		"  label\n" +
		"  __init__(self)\n" +
		"}\n"
	if got := sb.String(); got != want {
		t.Errorf("class block:\n%s\nwant:\n%s", got, want)
	}
}

func TestRelationsOrdering(t *testing.T) {
	root := pymodel.NewPackage("pkg", "pkg", "/src/pkg", 0, pymodel.KindRegular)
	module := pymodel.NewModule("shapes", "pkg.shapes", "/src/pkg/shapes.py")
	root.AddModule(module)

	base := &pymodel.Class{Name: "Shape", FullyQualifiedName: "pkg.shapes.Shape", Module: module}
	circle := &pymodel.Class{
		Name:               "Circle",
		FullyQualifiedName: "pkg.shapes.Circle",
		Bases:              []*pymodel.Class{base},
		Module:             module,
	}
	square := &pymodel.Class{
		Name:               "Square",
		FullyQualifiedName: "pkg.shapes.Square",
		Bases:              []*pymodel.Class{base},
		Module:             module,
	}
	module.Classes = append(module.Classes, base, circle, square)

	compositions := []pymodel.Relationship{
		{SourceFQN: "pkg.shapes.Circle", TargetFQN: "pkg.shapes.Shape", Kind: pymodel.RelComposition},
	}
	relations := Relations(root, compositions)

	// Circle both derives from and holds a Shape. All inheritance
	// edges still precede every composition edge.
	want := []pymodel.Relationship{
		{SourceFQN: "pkg.shapes.Shape", TargetFQN: "pkg.shapes.Circle", Kind: pymodel.RelInheritance},
		{SourceFQN: "pkg.shapes.Shape", TargetFQN: "pkg.shapes.Square", Kind: pymodel.RelInheritance},
		{SourceFQN: "pkg.shapes.Circle", TargetFQN: "pkg.shapes.Shape", Kind: pymodel.RelComposition},
	}
	if len(relations) != len(want) {
		t.Fatalf("relations = %+v, want %+v", relations, want)
	}
	for i := range want {
		if relations[i] != want[i] {
			t.Errorf("relation %d = %+v, want %+v", i, relations[i], want[i])
		}
	}
	for i := 1; i < len(relations); i++ {
		if relations[i-1].Kind == pymodel.RelComposition && relations[i].Kind == pymodel.RelInheritance {
			t.Errorf("inheritance edge %d follows a composition edge", i)
		}
	}
}

func TestRenderFramesDocument(t *testing.T) {
	root := pymodel.NewPackage("pkg", "pkg", "/src/pkg", 0, pymodel.KindRegular)
	got := Render(root, nil)

	if !strings.HasPrefix(got, "@startuml pkg\n") {
		t.Errorf("document must open with @startuml, got %q", got)
	}
	if !strings.HasSuffix(got, "footer Generated by //pyplant//\n@enduml\n") {
		t.Errorf("document must close with footer and @enduml, got %q", got)
	}
}
