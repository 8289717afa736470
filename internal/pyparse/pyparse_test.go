package pyparse

import (
	"testing"

	"github.com/pyplant/cli/internal/pymodel"
)

// parseSource parses one source snippet into a fresh module record.
func parseSource(t *testing.T, moduleName, fqn, source string) *pymodel.Module {
	t.Helper()
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	t.Cleanup(parser.Close)

	module := pymodel.NewModule(moduleName, fqn, "/src/"+moduleName+".py")
	if err := parser.ParseModule([]byte(source), module); err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	return module
}

func singleClass(t *testing.T, module *pymodel.Module) *pymodel.Class {
	t.Helper()
	if len(module.Classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(module.Classes))
	}
	return module.Classes[0]
}

func TestParseModuleImports(t *testing.T) {
	module := parseSource(t, "fern", "greenhouse.plants.fern", `
from typing import List, Optional
from ..pots.pot import Pot as ClayPot
from . import moss
from dataclasses import *
`)

	// The wildcard import carries no usable name and is dropped.
	if len(module.ImportOrder) != 4 {
		t.Fatalf("import order = %v, want 4 entries", module.ImportOrder)
	}

	list := module.Imports["List"]
	if list == nil || list.ModuleName != "typing" || list.Level != 0 {
		t.Errorf("List import = %+v", list)
	}

	pot := module.Imports["ClayPot"]
	if pot == nil {
		t.Fatal("aliased import not recorded under its alias")
	}
	if pot.ModuleName != "pots.pot" || pot.Name != "Pot" || pot.Level != 2 {
		t.Errorf("ClayPot import = %+v", pot)
	}

	moss := module.Imports["moss"]
	if moss == nil || moss.ModuleName != "" || moss.Level != 1 {
		t.Errorf("moss import = %+v", moss)
	}
}

func TestParseClassWithBases(t *testing.T) {
	module := parseSource(t, "branch", "orchard.branch", `
class Branch:
    pass

class OakBranch(Branch, abc.ABC, metaclass=Meta):
    pass
`)
	if len(module.Classes) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(module.Classes))
	}
	oak := module.Classes[1]
	if oak.FullyQualifiedName != "orchard.branch.OakBranch" {
		t.Errorf("fqn = %q", oak.FullyQualifiedName)
	}
	want := []string{"Branch", "abc.ABC"}
	if len(oak.BaseNames) != len(want) {
		t.Fatalf("base names = %v, want %v", oak.BaseNames, want)
	}
	for i := range want {
		if oak.BaseNames[i] != want[i] {
			t.Errorf("base[%d] = %q, want %q", i, oak.BaseNames[i], want[i])
		}
	}
}

func TestInitModuleClassBelongsToPackage(t *testing.T) {
	module := parseSource(t, pymodel.InitModuleName, "orchard.tools.__init__", `
class Shears:
    pass
`)
	class := singleClass(t, module)
	if class.FullyQualifiedName != "orchard.tools.Shears" {
		t.Errorf("fqn = %q, want orchard.tools.Shears", class.FullyQualifiedName)
	}
}

func TestParseClassAttributes(t *testing.T) {
	module := parseSource(t, "pot", "greenhouse.pots.pot", `
class Pot:
    capacity: float
    shape = 'round'
    width = height = 10
`)
	class := singleClass(t, module)
	if len(class.Attributes) != 4 {
		t.Fatalf("attributes = %+v, want 4", class.Attributes)
	}
	capacity := class.Attributes[0]
	if capacity.Name != "capacity" || capacity.RawType != "float" || !capacity.Static {
		t.Errorf("capacity = %+v", capacity)
	}
	for _, name := range []string{"shape", "width", "height"} {
		found := false
		for _, attr := range class.Attributes {
			if attr.Name == name {
				found = true
				if attr.RawType != "" || !attr.Static {
					t.Errorf("%s = %+v", name, attr)
				}
			}
		}
		if !found {
			t.Errorf("attribute %s missing", name)
		}
	}
}

func TestParseDataclassAttributes(t *testing.T) {
	module := parseSource(t, "address", "orchard.address", `
from dataclasses import dataclass

@dataclass
class Address:
    street: str
    zipcode: str
    city: str
`)
	class := singleClass(t, module)
	if len(class.Attributes) != 3 {
		t.Fatalf("attributes = %+v, want 3", class.Attributes)
	}
	wantNames := []string{"street", "zipcode", "city"}
	for i, attr := range class.Attributes {
		if attr.Name != wantNames[i] || attr.RawType != "str" {
			t.Errorf("attribute %d = %+v", i, attr)
		}
		if attr.Static {
			t.Errorf("dataclass field %s must be per-instance", attr.Name)
		}
	}
	if len(class.Methods) != 0 {
		t.Errorf("methods = %+v, want none", class.Methods)
	}
}

func TestParseMethods(t *testing.T) {
	module := parseSource(t, "point", "orchard.point", `
class Point:
    def move(self, dx: float, dy: float = 0.0) -> 'Point':
        pass

    @staticmethod
    def origin() -> 'Point':
        pass

    @classmethod
    def from_tuple(cls, pair: tuple) -> 'Point':
        pass

    @property
    def norm(self) -> float:
        pass
`)
	class := singleClass(t, module)
	if len(class.Methods) != 3 {
		t.Fatalf("methods = %+v, want 3", class.Methods)
	}

	move := class.Methods[0]
	if move.Name != "move" || move.IsStatic || move.IsClass {
		t.Errorf("move = %+v", move)
	}
	if move.ReturnType != "'Point'" {
		t.Errorf("move return type = %q", move.ReturnType)
	}
	if len(move.Params) != 3 {
		t.Fatalf("move params = %+v", move.Params)
	}
	if move.Params[0].Name != "self" || move.Params[0].Type != "" {
		t.Errorf("receiver = %+v", move.Params[0])
	}
	if move.Params[1].Name != "dx" || move.Params[1].Type != "float" {
		t.Errorf("dx = %+v", move.Params[1])
	}
	if move.Params[2].Name != "dy" || move.Params[2].Type != "float" {
		t.Errorf("dy = %+v", move.Params[2])
	}

	origin := class.Methods[1]
	if !origin.IsStatic || len(origin.Params) != 0 {
		t.Errorf("origin = %+v", origin)
	}

	fromTuple := class.Methods[2]
	if !fromTuple.IsClass || fromTuple.Params[0].Name != "cls" || fromTuple.Params[0].Type != "" {
		t.Errorf("from_tuple = %+v", fromTuple)
	}

	// The property getter becomes an attribute, not a method.
	if len(class.Attributes) != 1 {
		t.Fatalf("attributes = %+v, want the norm getter", class.Attributes)
	}
	if norm := class.Attributes[0]; norm.Name != "norm" || norm.RawType != "float" || norm.Static {
		t.Errorf("norm = %+v", norm)
	}
}

func TestConstructorAttributes(t *testing.T) {
	module := parseSource(t, "coordinates", "orchard.coordinates", `
class Coordinates:
    def __init__(self, x: float, y: float):
        self.x: float = x
        self.y = y
        self.label = 'origin' if x == 0 and y == 0 else ''
`)
	class := singleClass(t, module)
	wantTypes := map[string]string{"x": "float", "y": "float", "label": ""}
	if len(class.Attributes) != len(wantTypes) {
		t.Fatalf("attributes = %+v", class.Attributes)
	}
	for _, attr := range class.Attributes {
		wantType, ok := wantTypes[attr.Name]
		if !ok {
			t.Errorf("unexpected attribute %+v", attr)
			continue
		}
		if attr.RawType != wantType {
			t.Errorf("%s raw type = %q, want %q", attr.Name, attr.RawType, wantType)
		}
		if !attr.FromInit {
			t.Errorf("%s must be marked constructor-derived", attr.Name)
		}
	}
	if len(class.Methods) != 1 || class.Methods[0].Name != "__init__" {
		t.Errorf("methods = %+v", class.Methods)
	}
}

func TestConstructorMultiAssignment(t *testing.T) {
	module := parseSource(t, "point", "orchard.point", `
class Point:
    def __init__(self, xx: int, yy: str):
        self.x, other.z, self.y = xx, 3, yy + 1
`)
	class := singleClass(t, module)
	if len(class.Attributes) != 2 {
		t.Fatalf("attributes = %+v, want exactly x and y", class.Attributes)
	}
	x, y := class.Attributes[0], class.Attributes[1]
	if x.Name != "x" || x.RawType != "int" {
		t.Errorf("x = %+v, want type int inherited from xx", x)
	}
	if y.Name != "y" || y.RawType != "str" {
		t.Errorf("y = %+v, want type str inherited from yy", y)
	}
}

func TestConstructorVariableScope(t *testing.T) {
	module := parseSource(t, "fern", "greenhouse.plants.fern", `
class Fern:
    def __init__(self):
        height: float = 12.0
        self.height = height
        self.width = self.height
`)
	class := singleClass(t, module)
	if len(class.Attributes) != 2 {
		t.Fatalf("attributes = %+v", class.Attributes)
	}
	if h := class.Attributes[0]; h.Name != "height" || h.RawType != "float" {
		t.Errorf("height = %+v, want type float from local variable", h)
	}
	if w := class.Attributes[1]; w.Name != "width" || w.RawType != "" {
		t.Errorf("width = %+v, want untyped", w)
	}
}

func TestConstructorLaterAssignmentOverwritesInPlace(t *testing.T) {
	module := parseSource(t, "pot", "greenhouse.pots.pot", `
class Pot:
    size = 1

    def __init__(self, capacity: float):
        self.capacity = 0
        self.shape = 'round'
        self.capacity = capacity
`)
	class := singleClass(t, module)
	wantOrder := []string{"size", "capacity", "shape"}
	if len(class.Attributes) != len(wantOrder) {
		t.Fatalf("attributes = %+v", class.Attributes)
	}
	for i, name := range wantOrder {
		if class.Attributes[i].Name != name {
			t.Errorf("attribute %d = %q, want %q", i, class.Attributes[i].Name, name)
		}
	}
	if got := class.Attributes[1].RawType; got != "float" {
		t.Errorf("capacity raw type = %q, the later assignment must win", got)
	}
}

func TestConstructorIgnoresSubscriptAndForeignTargets(t *testing.T) {
	module := parseSource(t, "grid", "orchard.grid", `
class Grid:
    def __init__(self, cells):
        cells[0] = 1
        cells.owner = self
        self.cells = cells
`)
	class := singleClass(t, module)
	if len(class.Attributes) != 1 || class.Attributes[0].Name != "cells" {
		t.Fatalf("attributes = %+v, want only cells", class.Attributes)
	}
}
