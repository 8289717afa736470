package pyparse

import (
	"github.com/pyplant/cli/internal/pymodel"
	"github.com/pyplant/cli/internal/treesitter"
)

// buildClass turns one class_definition node into a class record. The
// fully qualified name is left for the caller, which knows the module.
func buildClass(node treesitter.Node, decorators []string, src []byte) *pymodel.Class {
	name := node.ChildByFieldName("name").Content(src)
	if name == "" {
		return nil
	}
	class := &pymodel.Class{Name: name}
	isDataclass := hasDecorator(decorators, "dataclass")

	if supers := node.ChildByFieldName("superclasses"); !supers.IsNull() {
		for _, arg := range supers.NamedChildren() {
			if base := dottedName(arg, src); base != "" {
				class.BaseNames = append(class.BaseNames, base)
			}
		}
	}

	body := node.ChildByFieldName("body")
	for _, stmt := range body.NamedChildren() {
		switch stmt.Kind() {
		case "expression_statement":
			if assign := stmt.NamedChild(0); assign.Kind() == "assignment" {
				visitClassAssignment(class, assign, isDataclass, src)
			}
		case "function_definition":
			visitMethod(class, stmt, nil, src)
		case "decorated_definition":
			def := stmt.ChildByFieldName("definition")
			if def.Kind() != "function_definition" {
				continue
			}
			var methodDecorators []string
			for _, child := range stmt.NamedChildren() {
				if child.Kind() == "decorator" {
					methodDecorators = append(methodDecorators, decoratorName(child, src))
				}
			}
			visitMethod(class, def, methodDecorators, src)
		}
	}
	return class
}

// visitClassAssignment records class body assignments as attributes.
// Plain assignments declare class attributes, shared across instances;
// under a dataclass decorator every field is per-instance instead.
// Chained assignments like "x = y = 0" declare one attribute per name.
func visitClassAssignment(class *pymodel.Class, assign treesitter.Node, isDataclass bool, src []byte) {
	annotation := annotationText(assign.ChildByFieldName("type"), src)
	targets := []treesitter.Node{assign.ChildByFieldName("left")}
	value := assign.ChildByFieldName("right")
	for value.Kind() == "assignment" {
		targets = append(targets, value.ChildByFieldName("left"))
		value = value.ChildByFieldName("right")
	}
	for _, target := range targets {
		if target.Kind() != "identifier" {
			continue
		}
		class.AddAttribute(pymodel.Attribute{
			Name:    target.Content(src),
			RawType: annotation,
			Static:  !isDataclass,
		})
	}
}

// visitMethod records one method. A property getter folds into an
// instance attribute typed by the getter's return annotation. The
// constructor additionally feeds instance attribute discovery.
func visitMethod(class *pymodel.Class, fn treesitter.Node, decorators []string, src []byte) {
	method := pymodel.Method{
		Name:       fn.ChildByFieldName("name").Content(src),
		IsStatic:   hasDecorator(decorators, "staticmethod"),
		IsClass:    hasDecorator(decorators, "classmethod"),
		IsGetter:   hasDecorator(decorators, "property"),
		ReturnType: annotationText(fn.ChildByFieldName("return_type"), src),
	}
	method.Params = visitParameters(fn.ChildByFieldName("parameters"), src)

	receiver := ""
	if !method.IsStatic && len(method.Params) > 0 {
		// The receiver never shows a type, whatever the source says.
		receiver = method.Params[0].Name
		method.Params[0].Type = ""
	}

	if method.IsGetter {
		class.AddAttribute(pymodel.Attribute{Name: method.Name, RawType: method.ReturnType})
		return
	}
	class.Methods = append(class.Methods, method)

	if method.Name == "__init__" && receiver != "" {
		scope := make([]variable, 0, len(method.Params))
		for _, param := range method.Params[1:] {
			scope = append(scope, variable{name: param.Name, typeExpr: param.Type})
		}
		for _, attr := range analyzeConstructor(fn.ChildByFieldName("body"), src, receiver, scope) {
			class.AddAttribute(attr)
		}
	}
}

// visitParameters flattens a parameter list, keeping declared order.
// Separator markers ("*" and "/") carry no name and are dropped.
func visitParameters(params treesitter.Node, src []byte) []pymodel.Parameter {
	var out []pymodel.Parameter
	for _, p := range params.NamedChildren() {
		switch p.Kind() {
		case "identifier":
			out = append(out, pymodel.Parameter{Name: p.Content(src)})
		case "typed_parameter":
			out = append(out, pymodel.Parameter{
				Name: p.NamedChild(0).Content(src),
				Type: annotationText(p.ChildByFieldName("type"), src),
			})
		case "default_parameter":
			out = append(out, pymodel.Parameter{
				Name: p.ChildByFieldName("name").Content(src),
			})
		case "typed_default_parameter":
			out = append(out, pymodel.Parameter{
				Name: p.ChildByFieldName("name").Content(src),
				Type: annotationText(p.ChildByFieldName("type"), src),
			})
		case "list_splat_pattern", "dictionary_splat_pattern":
			if p.NamedChildCount() > 0 {
				out = append(out, pymodel.Parameter{Name: p.NamedChild(0).Content(src)})
			}
		}
	}
	return out
}
