package pyparse

import (
	"github.com/pyplant/cli/internal/pymodel"
	"github.com/pyplant/cli/internal/treesitter"
)

// variable is one name in the constructor's scope with the type
// annotation it carried, empty when it had none.
type variable struct {
	name     string
	typeExpr string
}

// analyzeConstructor walks the constructor body and derives the
// instance attributes it assigns on the receiver. Assignments are
// found at any nesting depth except inside nested function or class
// definitions. The scope starts from the annotated constructor
// parameters and grows with every local variable bound along the way.
//
// An attribute's type comes from its explicit annotation when there is
// one; otherwise it is inherited from scope when the assigned value
// references exactly one in-scope variable.
func analyzeConstructor(body treesitter.Node, src []byte, receiver string, scope []variable) []pymodel.Attribute {
	a := &constructorAnalyzer{src: src, receiver: receiver, scope: scope}
	a.walk(body)
	return a.attributes
}

type constructorAnalyzer struct {
	src        []byte
	receiver   string
	scope      []variable
	attributes []pymodel.Attribute
}

func (a *constructorAnalyzer) walk(n treesitter.Node) {
	for _, child := range n.NamedChildren() {
		switch child.Kind() {
		case "function_definition", "class_definition", "decorated_definition", "lambda":
			// nested scopes assign nothing on the receiver
		case "assignment":
			a.visitAssignment(child)
		default:
			a.walk(child)
		}
	}
}

func (a *constructorAnalyzer) visitAssignment(assign treesitter.Node) {
	annotation := annotationText(assign.ChildByFieldName("type"), a.src)
	targets := []treesitter.Node{assign.ChildByFieldName("left")}
	value := assign.ChildByFieldName("right")
	for value.Kind() == "assignment" {
		targets = append(targets, value.ChildByFieldName("left"))
		value = value.ChildByFieldName("right")
	}

	var bound []variable
	for _, target := range targets {
		switch target.Kind() {
		case "pattern_list", "tuple_pattern":
			elements := target.NamedChildren()
			var values []treesitter.Node
			if value.Kind() == "expression_list" || value.Kind() == "tuple" {
				values = value.NamedChildren()
			}
			for i, element := range elements {
				var elementValue treesitter.Node
				if i < len(values) {
					elementValue = values[i]
				}
				bound = append(bound, a.classify(element, "", elementValue)...)
			}
		default:
			bound = append(bound, a.classify(target, annotation, value)...)
		}
	}
	// Names become visible only after the whole statement ran.
	a.scope = append(a.scope, bound...)
}

// classify handles one assignment target. An attribute access on the
// receiver declares an instance attribute; a bare name binds a local
// variable; anything else, subscripts or foreign attributes, is
// ignored. Returns the variables the target binds.
func (a *constructorAnalyzer) classify(target treesitter.Node, annotation string, value treesitter.Node) []variable {
	switch target.Kind() {
	case "identifier":
		name := target.Content(a.src)
		if name == a.receiver {
			return nil
		}
		typeExpr := annotation
		if typeExpr == "" {
			typeExpr = a.inferType(value)
		}
		return []variable{{name: name, typeExpr: typeExpr}}
	case "attribute":
		object := target.ChildByFieldName("object")
		if object.Kind() != "identifier" || object.Content(a.src) != a.receiver {
			return nil
		}
		typeExpr := annotation
		if typeExpr == "" {
			typeExpr = a.inferType(value)
		}
		a.attributes = append(a.attributes, pymodel.Attribute{
			Name:     target.ChildByFieldName("attribute").Content(a.src),
			RawType:  typeExpr,
			FromInit: true,
		})
	}
	return nil
}

// inferType inherits a type from scope when the value expression
// references exactly one in-scope variable. The most recent binding of
// that name wins.
func (a *constructorAnalyzer) inferType(value treesitter.Node) string {
	if value.IsNull() {
		return ""
	}
	seen := map[string]bool{}
	match := ""
	count := 0
	for _, name := range referencedNames(value, a.src) {
		if seen[name] {
			continue
		}
		seen[name] = true
		if typeExpr, ok := a.lookup(name); ok {
			match = typeExpr
			count++
		}
	}
	if count == 1 {
		return match
	}
	return ""
}

func (a *constructorAnalyzer) lookup(name string) (string, bool) {
	for i := len(a.scope) - 1; i >= 0; i-- {
		if a.scope[i].name == name {
			return a.scope[i].typeExpr, true
		}
	}
	return "", false
}

// referencedNames collects the bare names a value expression reads, in
// source order. Attribute accesses contribute their object chain only,
// keyword arguments their value only.
func referencedNames(n treesitter.Node, src []byte) []string {
	switch n.Kind() {
	case "identifier":
		return []string{n.Content(src)}
	case "attribute":
		return referencedNames(n.ChildByFieldName("object"), src)
	case "keyword_argument":
		return referencedNames(n.ChildByFieldName("value"), src)
	}
	var names []string
	for _, child := range n.NamedChildren() {
		names = append(names, referencedNames(child, src)...)
	}
	return names
}
