package pyparse

import (
	"strings"

	"github.com/pyplant/cli/internal/treesitter"
)

// dottedName flattens an identifier or attribute chain such as
// "abc.ABC" into its dotted source text. Anything else, a subscripted
// generic base for instance, yields an empty string.
func dottedName(n treesitter.Node, src []byte) string {
	switch n.Kind() {
	case "identifier", "dotted_name":
		return n.Content(src)
	case "attribute":
		object := dottedName(n.ChildByFieldName("object"), src)
		attr := n.ChildByFieldName("attribute").Content(src)
		if object == "" || attr == "" {
			return ""
		}
		return object + "." + attr
	}
	return ""
}

// annotationText returns a type annotation exactly as written, with
// surrounding whitespace collapsed.
func annotationText(n treesitter.Node, src []byte) string {
	if n.IsNull() {
		return ""
	}
	return strings.TrimSpace(n.Content(src))
}

// decoratorName extracts the dotted name of one decorator node, seeing
// through a decorator call like "@lru_cache()".
func decoratorName(n treesitter.Node, src []byte) string {
	if n.NamedChildCount() == 0 {
		return ""
	}
	expr := n.NamedChild(0)
	if expr.Kind() == "call" {
		expr = expr.ChildByFieldName("function")
	}
	return dottedName(expr, src)
}

// hasDecorator reports whether the dotted decorator name or its last
// segment matches.
func hasDecorator(decorators []string, name string) bool {
	for _, d := range decorators {
		if d == name || strings.HasSuffix(d, "."+name) {
			return true
		}
	}
	return false
}
