package resolve

// BuiltinsModule is the namespace Python builtin types live in.
const BuiltinsModule = "builtins"

// pythonBuiltins lists the builtin names an annotation may legally
// reference without any import.
var pythonBuiltins = map[string]bool{
	"bool":                true,
	"bytearray":           true,
	"bytes":               true,
	"classmethod":         true,
	"complex":             true,
	"dict":                true,
	"enumerate":           true,
	"filter":              true,
	"float":               true,
	"frozenset":           true,
	"int":                 true,
	"list":                true,
	"map":                 true,
	"memoryview":          true,
	"object":              true,
	"property":            true,
	"range":               true,
	"reversed":            true,
	"set":                 true,
	"slice":               true,
	"staticmethod":        true,
	"str":                 true,
	"super":               true,
	"tuple":               true,
	"type":                true,
	"zip":                 true,
	"BaseException":       true,
	"Exception":           true,
	"ArithmeticError":     true,
	"AttributeError":      true,
	"IndexError":          true,
	"KeyError":            true,
	"LookupError":         true,
	"NotImplementedError": true,
	"OSError":             true,
	"RuntimeError":        true,
	"StopIteration":       true,
	"TypeError":           true,
	"ValueError":          true,
	"None":                true,
	"NoneType":            true,
}

// IsBuiltin reports whether the simple name is a Python builtin.
func IsBuiltin(name string) bool {
	return pythonBuiltins[name]
}
