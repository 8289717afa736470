package resolve

import (
	"strings"

	"github.com/pyplant/cli/internal/pymodel"
)

// Namespace resolves partially qualified names against one module:
// the module's own classes first, then its import table, then the
// Python builtins. Everything is looked up statically; no code from
// the documented project ever runs.
type Namespace struct {
	module *pymodel.Module
}

// NewNamespace creates a namespace over one module. Import records
// must already carry their fully qualified names.
func NewNamespace(m *pymodel.Module) *Namespace {
	return &Namespace{module: m}
}

// ResolveType resolves a dotted type name to its fully qualified name
// and the short display form. Both are empty when the name resolves to
// nothing.
func (ns *Namespace) ResolveType(pqn string) (fqn, short string) {
	if pqn == "" {
		return "", ""
	}
	head, rest, dotted := strings.Cut(pqn, ".")
	if !dotted {
		if class := ns.module.FindClass(pqn); class != nil {
			return class.FullyQualifiedName, class.Name
		}
		if ir := ns.module.Imports[pqn]; ir != nil && ir.FullyQualifiedName != "" {
			return ir.FullyQualifiedName + "." + ir.Name, pqn
		}
		if IsBuiltin(pqn) {
			return BuiltinsModule + "." + pqn, pqn
		}
		return "", ""
	}
	// Dotted names reach through a module import; the head is the
	// locally visible module name, possibly an alias.
	ir := ns.module.Imports[head]
	if ir == nil || ir.FullyQualifiedName == "" {
		return "", ""
	}
	short = pqn[strings.LastIndex(pqn, ".")+1:]
	return ir.FullyQualifiedName + "." + ir.Name + "." + rest, short
}

// ShortenCompound resolves every dotted name inside a compound type
// annotation and reassembles the display form, e.g.
// "Dict[str, weather.Temperature]" becomes "Dict[str, Temperature]".
// It also returns the fully qualified names the annotation involves.
// A name that resolves to nothing is a hard error; a part of a
// compound type must never be dropped silently.
func (ns *Namespace) ShortenCompound(expr string) (string, []string, error) {
	tokens, err := SplitCompoundType(expr, ns.module.FullyQualifiedName)
	if err != nil {
		return "", nil, err
	}
	var display strings.Builder
	var fqns []string
	for _, token := range tokens {
		if IsStructural(token) {
			display.WriteString(token)
			if token == tokenComma {
				display.WriteString(" ")
			}
			continue
		}
		fqn, short := ns.ResolveType(token)
		if short == "" {
			return "", nil, &UnresolvedSegmentError{
				Segment:    token,
				Expression: expr,
				ModuleFQN:  ns.module.FullyQualifiedName,
			}
		}
		display.WriteString(short)
		fqns = append(fqns, fqn)
	}
	return display.String(), fqns, nil
}

// UnresolvedSegmentError reports which name of which annotation failed
// to resolve. It unwraps to ErrUnresolvedSegment.
type UnresolvedSegmentError struct {
	Segment    string
	Expression string
	ModuleFQN  string
}

func (e *UnresolvedSegmentError) Error() string {
	return "name " + e.Segment + " of annotation " + e.Expression +
		" resolves to nothing in module " + e.ModuleFQN
}

func (e *UnresolvedSegmentError) Unwrap() error {
	return ErrUnresolvedSegment
}
