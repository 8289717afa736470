package diagram

import (
	"strings"

	"github.com/pyplant/cli/internal/pymodel"
)

const (
	documentStart = "@startuml "
	documentEnd   = "@enduml\n"
	footer        = "footer Generated by //pyplant//\n"
	staticMarker  = "{static}"
)

// Render serializes the resolved class tree and its relationships as
// one PlantUML document.
func Render(root *pymodel.Package, relations []pymodel.Relationship) string {
	classes := root.AllClasses()
	var sb strings.Builder

	sb.WriteString(documentStart)
	sb.WriteString(root.FullyQualifiedName)
	sb.WriteString("\n")

	fqns := make([]string, len(classes))
	for i, class := range classes {
		fqns[i] = class.FullyQualifiedName
	}
	writeNamespaces(&sb, fqns)

	for _, class := range classes {
		writeClass(&sb, class)
	}
	for _, rel := range relations {
		sb.WriteString(rel.SourceFQN)
		sb.WriteString(" ")
		sb.WriteString(rel.Kind.Arrow())
		sb.WriteString("-- ")
		sb.WriteString(rel.TargetFQN)
		sb.WriteString("\n")
	}

	sb.WriteString(footer)
	sb.WriteString(documentEnd)
	return sb.String()
}

func writeClass(sb *strings.Builder, class *pymodel.Class) {
	sb.WriteString("class ")
	sb.WriteString(class.FullyQualifiedName)
	sb.WriteString(" {\n")
	for _, attr := range class.Attributes {
		sb.WriteString("  ")
		sb.WriteString(attr.Name)
		if attr.Type != "" {
			sb.WriteString(": ")
			sb.WriteString(attr.Type)
		}
		if attr.Static {
			sb.WriteString(" ")
			sb.WriteString(staticMarker)
		}
		sb.WriteString("\n")
	}
	for _, method := range class.Methods {
		sb.WriteString("  ")
		sb.WriteString(methodLine(method))
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
}

// methodLine renders one method signature, e.g.
// "{static} int default_sharpness()". Parameter and return annotations
// stay exactly as written in the source.
func methodLine(method pymodel.Method) string {
	var parts []string
	if method.IsStatic {
		parts = append(parts, staticMarker)
	}
	if method.ReturnType != "" {
		parts = append(parts, method.ReturnType)
	}
	params := make([]string, len(method.Params))
	for i, param := range method.Params {
		if param.Type != "" {
			params[i] = param.Type + " " + param.Name
		} else {
			params[i] = param.Name
		}
	}
	parts = append(parts, method.Name+"("+strings.Join(params, ", ")+")")
	return strings.Join(parts, " ")
}
