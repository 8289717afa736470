package pyparse

import (
	"github.com/pyplant/cli/internal/pymodel"
	"github.com/pyplant/cli/internal/treesitter"
)

// visitModule walks the top level statements of a parsed module and
// collects class definitions and from-imports. Plain "import x"
// statements never resolve attribute types in the documented projects
// and are skipped, as are module level functions.
func visitModule(root treesitter.Node, src []byte, module *pymodel.Module) {
	for _, stmt := range root.NamedChildren() {
		switch stmt.Kind() {
		case "import_from_statement":
			visitImportFrom(stmt, src, module)
		case "class_definition":
			attachClass(buildClass(stmt, nil, src), module)
		case "decorated_definition":
			def := stmt.ChildByFieldName("definition")
			if def.Kind() != "class_definition" {
				continue
			}
			var decorators []string
			for _, child := range stmt.NamedChildren() {
				if child.Kind() == "decorator" {
					decorators = append(decorators, decoratorName(child, src))
				}
			}
			attachClass(buildClass(def, decorators, src), module)
		}
	}
}

// attachClass assigns the class its fully qualified name and hangs it
// onto the module. Classes declared in an __init__ module belong to
// the package itself, so their qualified name drops the module part.
func attachClass(class *pymodel.Class, module *pymodel.Module) {
	if class == nil {
		return
	}
	if module.IsInit() {
		class.FullyQualifiedName = module.ParentFQN() + "." + class.Name
	} else {
		class.FullyQualifiedName = module.FullyQualifiedName + "." + class.Name
	}
	class.Module = module
	module.Classes = append(module.Classes, class)
}

// visitImportFrom records every name of one
// "from <module> import a, b as c" statement.
func visitImportFrom(stmt treesitter.Node, src []byte, module *pymodel.Module) {
	moduleNode := stmt.ChildByFieldName("module_name")
	level := 0
	moduleName := ""
	switch moduleNode.Kind() {
	case "relative_import":
		for _, child := range moduleNode.NamedChildren() {
			switch child.Kind() {
			case "import_prefix":
				level = len(child.Content(src))
			case "dotted_name":
				moduleName = child.Content(src)
			}
		}
	case "dotted_name":
		moduleName = moduleNode.Content(src)
	default:
		return
	}

	for _, child := range stmt.NamedChildren() {
		if child.StartByte() == moduleNode.StartByte() {
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			module.AddImport(&pymodel.ImportRecord{
				ModuleName: moduleName,
				Name:       child.Content(src),
				Level:      level,
			})
		case "aliased_import":
			module.AddImport(&pymodel.ImportRecord{
				ModuleName: moduleName,
				Name:       child.ChildByFieldName("name").Content(src),
				Alias:      child.ChildByFieldName("alias").Content(src),
				Level:      level,
			})
		}
	}
}
