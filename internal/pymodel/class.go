package pymodel

// Attribute is one attribute of a class. Static marks a class-level
// (shared) attribute; otherwise the attribute is per-instance.
type Attribute struct {
	Name string
	// RawType is the annotation exactly as written in source, or the
	// annotation inherited from a constructor variable. Empty when the
	// attribute is untyped.
	RawType string
	// Type is the shortened display type, filled by the type resolution
	// pass once imports are resolved. Empty when unknown.
	Type   string
	Static bool
	// FromInit marks attributes discovered by constructor analysis.
	// Only those feed composition edges.
	FromInit bool
}

// Equal reports structural equality (name + raw type + staticness).
func (a Attribute) Equal(other Attribute) bool {
	return a.Name == other.Name && a.RawType == other.RawType && a.Static == other.Static
}

// Parameter is one method parameter. The receiver parameter of an
// instance or class method carries an empty Type.
type Parameter struct {
	Name string
	Type string
}

// Method is one method of a class. Params preserve declaration order.
type Method struct {
	Name       string
	Params     []Parameter
	IsStatic   bool
	IsClass    bool
	IsGetter   bool
	ReturnType string
}

// Class is one discovered class definition.
//
// Base classes are kept in two stages: BaseNames holds the dotted names
// exactly as written in the class statement, and Bases holds the classes
// they resolved to inside the documented tree. Names that resolve to
// nothing (third-party or standard-library bases) never make it into
// Bases.
type Class struct {
	Name               string
	FullyQualifiedName string
	Attributes         []Attribute
	Methods            []Method
	BaseNames          []string
	Bases              []*Class
	// Module is a back-reference to the owning module.
	Module *Module
}

// AddAttribute appends an attribute, overwriting a previously seen
// attribute of the same name in place so that declaration order is kept
// while later writes win.
func (c *Class) AddAttribute(attr Attribute) {
	for i, existing := range c.Attributes {
		if existing.Name == attr.Name {
			c.Attributes[i] = attr
			return
		}
	}
	c.Attributes = append(c.Attributes, attr)
}
