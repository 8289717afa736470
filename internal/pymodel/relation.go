package pymodel

import "fmt"

// RelationKind is the type of an edge between two classes.
type RelationKind int

const (
	RelInheritance RelationKind = 1
	RelComposition RelationKind = 2
)

// Arrow returns the PlantUML arrow head for the kind.
func (k RelationKind) Arrow() string {
	switch k {
	case RelInheritance:
		return "<|"
	case RelComposition:
		return "*"
	default:
		return ""
	}
}

// String returns the human-readable name of the kind.
func (k RelationKind) String() string {
	switch k {
	case RelInheritance:
		return "inheritance"
	case RelComposition:
		return "composition"
	default:
		return fmt.Sprintf("relation(%d)", int(k))
	}
}

// Relationship is a derived edge between two classes of the documented
// tree. Relationships are regenerated from the resolved class graph on
// every diagram assembly; they have no lifecycle of their own.
type Relationship struct {
	SourceFQN string
	TargetFQN string
	Kind      RelationKind
}
