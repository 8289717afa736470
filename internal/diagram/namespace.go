package diagram

import (
	"strings"
)

// nsPackage is one node of the namespace tree rebuilt from the
// qualified names of the diagram items. Child order is insertion
// order, which follows item discovery order.
type nsPackage struct {
	name      string
	children  map[string]*nsPackage
	order     []string
	itemCount int
}

func newNSPackage(name string) *nsPackage {
	return &nsPackage{name: name, children: map[string]*nsPackage{}}
}

func (p *nsPackage) child(name string) *nsPackage {
	if sub, ok := p.children[name]; ok {
		return sub
	}
	sub := newNSPackage(name)
	p.children[name] = sub
	p.order = append(p.order, name)
	return sub
}

// buildNamespaceTree files every item under the package chain its
// qualified name spells, the last segment being the item itself.
func buildNamespaceTree(itemFQNs []string) *nsPackage {
	root := newNSPackage("")
	for _, fqn := range itemFQNs {
		parts := strings.Split(fqn, ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			node = node.child(part)
		}
		node.itemCount++
	}
	return root
}

// writeNamespaces renders the namespace declarations for the given
// item names. Chains of packages holding no item of their own collapse
// into a single dotted namespace line.
func writeNamespaces(sb *strings.Builder, itemFQNs []string) {
	buildNamespaceTree(itemFQNs).write(sb, nil, 0)
}

// write emits the node if it holds items or does not have exactly one
// child; otherwise the node merges its name into its only child's
// declaration.
func (p *nsPackage) write(sb *strings.Builder, parentNames []string, indent int) {
	names := parentNames
	if p.name != "" {
		names = append(append([]string{}, parentNames...), p.name)
	}
	printed := len(names) > 0 && (p.itemCount > 0 || len(p.order) != 1)
	if !printed {
		for _, name := range p.order {
			p.children[name].write(sb, names, indent)
		}
		return
	}

	pad := strings.Repeat("  ", indent)
	sb.WriteString(pad)
	sb.WriteString("namespace ")
	sb.WriteString(strings.Join(names, "."))
	if len(p.order) == 0 {
		sb.WriteString(" {}\n")
		return
	}
	sb.WriteString(" {\n")
	for _, name := range p.order {
		p.children[name].write(sb, nil, indent+1)
	}
	sb.WriteString(pad)
	sb.WriteString("}\n")
}
