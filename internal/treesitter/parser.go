package treesitter

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Parser wraps a tree-sitter parser configured for one language.
type Parser struct {
	p *tree_sitter.Parser
}

// NewParser creates a parser for the given language.
func NewParser(lang *Language) (*Parser, error) {
	p := tree_sitter.NewParser()
	if err := p.SetLanguage(lang.lang); err != nil {
		p.Close()
		return nil, fmt.Errorf("set language %s: %w", lang.name, err)
	}
	return &Parser{p: p}, nil
}

// ParseString parses a source string and returns a tree.
func (p *Parser) ParseString(source []byte) (*Tree, error) {
	t := p.p.Parse(source, nil)
	if t == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree")
	}
	return &Tree{t: t}, nil
}

// Close deletes the parser.
func (p *Parser) Close() {
	if p.p != nil {
		p.p.Close()
		p.p = nil
	}
}

// Tree wraps a tree-sitter tree.
type Tree struct {
	t *tree_sitter.Tree
}

// RootNode returns the root node of the tree.
func (t *Tree) RootNode() Node {
	return Node{n: t.t.RootNode()}
}

// Close deletes the tree.
func (t *Tree) Close() {
	if t.t != nil {
		t.t.Close()
		t.t = nil
	}
}

// Node wraps a tree-sitter node. The zero Node is null.
type Node struct {
	n *tree_sitter.Node
}

// IsNull returns true if the node is absent.
func (n Node) IsNull() bool {
	return n.n == nil
}

// Kind returns the node's grammar kind string (e.g. "class_definition").
func (n Node) Kind() string {
	if n.n == nil {
		return ""
	}
	return n.n.Kind()
}

// StartByte returns the start byte offset.
func (n Node) StartByte() uint {
	if n.n == nil {
		return 0
	}
	return n.n.StartByte()
}

// NamedChildCount returns the number of named children.
func (n Node) NamedChildCount() uint {
	if n.n == nil {
		return 0
	}
	return n.n.NamedChildCount()
}

// NamedChild returns the named child at the given index.
func (n Node) NamedChild(index uint) Node {
	if n.n == nil {
		return Node{}
	}
	return Node{n: n.n.NamedChild(index)}
}

// ChildByFieldName returns the child bound to the given grammar field.
func (n Node) ChildByFieldName(fieldName string) Node {
	if n.n == nil {
		return Node{}
	}
	return Node{n: n.n.ChildByFieldName(fieldName)}
}

// Content extracts the node's original source text.
func (n Node) Content(source []byte) string {
	if n.n == nil {
		return ""
	}
	return n.n.Utf8Text(source)
}

// NamedChildren returns all named children in order.
func (n Node) NamedChildren() []Node {
	count := n.NamedChildCount()
	children := make([]Node, 0, count)
	for i := uint(0); i < count; i++ {
		children = append(children, n.NamedChild(i))
	}
	return children
}
