package pyparse

import (
	"fmt"

	"github.com/pyplant/cli/internal/pymodel"
	"github.com/pyplant/cli/internal/treesitter"
)

// Parser turns Python sources into module records. It wraps one
// tree-sitter parser and is not safe for concurrent use.
type Parser struct {
	ts *treesitter.Parser
}

// NewParser creates a parser for Python sources.
func NewParser() (*Parser, error) {
	ts, err := treesitter.NewParser(treesitter.Python())
	if err != nil {
		return nil, err
	}
	return &Parser{ts: ts}, nil
}

// Close releases the underlying parser.
func (p *Parser) Close() {
	if p.ts != nil {
		p.ts.Close()
		p.ts = nil
	}
}

// ParseModule fills the module record with the classes and imports
// found in the given source.
func (p *Parser) ParseModule(source []byte, module *pymodel.Module) error {
	tree, err := p.ts.ParseString(source)
	if err != nil {
		return fmt.Errorf("parse %s: %w", module.Path, err)
	}
	defer tree.Close()
	visitModule(tree.RootNode(), source, module)
	return nil
}
