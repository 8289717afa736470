package treesitter

import (
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Language wraps a tree-sitter language.
type Language struct {
	lang *tree_sitter.Language
	name string
}

var (
	pythonLang *Language
	loadOnce   sync.Once
)

// Python returns the statically compiled Python grammar.
// The language object is immutable and shared between parsers.
func Python() *Language {
	loadOnce.Do(func() {
		pythonLang = &Language{
			lang: tree_sitter.NewLanguage(tree_sitter_python.Language()),
			name: "python",
		}
	})
	return pythonLang
}
