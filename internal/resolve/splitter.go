package resolve

import (
	"fmt"
	"strings"
)

// Structural tokens a compound type expression is held together by.
const (
	tokenOpenBracket  = "["
	tokenCloseBracket = "]"
	tokenComma        = ","
)

// IsStructural reports whether a token is a bracket or comma rather
// than a dotted name.
func IsStructural(token string) bool {
	switch token {
	case tokenOpenBracket, tokenCloseBracket, tokenComma:
		return true
	}
	return false
}

// SplitCompoundType tokenizes a compound type annotation such as
// "Dict[str, List[weather.Temperature]]" into dotted names and the
// structural tokens between them. Quotes around forward references are
// stripped, whitespace is dropped. The enclosing module name only
// flavors error messages.
func SplitCompoundType(expr, moduleFQN string) ([]string, error) {
	var tokens []string
	var name strings.Builder
	flush := func() {
		if name.Len() > 0 {
			tokens = append(tokens, name.String())
			name.Reset()
		}
	}
	for _, r := range expr {
		switch {
		case r == '[':
			flush()
			tokens = append(tokens, tokenOpenBracket)
		case r == ']':
			flush()
			tokens = append(tokens, tokenCloseBracket)
		case r == ',':
			flush()
			tokens = append(tokens, tokenComma)
		case r == '\'' || r == '"':
			// forward reference quoting carries no meaning here
		case r == ' ' || r == '\t' || r == '\n':
			flush()
		case r == '.' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			name.WriteRune(r)
		default:
			return nil, fmt.Errorf("%w: %q in module %s", ErrInvalidTypeExpression, expr, moduleFQN)
		}
	}
	flush()
	return tokens, nil
}
