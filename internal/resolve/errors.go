package resolve

import "errors"

// ErrPastRoot is returned when a relative import ascends beyond the
// walked package tree root.
var ErrPastRoot = errors.New("relative import walks past the root package")

// ErrUnresolvedSegment is returned when an atomic name inside a
// compound type annotation resolves neither to a class, an import nor
// a builtin.
var ErrUnresolvedSegment = errors.New("unresolved name in compound type annotation")

// ErrInvalidTypeExpression is returned when a type annotation contains
// characters the splitter cannot tokenize.
var ErrInvalidTypeExpression = errors.New("invalid type expression")
