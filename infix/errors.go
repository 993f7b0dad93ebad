package infix

import (
	"fmt"
	"strings"
)

// posError carries the shared offset-and-source formatting of the frontend's
// error types. Offset is a 0-based byte offset, or -1 when the error has no
// single position (a global structural failure).
type posError struct {
	Msg    string
	Offset int
	Source string
}

// Error implements the error interface.
func (e *posError) Error() string {
	if e.Offset < 0 {
		return e.Msg
	}
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// FormatWithContext returns the error message followed by the source text
// with a caret under the offending character.
func (e *posError) FormatWithContext() string {
	if e.Source == "" || e.Offset < 0 || e.Offset > len(e.Source) {
		return e.Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", e.Msg)
	fmt.Fprintf(&sb, "  | %s\n", e.Source)
	fmt.Fprintf(&sb, "  | %s^\n", strings.Repeat(" ", e.Offset))
	return sb.String()
}

// LexError reports an illegal character or an impossible token adjacency
// found while tokenizing. It always carries a position.
type LexError struct {
	posError
}

func lexErrorf(offset int, source, format string, args ...any) *LexError {
	return &LexError{posError{
		Msg:    fmt.Sprintf(format, args...),
		Offset: offset,
		Source: source,
	}}
}

// ParseError reports a structural failure while reordering tokens or building
// the tree: unmatched parentheses, a misplaced comma, an operator with too
// few operands, or leftover operands.
type ParseError struct {
	posError
}

func parseErrorf(offset int, source, format string, args ...any) *ParseError {
	return &ParseError{posError{
		Msg:    fmt.Sprintf(format, args...),
		Offset: offset,
		Source: source,
	}}
}
