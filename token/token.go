// Package token defines the lexical tokens produced by the lexer and
// consumed by the parser: source positions, ranges, token kinds and the
// keyword set.
package token

import "fmt"

// Position is a zero-origin (row, column) pair within a source string.
// Column advances by one per consumed character; row increments and column
// resets to zero on newline.
type Position struct {
	Row, Col int
}

// String renders a Position as "row:col", both 1-based for human display.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row+1, p.Col+1)
}

// Advance moves the position past a single rune.
func (p Position) Advance(r rune) Position {
	if r == '\n' {
		return Position{Row: p.Row + 1, Col: 0}
	}
	return Position{Row: p.Row, Col: p.Col + 1}
}

// Range is a half-open-in-spirit (start, end) pair of source positions
// spanning a token or an AST node. End is the position immediately after
// the last consumed character.
type Range struct {
	Start, End Position
}

// String renders a Range as "start-end".
func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Union returns the smallest Range spanning both r and other.
func (r Range) Union(other Range) Range {
	u := r
	if other.Start.Row < u.Start.Row || (other.Start.Row == u.Start.Row && other.Start.Col < u.Start.Col) {
		u.Start = other.Start
	}
	if other.End.Row > u.End.Row || (other.End.Row == u.End.Row && other.End.Col > u.End.Col) {
		u.End = other.End
	}
	return u
}

// Kind identifies the lexical category of a Token.
type Kind int

// Token kinds, per the language's lexical grammar.
const (
	None Kind = iota
	Unknown
	Whitespace
	SimpleComment
	MultilineComment
	Identifier
	Keyword
	String
	Integer
	FloatingPointNumber
	SemiColon
	Colon
	Equals
	ParenOpen
	ParenClose
	SquigglyOpen
	SquigglyClose
	BracketOpen
	BracketClose
	Comma
	BinOp
	Dot
)

var kindNames = [...]string{
	None:                "none",
	Unknown:             "unknown",
	Whitespace:          "whitespace",
	SimpleComment:       "comment",
	MultilineComment:    "multiline-comment",
	Identifier:          "identifier",
	Keyword:             "keyword",
	String:              "string",
	Integer:             "integer",
	FloatingPointNumber: "float",
	SemiColon:           "';'",
	Colon:               "':'",
	Equals:               "'='",
	ParenOpen:           "'('",
	ParenClose:          "')'",
	SquigglyOpen:        "'{'",
	SquigglyClose:       "'}'",
	BracketOpen:         "'['",
	BracketClose:        "']'",
	Comma:               "','",
	BinOp:               "operator",
	Dot:                 "'.'",
}

// String returns a human-readable name for the Kind, used in error messages.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Keywords is the reserved word set. Only var, fun, ret, for, if and else
// carry defined semantics in the core; the rest are reserved but unused.
var Keywords = map[string]bool{
	"var":      true,
	"if":       true,
	"else":     true,
	"while":    true,
	"for":      true,
	"class":    true,
	"fun":      true,
	"ret":      true,
	"int":      true,
	"float":    true,
	"string":   true,
	"continue": true,
	"break":    true,
	"require":  true,
	"true":     true,
	"false":    true,
}

// Token is a lexical unit: a source range, a kind, and a copy of its
// matched source text.
type Token struct {
	Range   Range
	Kind    Kind
	Content string
}

// String renders a Token for diagnostics, e.g. `identifier "foo" at 1:1-1:4`.
func (t Token) String() string {
	return fmt.Sprintf("%s %q at %s", t.Kind, t.Content, t.Range)
}

// IsTrivia reports whether the token is whitespace or a comment — the kinds
// dropped by the parser's default Ignore policies.
func (t Token) IsTrivia() bool {
	switch t.Kind {
	case Whitespace, SimpleComment, MultilineComment:
		return true
	default:
		return false
	}
}
