// Package ast defines the abstract syntax tree produced by the parser. Every
// node is a concrete struct implementing the Node marker interface; callers
// dispatch on concrete type via a type switch (the tagged-variant pattern
// used throughout this tree in place of virtual dispatch).
package ast

import "github.com/Yemiez/ysen/token"

// Node is implemented by every AST node. It exposes the node's source range,
// which every variant stores regardless of its other fields.
type Node interface {
	NodeRange() token.Range
}

// BinOpKind enumerates the binary operators produced by the parser.
type BinOpKind int

// Binary operator kinds.
const (
	Add BinOpKind = iota
	Sub
	Mul
	Div
	Greater
	GreaterEqual
	Less
	LessEqual
)

func (k BinOpKind) String() string {
	switch k {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Greater:
		return ">"
	case GreaterEqual:
		return ">="
	case Less:
		return "<"
	case LessEqual:
		return "<="
	default:
		return "?"
	}
}

// Program is the root node: an ordered list of top-level statements and
// expressions.
type Program struct {
	Children []Node
	Rng      token.Range
}

func (n *Program) NodeRange() token.Range { return n.Rng }

// ScopeStatement is a `{ ... }` block expression: an ordered list of
// statements, with an optional name. The parser leaves Name empty.
type ScopeStatement struct {
	Name       string
	Statements []Node
	Rng        token.Range
}

func (n *ScopeStatement) NodeRange() token.Range { return n.Rng }

// VarDeclaration is `var NAME (= expr)?`.
type VarDeclaration struct {
	Name string
	Init Node // nil if no initializer
	Rng  token.Range
}

func (n *VarDeclaration) NodeRange() token.Range { return n.Rng }

// FunctionParameter is one entry of a parameter list: a name, an optional
// type-name annotation, and a variadic flag (reserved; the grammar never
// actually sets it, kept for parity with the runtime FunctionParameter).
type FunctionParameter struct {
	Name     string
	Type     string
	Variadic bool
	Rng      token.Range
}

func (n *FunctionParameter) NodeRange() token.Range { return n.Rng }

// FunctionDeclaration is a named `fun NAME(...) body`.
type FunctionDeclaration struct {
	Name   string
	Params []*FunctionParameter
	Body   Node
	Rng    token.Range
}

func (n *FunctionDeclaration) NodeRange() token.Range { return n.Rng }

// FunctionExpression is an anonymous `fun(...) body`.
type FunctionExpression struct {
	Params []*FunctionParameter
	Body   Node
	Rng    token.Range
}

func (n *FunctionExpression) NodeRange() token.Range { return n.Rng }

// FunctionCall is `callee(args...)`.
type FunctionCall struct {
	Callee string
	Args   []Node
	Rng    token.Range
}

func (n *FunctionCall) NodeRange() token.Range { return n.Rng }

// Return is `ret expr`.
type Return struct {
	Inner Node
	Rng   token.Range
}

func (n *Return) NodeRange() token.Range { return n.Rng }

// BinOp is a binary expression.
type BinOp struct {
	Left, Right Node
	Op          BinOpKind
	Rng         token.Range
}

func (n *BinOp) NodeRange() token.Range { return n.Rng }

// Integer is an integer literal.
type Integer struct {
	Value int64
	Rng   token.Range
}

func (n *Integer) NodeRange() token.Range { return n.Rng }

// Float is a floating-point literal.
type Float struct {
	Value float64
	Rng   token.Range
}

func (n *Float) NodeRange() token.Range { return n.Rng }

// String is a string literal (already escape-processed by the lexer).
type String struct {
	Value string
	Rng   token.Range
}

func (n *String) NodeRange() token.Range { return n.Rng }

// Identifier is a bare name reference.
type Identifier struct {
	Name string
	Rng  token.Range
}

func (n *Identifier) NodeRange() token.Range { return n.Rng }

// Array is an `[e1, e2, ...]` literal.
type Array struct {
	Elements []Node
	Rng      token.Range
}

func (n *Array) NodeRange() token.Range { return n.Rng }

// KeyValue is one `key : value` entry of an Object literal.
type KeyValue struct {
	Key, Value Node
	Rng        token.Range
}

func (n *KeyValue) NodeRange() token.Range { return n.Rng }

// Object is a `[k1:v1, k2:v2, ...]` literal.
type Object struct {
	Pairs []*KeyValue
	Rng   token.Range
}

func (n *Object) NodeRange() token.Range { return n.Rng }

// Access is `object.field`.
type Access struct {
	Object string
	Field  string
	Rng    token.Range
}

func (n *Access) NodeRange() token.Range { return n.Rng }

// NumericRange is `min..max`, both integer literals.
type NumericRange struct {
	Min, Max int64
	Rng      token.Range
}

func (n *NumericRange) NodeRange() token.Range { return n.Rng }

// RangedLoop is `for (var_decl range_expr) body`.
type RangedLoop struct {
	Decl  *VarDeclaration
	Range Node
	Body  Node
	Rng   token.Range
}

func (n *RangedLoop) NodeRange() token.Range { return n.Rng }

// Assignment is `target = expr`.
type Assignment struct {
	Target string
	Body   Node
	Rng    token.Range
}

func (n *Assignment) NodeRange() token.Range { return n.Rng }

// If is an `if (decl? cond) then (else ...)?` conditional. Else holds
// either another *If (an `else if` link), a plain body Node (the terminal
// `else`), or nil (no else clause).
type If struct {
	Decl *VarDeclaration // optional
	Cond Node
	Then Node
	Else Node
	Rng  token.Range
}

func (n *If) NodeRange() token.Range { return n.Rng }
