// Package interp implements the tree-walking interpreter: a stack of
// lexical Scopes evaluating an *ast.Program (or any sub-node) directly,
// per spec §4.4. Grounded on its-hmny-nand2tetris's push/pop scope-table
// idiom, re-expressed here as a single LIFO scope stack since ysen's Scope
// is a parent-pointer tree, not a four-segment table.
package interp

import (
	"github.com/pkg/errors"

	"github.com/Yemiez/ysen/ast"
	"github.com/Yemiez/ysen/value"
)

// Interpreter owns the scope stack and evaluates AST nodes against it. The
// first (global) scope is created by New and never popped; host-installed
// functions live there.
type Interpreter struct {
	scopes []*Scope
}

// New creates an Interpreter with a fresh global scope.
func New() *Interpreter {
	return &Interpreter{scopes: []*Scope{newScope(nil, Normal, "global")}}
}

// Global returns the root scope, where host built-ins are installed.
func (it *Interpreter) Global() *Scope { return it.scopes[0] }

// Current returns the innermost active scope.
func (it *Interpreter) Current() *Scope { return it.scopes[len(it.scopes)-1] }

// pushScope creates a child of Current and makes it the active scope.
func (it *Interpreter) pushScope(kind Kind, name string) *Scope {
	s := newScope(it.Current(), kind, name)
	it.scopes = append(it.scopes, s)
	return s
}

// popScope discards the innermost scope. If it was left in a returning
// state and is not itself Returnable, the flag propagates to its parent —
// the mechanism by which `ret` unwinds nested blocks up to the enclosing
// function.
func (it *Interpreter) popScope() {
	s := it.Current()
	it.scopes = it.scopes[:len(it.scopes)-1]
	if s.Returning && s.Kind != Returnable {
		it.Current().Returning = true
	}
}

// Eval dispatches on the concrete type of n and evaluates it against the
// current scope, per the node semantics of spec §4.4.
func (it *Interpreter) Eval(n ast.Node) (value.Value, error) {
	switch node := n.(type) {
	case *ast.Program:
		v, err := it.evalStatements(node.Children)
		it.Global().Returning = false
		return v, err
	case *ast.ScopeStatement:
		it.pushScope(Normal, node.Name)
		v, err := it.evalStatements(node.Statements)
		it.popScope()
		return v, err
	case *ast.VarDeclaration:
		return it.evalVarDeclaration(node)
	case *ast.Assignment:
		return it.evalAssignment(node)
	case *ast.Identifier:
		return it.evalIdentifier(node)
	case *ast.FunctionDeclaration:
		return it.evalFunctionDeclaration(node)
	case *ast.FunctionExpression:
		return it.evalFunctionExpression(node)
	case *ast.FunctionCall:
		return it.evalFunctionCall(node)
	case *ast.Return:
		return it.evalReturn(node)
	case *ast.BinOp:
		return it.evalBinOp(node)
	case *ast.Integer:
		return value.NewInt(node.Value), nil
	case *ast.Float:
		return value.NewFloat(node.Value), nil
	case *ast.String:
		return value.NewString(node.Value), nil
	case *ast.Array:
		return it.evalArray(node)
	case *ast.Object:
		return it.evalObject(node)
	case *ast.Access:
		return it.evalAccess(node)
	case *ast.NumericRange:
		return it.evalNumericRange(node)
	case *ast.RangedLoop:
		return it.evalRangedLoop(node)
	case *ast.If:
		return it.evalIf(node)
	default:
		return value.Undef, errors.Errorf("interp: unhandled node type %T", n)
	}
}

// evalStatements evaluates nodes in order against the current scope,
// returning the last value. Evaluation stops early once the current
// scope's returning flag is set.
func (it *Interpreter) evalStatements(nodes []ast.Node) (value.Value, error) {
	result := value.Undef
	for _, n := range nodes {
		v, err := it.Eval(n)
		if err != nil {
			return value.Undef, err
		}
		result = v
		if it.Current().Returning {
			break
		}
	}
	return result, nil
}
