package interp

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/Yemiez/ysen/ast"
	"github.com/Yemiez/ysen/value"
)

func (it *Interpreter) evalVarDeclaration(node *ast.VarDeclaration) (value.Value, error) {
	v := value.Undef
	if node.Init != nil {
		var err error
		v, err = it.Eval(node.Init)
		if err != nil {
			return value.Undef, errors.Wrapf(err, "evaluating initializer for %q", node.Name)
		}
	}
	it.Current().Declare(node.Name, v)
	return v, nil
}

// evalAssignment mutates an existing variable's cell if one is found
// anywhere up the scope chain; otherwise it declares a new one in the
// current scope.
func (it *Interpreter) evalAssignment(node *ast.Assignment) (value.Value, error) {
	v, err := it.Eval(node.Body)
	if err != nil {
		return value.Undef, errors.Wrapf(err, "evaluating assignment to %q", node.Target)
	}
	if existing, ok := it.Current().LookupVariable(node.Target); ok {
		*existing.Cell = v
		return v, nil
	}
	it.Current().Declare(node.Target, v)
	return v, nil
}

// evalIdentifier prefers a variable binding, then a function binding —
// the opposite preference order of FunctionCall, which is intentional
// (spec §9).
func (it *Interpreter) evalIdentifier(node *ast.Identifier) (value.Value, error) {
	if v, ok := it.Current().LookupVariable(node.Name); ok {
		return *v.Cell, nil
	}
	if f, ok := it.Current().LookupFunction(node.Name); ok {
		return value.NewFunction(f), nil
	}
	return value.Undef, nil
}

func (it *Interpreter) evalFunctionDeclaration(node *ast.FunctionDeclaration) (value.Value, error) {
	fn := &value.Function{Name: node.Name, Params: runtimeParams(node.Params), Body: node.Body}
	it.Current().Funcs[node.Name] = fn
	return value.NewFunction(fn), nil
}

func (it *Interpreter) evalFunctionExpression(node *ast.FunctionExpression) (value.Value, error) {
	name := fmt.Sprintf("anon@%s", node.Rng)
	fn := &value.Function{Name: name, Params: runtimeParams(node.Params), Body: node.Body}
	return value.NewFunction(fn), nil
}

func runtimeParams(params []*ast.FunctionParameter) []value.Param {
	out := make([]value.Param, len(params))
	for i, p := range params {
		out[i] = value.Param{Name: p.Name, Type: p.Type, Variadic: p.Variadic}
	}
	return out
}

// evalFunctionCall resolves the callee by name in the scope chain, falling
// back to a variable holding either a Function or a String (treated as an
// indirect function name) — the opposite preference order of Identifier,
// which is intentional (spec §9). An unresolved callee evaluates to
// Undefined rather than erroring (LookupMiss is not an error).
func (it *Interpreter) evalFunctionCall(node *ast.FunctionCall) (value.Value, error) {
	fn, ok := it.Current().LookupFunction(node.Callee)
	if !ok {
		if v, vok := it.Current().LookupVariable(node.Callee); vok {
			switch v.Cell.Kind {
			case value.Function:
				fn, ok = v.Cell.Fn, true
			case value.String:
				fn, ok = it.Current().LookupFunction(v.Cell.Str)
			}
		}
	}
	if !ok {
		return value.Undef, nil
	}

	args := make([]value.Value, len(node.Args))
	for i, a := range node.Args {
		v, err := it.Eval(a)
		if err != nil {
			return value.Undef, errors.Wrapf(err, "evaluating argument %d of call to %q", i, node.Callee)
		}
		args[i] = v
	}

	if fn.IsNative() {
		v, err := fn.Native(args)
		if err != nil {
			return value.Undef, errors.Wrapf(err, "calling native function %q", fn.Name)
		}
		return v, nil
	}

	it.pushScope(Returnable, fn.Name)
	for i, p := range fn.Params {
		v := value.Undef
		if i < len(args) {
			v = args[i]
		}
		it.Current().Declare(p.Name, v)
	}
	for i, v := range args {
		it.Current().Declare(fmt.Sprintf("__arg%d", i), v)
	}
	it.Current().Declare("__argc", value.NewInt(int64(len(args))))

	// popScope stops return-propagation here: fn's scope Kind is
	// Returnable, so its Returning flag (if set by a nested `ret`) is never
	// forwarded to the caller's scope.
	result, err := it.Eval(fn.Body)
	it.popScope()
	if err != nil {
		return value.Undef, errors.Wrapf(err, "evaluating body of %q", fn.Name)
	}
	return result, nil
}

func (it *Interpreter) evalReturn(node *ast.Return) (value.Value, error) {
	it.Current().Returning = true
	v, err := it.Eval(node.Inner)
	if err != nil {
		return value.Undef, errors.Wrap(err, "evaluating return expression")
	}
	return v, nil
}

func (it *Interpreter) evalBinOp(node *ast.BinOp) (value.Value, error) {
	l, err := it.Eval(node.Left)
	if err != nil {
		return value.Undef, errors.Wrap(err, "evaluating left operand")
	}
	r, err := it.Eval(node.Right)
	if err != nil {
		return value.Undef, errors.Wrap(err, "evaluating right operand")
	}
	switch node.Op {
	case ast.Add:
		return value.Add(l, r)
	case ast.Sub:
		return value.Sub(l, r)
	case ast.Mul:
		return value.Mul(l, r)
	case ast.Div:
		return value.Div(l, r)
	case ast.Greater, ast.GreaterEqual, ast.Less, ast.LessEqual:
		return value.Compare(node.Op.String(), l, r)
	default:
		return value.Undef, errors.Errorf("unhandled operator %v", node.Op)
	}
}

func (it *Interpreter) evalArray(node *ast.Array) (value.Value, error) {
	elems := make([]value.Value, len(node.Elements))
	for i, e := range node.Elements {
		v, err := it.Eval(e)
		if err != nil {
			return value.Undef, errors.Wrapf(err, "evaluating array element %d", i)
		}
		elems[i] = v
	}
	return value.NewArray(elems), nil
}

func (it *Interpreter) evalObject(node *ast.Object) (value.Value, error) {
	obj := value.NewObj()
	for _, pair := range node.Pairs {
		k, err := it.Eval(pair.Key)
		if err != nil {
			return value.Undef, errors.Wrap(err, "evaluating object key")
		}
		v, err := it.Eval(pair.Value)
		if err != nil {
			return value.Undef, errors.Wrap(err, "evaluating object value")
		}
		obj.Set(k, v)
	}
	return value.NewObject(obj), nil
}

func (it *Interpreter) evalAccess(node *ast.Access) (value.Value, error) {
	v, ok := it.Current().LookupVariable(node.Object)
	if !ok {
		return value.Undef, nil
	}
	if v.Cell.Kind != value.Object {
		return value.Undef, nil
	}
	if field, ok := v.Cell.Obj.Get(value.NewString(node.Field)); ok {
		return field, nil
	}
	return value.Undef, nil
}

func (it *Interpreter) evalNumericRange(node *ast.NumericRange) (value.Value, error) {
	if node.Max < node.Min {
		return value.NewArray(nil), nil
	}
	elems := make([]value.Value, 0, node.Max-node.Min+1)
	for i := node.Min; i <= node.Max; i++ {
		elems = append(elems, value.NewInt(i))
	}
	return value.NewArray(elems), nil
}

// evalRangedLoop iterates an Array (by value), an Object (by value of each
// entry) or a String (by single-character substring — a deliberate
// extension documented in spec §9, resolving the source's TODO). For each
// element it pushes a Loopable scope, (re-)runs the loop declaration, then
// overwrites the first variable it declared with the current element
// before evaluating the body.
func (it *Interpreter) evalRangedLoop(node *ast.RangedLoop) (value.Value, error) {
	rangeVal, err := it.Eval(node.Range)
	if err != nil {
		return value.Undef, errors.Wrap(err, "evaluating loop range")
	}

	var elems []value.Value
	switch rangeVal.Kind {
	case value.Array:
		elems = rangeVal.Arr
	case value.Object:
		rangeVal.Obj.Each(func(_, v value.Value) { elems = append(elems, v) })
	case value.String:
		for _, r := range rangeVal.Str {
			elems = append(elems, value.NewString(string(r)))
		}
	default:
		return value.Undef, errors.Errorf("cannot iterate a %s", rangeVal.Kind)
	}

	result := value.Undef
	for _, elem := range elems {
		it.pushScope(Loopable, "")
		if _, err := it.Eval(node.Decl); err != nil {
			it.popScope()
			return value.Undef, errors.Wrap(err, "evaluating loop declaration")
		}
		if v, ok := it.Current().Vars[node.Decl.Name]; ok {
			*v.Cell = elem
		}
		bodyVal, err := it.Eval(node.Body)
		it.popScope()
		if err != nil {
			return value.Undef, errors.Wrap(err, "evaluating loop body")
		}
		result = bodyVal
		if it.Current().Returning {
			break
		}
	}
	return result, nil
}

// evalIf runs each branch in its own scope: the optional declaration is
// evaluated there, then the condition; the first truthy branch is taken.
func (it *Interpreter) evalIf(node *ast.If) (value.Value, error) {
	it.pushScope(Normal, "")
	defer it.popScope()

	if node.Decl != nil {
		if _, err := it.Eval(node.Decl); err != nil {
			return value.Undef, errors.Wrap(err, "evaluating if-condition declaration")
		}
	}
	cond, err := it.Eval(node.Cond)
	if err != nil {
		return value.Undef, errors.Wrap(err, "evaluating if-condition")
	}
	if cond.Truthy() {
		return it.Eval(node.Then)
	}
	if node.Else != nil {
		return it.Eval(node.Else)
	}
	return value.Undef, nil
}
