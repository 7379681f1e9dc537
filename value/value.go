// Package value implements the runtime Value tagged union shared by both
// back ends (the tree-walking interpreter and the bytecode VM): arithmetic,
// comparison, casting, hashing and the two string representations.
package value

import "github.com/Yemiez/ysen/ast"

// Kind tags the variant held by a Value.
type Kind int

// Value kinds.
const (
	Undefined Kind = iota
	Null
	Array
	Object
	String
	Function
	Bool
	Int
	Float
	Double
)

func (k Kind) String() string {
	switch k {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case Array:
		return "array"
	case Object:
		return "object"
	case String:
		return "string"
	case Function:
		return "function"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// IsTrivial reports whether the Kind is one of Bool, Int, Float or Double —
// the "trivial" variants per the glossary.
func (k Kind) IsTrivial() bool {
	switch k {
	case Bool, Int, Float, Double:
		return true
	default:
		return false
	}
}

func (k Kind) isNumeric() bool {
	switch k {
	case Int, Float, Double:
		return true
	default:
		return false
	}
}

// Param is a runtime function parameter: name, optional type-name
// annotation, and variadic flag. It keeps no reference to the declaring
// AST node.
type Param struct {
	Name     string
	Type     string
	Variadic bool
}

// NativeFunc is a host-supplied callable: argument vector in, Value out.
type NativeFunc func(args []Value) (Value, error)

// Function is the runtime representation shared by every Value of kind
// Function. Its body is either a reference to an AST node (interpreted
// functions) or a NativeFunc (host-installed built-ins) — never both.
type Function struct {
	Name   string
	Params []Param
	Body   ast.Node // nil for native functions
	Native NativeFunc
}

// IsNative reports whether the function is host-supplied.
func (f *Function) IsNative() bool { return f.Native != nil }

// Value is the tagged sum type representing every runtime value. Only the
// field(s) relevant to Kind are meaningful; Float is shared by the Float and
// Double kinds (they differ only in tag, per spec: Double is never produced
// by the lexer, only by host code).
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Arr   []Value
	Obj   *Obj
	Fn    *Function
}

// Undef is the canonical Undefined value — the default-constructed Value.
var Undef = Value{Kind: Undefined}

// Nil is the canonical Null value, distinct from Undef.
var Nil = Value{Kind: Null}

// NewBool wraps a bool.
func NewBool(b bool) Value { return Value{Kind: Bool, Bool: b} }

// NewInt wraps an int64.
func NewInt(i int64) Value { return Value{Kind: Int, Int: i} }

// NewFloat wraps a float64 as a Float-kinded Value.
func NewFloat(f float64) Value { return Value{Kind: Float, Float: f} }

// NewDouble wraps a float64 as a Double-kinded Value (host-only — the
// lexer never produces this kind).
func NewDouble(f float64) Value { return Value{Kind: Double, Float: f} }

// NewString wraps a string.
func NewString(s string) Value { return Value{Kind: String, Str: s} }

// NewArray wraps a Value slice, preserving insertion order.
func NewArray(elems []Value) Value { return Value{Kind: Array, Arr: elems} }

// NewObject wraps an *Obj.
func NewObject(o *Obj) Value { return Value{Kind: Object, Obj: o} }

// NewFunction wraps a *Function.
func NewFunction(f *Function) Value { return Value{Kind: Function, Fn: f} }
