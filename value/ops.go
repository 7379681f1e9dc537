package value

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"
)

const (
	fnvOffset32 uint32 = 0x811C9DC5
	fnvPrime32  uint32 = 0x01000193
)

func fnv1a(b []byte) uint32 {
	h := fnvOffset32
	for _, c := range b {
		h ^= uint32(c)
		h *= fnvPrime32
	}
	return h
}

// Hash returns the FNV-1a hash used to key Object entries. String hashes its
// bytes; Int/Float/Double hash their raw byte representation; every other
// variant hashes to zero.
func (v Value) Hash() uint32 {
	switch v.Kind {
	case String:
		return fnv1a([]byte(v.Str))
	case Int:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(v.Int))
		return fnv1a(b[:])
	case Float, Double:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v.Float))
		return fnv1a(b[:])
	default:
		return 0
	}
}

const floatEpsilon = 1e-9

// Equal implements `==`: false whenever the tags differ, except that
// Undefined==Undefined and Null==Null both hold (same-tag, so that falls
// out of the same rule rather than needing a special case).
func (a Value) Equal(b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Undefined, Null:
		return true
	case String:
		return a.Str == b.Str
	case Bool:
		return a.Bool == b.Bool
	case Int:
		return a.Int == b.Int
	case Float, Double:
		return math.Abs(a.Float-b.Float) < floatEpsilon
	case Function:
		return a.Fn == b.Fn || (a.Fn != nil && b.Fn != nil && a.Fn.Name == b.Fn.Name)
	case Array:
		if len(a.Arr) != len(b.Arr) {
			return false
		}
		for i := range a.Arr {
			if !a.Arr[i].Equal(b.Arr[i]) {
				return false
			}
		}
		return true
	case Object:
		return a.Obj.Equal(b.Obj)
	default:
		return false
	}
}

func numericOf(v Value) float64 {
	switch v.Kind {
	case Int:
		return float64(v.Int)
	case Float, Double:
		return v.Float
	case Bool:
		if v.Bool {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func parseNumeric(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// Less implements `<`. Within the same numeric tag it is the natural
// comparison. Across tags: a numeric compared against a numeric-looking
// string coerces the string; a Function compares by name; Arrays and
// Objects are not ordered against anything; Undefined/Null are "less than"
// any non-zero trivial value.
func Less(a, b Value) (bool, error) {
	if a.Kind.isNumeric() && b.Kind.isNumeric() {
		return numericOf(a) < numericOf(b), nil
	}
	if a.Kind == String && b.Kind.isNumeric() {
		return parseNumeric(a.Str) < numericOf(b), nil
	}
	if a.Kind.isNumeric() && b.Kind == String {
		return numericOf(a) < parseNumeric(b.Str), nil
	}
	if a.Kind == String && b.Kind == String {
		return a.Str < b.Str, nil
	}
	if a.Kind == Function && b.Kind == Function {
		an, bn := "", ""
		if a.Fn != nil {
			an = a.Fn.Name
		}
		if b.Fn != nil {
			bn = b.Fn.Name
		}
		return an < bn, nil
	}
	if a.Kind == Array || a.Kind == Object || b.Kind == Array || b.Kind == Object {
		return false, &UnimplementedOperation{Op: "<", Left: a.Kind, Right: b.Kind}
	}
	aZero := (a.Kind == Undefined || a.Kind == Null)
	bZero := (b.Kind == Undefined || b.Kind == Null)
	if aZero && !bZero && b.Kind.IsTrivial() && numericOf(b) != 0 {
		return true, nil
	}
	if bZero && !aZero && a.Kind.IsTrivial() && numericOf(a) != 0 {
		return false, nil
	}
	if aZero && bZero {
		return false, nil
	}
	return false, &UnimplementedOperation{Op: "<", Left: a.Kind, Right: b.Kind}
}

// Truthy implements is_trueish: non-zero numerics and non-empty strings are
// true; Undefined, Null and zero values are false; Arrays and Objects are
// always true.
func (v Value) Truthy() bool {
	switch v.Kind {
	case Undefined, Null:
		return false
	case Bool:
		return v.Bool
	case Int:
		return v.Int != 0
	case Float, Double:
		return v.Float != 0
	case String:
		return len(v.Str) > 0
	case Array, Object, Function:
		return true
	default:
		return false
	}
}

// Add implements `+`. Strings concatenate; numeric same-tag pairs add
// directly; mixed tags coerce the right operand to the left's tag via Cast.
// Array and Object operands always raise.
func Add(a, b Value) (Value, error) { return arith("+", a, b) }

// Sub implements `-`.
func Sub(a, b Value) (Value, error) { return arith("-", a, b) }

// Mul implements `*`.
func Mul(a, b Value) (Value, error) { return arith("*", a, b) }

// Div implements `/`.
func Div(a, b Value) (Value, error) { return arith("/", a, b) }

func arith(op string, a, b Value) (Value, error) {
	if a.Kind == Array || a.Kind == Object || b.Kind == Array || b.Kind == Object {
		return Value{}, &UnimplementedOperation{Op: op, Left: a.Kind, Right: b.Kind}
	}
	if a.Kind != b.Kind {
		bc, err := Cast(b, a.Kind)
		if err != nil {
			return Value{}, err
		}
		return arith(op, a, bc)
	}
	if a.Kind == String {
		if op != "+" {
			return Value{}, &UnimplementedOperation{Op: op, Left: a.Kind, Right: b.Kind}
		}
		return NewString(a.Str + b.Str), nil
	}
	if !a.Kind.IsTrivial() {
		return Value{}, &UnimplementedOperation{Op: op, Left: a.Kind, Right: b.Kind}
	}
	switch a.Kind {
	case Int:
		x, y := a.Int, b.Int
		switch op {
		case "+":
			return NewInt(x + y), nil
		case "-":
			return NewInt(x - y), nil
		case "*":
			return NewInt(x * y), nil
		case "/":
			if y == 0 {
				return Value{}, &DivisionByZero{}
			}
			return NewInt(x / y), nil
		}
	case Float, Double:
		x, y := a.Float, b.Float
		mk := NewFloat
		if a.Kind == Double {
			mk = NewDouble
		}
		switch op {
		case "+":
			return mk(x + y), nil
		case "-":
			return mk(x - y), nil
		case "*":
			return mk(x * y), nil
		case "/":
			if y == 0 {
				return Value{}, &DivisionByZero{}
			}
			return mk(x / y), nil
		}
	case Bool:
		x, y := int64(0), int64(0)
		if a.Bool {
			x = 1
		}
		if b.Bool {
			y = 1
		}
		return arith(op, NewInt(x), NewInt(y))
	}
	return Value{}, &UnimplementedOperation{Op: op, Left: a.Kind, Right: b.Kind}
}

// Compare evaluates a BinOp comparison operator, returning a Bool Value.
func Compare(op string, a, b Value) (Value, error) {
	switch op {
	case ">":
		lt, err := Less(b, a)
		return NewBool(lt), err
	case ">=":
		lt, err := Less(a, b)
		return NewBool(!lt), err
	case "<":
		lt, err := Less(a, b)
		return NewBool(lt), err
	case "<=":
		lt, err := Less(b, a)
		return NewBool(!lt), err
	default:
		return Value{}, &UnimplementedOperation{Op: op, Left: a.Kind, Right: b.Kind}
	}
}

// Cast converts v to the target Kind per the coercion table in §4.3:
// Undefined/Null/Array/Object cast to a trivial kind yield that kind's zero
// value; String casts parse (int/float) or test non-emptiness (bool);
// casts to Object/Array require the source to already be that kind.
func Cast(v Value, target Kind) (Value, error) {
	if v.Kind == target {
		return v, nil
	}
	switch target {
	case Array, Object:
		return Value{}, &BadValueCast{From: v.Kind, To: target}
	case Bool:
		switch v.Kind {
		case Undefined, Null, Array, Object:
			return NewBool(false), nil
		case String:
			return NewBool(len(v.Str) > 0), nil
		case Int:
			return NewBool(v.Int != 0), nil
		case Float, Double:
			return NewBool(v.Float != 0), nil
		case Function:
			return NewBool(true), nil
		}
	case Int:
		switch v.Kind {
		case Undefined, Null, Array, Object:
			return NewInt(0), nil
		case String:
			n, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
			if err != nil {
				return NewInt(0), nil
			}
			return NewInt(n), nil
		case Bool:
			if v.Bool {
				return NewInt(1), nil
			}
			return NewInt(0), nil
		case Float, Double:
			return NewInt(int64(v.Float)), nil
		}
	case Float, Double:
		mk := NewFloat
		if target == Double {
			mk = NewDouble
		}
		switch v.Kind {
		case Undefined, Null, Array, Object:
			return mk(0), nil
		case String:
			f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
			if err != nil {
				return mk(0), nil
			}
			return mk(f), nil
		case Bool:
			if v.Bool {
				return mk(1), nil
			}
			return mk(0), nil
		case Int:
			return mk(float64(v.Int)), nil
		}
	case String:
		return NewString(v.String()), nil
	case Undefined:
		return Undef, nil
	case Null:
		return Nil, nil
	}
	return Value{}, &BadValueCast{From: v.Kind, To: target}
}

// String returns the plain (unquoted, unbracketed-element) string form used
// by to_string. Array and Object render as the literal words "Array" and
// "Object" rather than their elements — spec §4.3 only pins down the
// formatted form for aggregates, so the plain form follows
// original_source's Value::to_string (astvm/Value.cpp).
func (v Value) String() string { return render(v, false) }

// Formatted returns the formatted string form used by to_formatted_string:
// strings are quoted, arrays/objects are bracketed with a trailing comma.
func (v Value) Formatted() string { return render(v, true) }

func render(v Value, formatted bool) string {
	switch v.Kind {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case Bool:
		if v.Bool {
			return "true"
		}
		return "false"
	case Int:
		return strconv.FormatInt(v.Int, 10)
	case Float, Double:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case String:
		if formatted {
			return `"` + v.Str + `"`
		}
		return v.Str
	case Function:
		if v.Fn == nil {
			return "<function>"
		}
		return "<function " + v.Fn.Name + ">"
	case Array:
		if !formatted {
			return "Array"
		}
		if len(v.Arr) == 0 {
			return "[]"
		}
		var b strings.Builder
		b.WriteByte('[')
		for _, e := range v.Arr {
			b.WriteString(render(e, formatted))
			b.WriteString(", ")
		}
		s := b.String()
		return strings.TrimSuffix(s, " ") + "]"
	case Object:
		if !formatted {
			return "Object"
		}
		if v.Obj == nil || v.Obj.Len() == 0 {
			return "[]"
		}
		var b strings.Builder
		b.WriteByte('[')
		v.Obj.Each(func(k, val Value) {
			b.WriteString(render(k, formatted))
			b.WriteByte(':')
			b.WriteString(render(val, formatted))
			b.WriteString(", ")
		})
		s := b.String()
		return strings.TrimSuffix(s, " ") + "]"
	default:
		return ""
	}
}
