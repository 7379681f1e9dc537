package interp_test

import (
	"testing"

	"github.com/Yemiez/ysen/interp"
	"github.com/Yemiez/ysen/parser"
	"github.com/Yemiez/ysen/value"
)

func run(t *testing.T, src string) value.Value {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	it := interp.New()
	it.Global().Funcs["to_string"] = &value.Function{
		Name: "to_string",
		Native: func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return value.Undef, nil
			}
			return value.NewString(args[0].String()), nil
		},
	}
	v, err := it.Eval(prog)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return v
}

func TestScenario1_SimpleReturn(t *testing.T) {
	v := run(t, "var a = 5 + 5; ret a;")
	if v.Kind != value.Int || v.Int != 10 {
		t.Fatalf("got %v, want Int 10", v)
	}
}

func TestScenario2_FunctionCall(t *testing.T) {
	v := run(t, "fun add(a, b) { ret a + b; } ret add(3, 4);")
	if v.Kind != value.Int || v.Int != 7 {
		t.Fatalf("got %v, want Int 7", v)
	}
}

func TestScenario3_RangedLoopStringBuild(t *testing.T) {
	v := run(t, "var s = ''; for (var x : 1..3) { s = s + to_string(x); } ret s;")
	if v.Kind != value.String || v.Str != "123" {
		t.Fatalf("got %v, want String \"123\"", v)
	}
}

func TestScenario4_ObjectAccess(t *testing.T) {
	v := run(t, "var o = [ 'k' : 1, 'v' : 2 ]; ret o.k + o.v;")
	if v.Kind != value.Int || v.Int != 3 {
		t.Fatalf("got %v, want Int 3", v)
	}
}

func TestScenario5_NestedIfReturn(t *testing.T) {
	v := run(t, "fun f(a, b) { if (a >= 10) { ret (a / 2) + b; } ret a + b; } ret f(20, 5);")
	if v.Kind != value.Int || v.Int != 15 {
		t.Fatalf("got %v, want Int 15", v)
	}
}

func TestScenario6_ArrayIterationSum(t *testing.T) {
	v := run(t, "var a = [1,2,3]; var sum = 0; for (var x : a) { sum = sum + x; } ret sum;")
	if v.Kind != value.Int || v.Int != 6 {
		t.Fatalf("got %v, want Int 6", v)
	}
}

func TestReturnPropagationThroughNestedBlock(t *testing.T) {
	v := run(t, "fun f() { { { ret 42; } } ret 0; } ret f();")
	if v.Kind != value.Int || v.Int != 42 {
		t.Fatalf("got %v, want Int 42 (ret must stop all enclosing blocks up to the function)", v)
	}
}

func TestAssignmentReturnsAssignedValue(t *testing.T) {
	v := run(t, "var b = 0; var a = (b = 5); ret a;")
	if v.Kind != value.Int || v.Int != 5 {
		t.Fatalf("got %v, want Int 5 (assignment evaluates to the assigned value)", v)
	}
}

func TestUndefinedIdentifierIsUndefined(t *testing.T) {
	v := run(t, "ret nope;")
	if v.Kind != value.Undefined {
		t.Fatalf("got %v, want Undefined", v)
	}
}
