package parser_test

import (
	"testing"

	"github.com/Yemiez/ysen/ast"
	"github.com/Yemiez/ysen/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return prog
}

func TestVarDeclaration(t *testing.T) {
	prog := mustParse(t, "var a = 5;")
	if len(prog.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(prog.Children))
	}
	decl, ok := prog.Children[0].(*ast.VarDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.VarDeclaration", prog.Children[0])
	}
	if decl.Name != "a" {
		t.Errorf("name = %q, want a", decl.Name)
	}
	if _, ok := decl.Init.(*ast.Integer); !ok {
		t.Errorf("init = %T, want *ast.Integer", decl.Init)
	}
}

func TestNumericRange(t *testing.T) {
	prog := mustParse(t, "1..3;")
	rng, ok := prog.Children[0].(*ast.NumericRange)
	if !ok {
		t.Fatalf("got %T, want *ast.NumericRange", prog.Children[0])
	}
	if rng.Min != 1 || rng.Max != 3 {
		t.Errorf("got %d..%d, want 1..3", rng.Min, rng.Max)
	}
}

func TestFunctionCall(t *testing.T) {
	prog := mustParse(t, "add(1, 2);")
	call, ok := prog.Children[0].(*ast.FunctionCall)
	if !ok {
		t.Fatalf("got %T, want *ast.FunctionCall", prog.Children[0])
	}
	if call.Callee != "add" || len(call.Args) != 2 {
		t.Errorf("got callee=%q args=%d, want add/2", call.Callee, len(call.Args))
	}
}

func TestObjectLiteral(t *testing.T) {
	prog := mustParse(t, "['k':1, 'v':2];")
	obj, ok := prog.Children[0].(*ast.Object)
	if !ok {
		t.Fatalf("got %T, want *ast.Object", prog.Children[0])
	}
	if len(obj.Pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(obj.Pairs))
	}
}

func TestMixedArrayObjectIsError(t *testing.T) {
	if _, err := parser.Parse("['k':1, 2];"); err == nil {
		t.Fatal("expected parse error mixing array elements with key:value pairs")
	}
}

func TestForRangedLoop(t *testing.T) {
	prog := mustParse(t, "for (var x : 1..3) { x; }")
	loop, ok := prog.Children[0].(*ast.RangedLoop)
	if !ok {
		t.Fatalf("got %T, want *ast.RangedLoop", prog.Children[0])
	}
	if loop.Decl.Name != "x" {
		t.Errorf("decl name = %q, want x", loop.Decl.Name)
	}
	if _, ok := loop.Range.(*ast.NumericRange); !ok {
		t.Errorf("range = %T, want *ast.NumericRange", loop.Range)
	}
}

func TestIfElseIf(t *testing.T) {
	prog := mustParse(t, "if (a >= 10) { ret 1; } else if (a >= 5) { ret 2; } else { ret 3; }")
	ifNode, ok := prog.Children[0].(*ast.If)
	if !ok {
		t.Fatalf("got %T, want *ast.If", prog.Children[0])
	}
	elseIf, ok := ifNode.Else.(*ast.If)
	if !ok {
		t.Fatalf("else = %T, want *ast.If (else-if)", ifNode.Else)
	}
	if _, ok := elseIf.Else.(*ast.ScopeStatement); !ok {
		t.Fatalf("else-if's else = %T, want *ast.ScopeStatement", elseIf.Else)
	}
}

func TestFunctionDeclaration(t *testing.T) {
	prog := mustParse(t, "fun add(a, b) { ret a + b; }")
	decl, ok := prog.Children[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.FunctionDeclaration", prog.Children[0])
	}
	if decl.Name != "add" || len(decl.Params) != 2 {
		t.Errorf("got name=%q params=%d, want add/2", decl.Name, len(decl.Params))
	}
}

func TestAccessExpression(t *testing.T) {
	prog := mustParse(t, "o.k;")
	acc, ok := prog.Children[0].(*ast.Access)
	if !ok {
		t.Fatalf("got %T, want *ast.Access", prog.Children[0])
	}
	if acc.Object != "o" || acc.Field != "k" {
		t.Errorf("got %s.%s, want o.k", acc.Object, acc.Field)
	}
}
