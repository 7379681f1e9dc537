package lang_test

import (
	"bytes"
	"testing"

	"github.com/Yemiez/ysen/lang"
	"github.com/Yemiez/ysen/value"
)

type mapReader map[string]string

func (m mapReader) ReadSource(name string) (string, bool, error) {
	src, ok := m[name]
	return src, ok, nil
}

func TestEvalPersistsGlobalScope(t *testing.T) {
	env, err := lang.New()
	if err != nil {
		t.Fatalf("new environment: %v", err)
	}
	if _, err := env.Eval("var counter = 1;"); err != nil {
		t.Fatalf("first eval: %v", err)
	}
	v, err := env.Eval("counter = counter + 1; ret counter;")
	if err != nil {
		t.Fatalf("second eval: %v", err)
	}
	if v.Kind != value.Int || v.Int != 2 {
		t.Fatalf("got %v, want Int 2 (global scope must persist across Eval calls)", v)
	}
}

func TestEvalFileNotFound(t *testing.T) {
	env, err := lang.New(lang.WithSourceReader(mapReader{}))
	if err != nil {
		t.Fatalf("new environment: %v", err)
	}
	_, ok, err := env.EvalFile("missing.ysen")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for a missing source")
	}
}

func TestEvalFileFound(t *testing.T) {
	env, err := lang.New(lang.WithSourceReader(mapReader{"main.ysen": "ret 41 + 1;"}))
	if err != nil {
		t.Fatalf("new environment: %v", err)
	}
	v, ok, err := env.EvalFile("main.ysen")
	if err != nil {
		t.Fatalf("eval file: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true")
	}
	if v.Kind != value.Int || v.Int != 42 {
		t.Fatalf("got %v, want Int 42", v)
	}
}

func TestPrintFormatPlaceholders(t *testing.T) {
	var buf bytes.Buffer
	env, err := lang.New(lang.WithOutput(&buf))
	if err != nil {
		t.Fatalf("new environment: %v", err)
	}
	if _, err := env.Eval(`print('{{a}} = {}, {} = {{b}}', 1, 2);`); err != nil {
		t.Fatalf("eval: %v", err)
	}
	want := "{a} = 1, 2 = {b}\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestPrintReturnsZeroOnSuccessOneOnBadArguments(t *testing.T) {
	var buf bytes.Buffer
	env, err := lang.New(lang.WithOutput(&buf))
	if err != nil {
		t.Fatalf("new environment: %v", err)
	}
	ok, err := env.Eval(`ret print('hi');`)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if ok.Kind != value.Int || ok.Int != 0 {
		t.Fatalf("got %v, want Int 0", ok)
	}
	bad, err := env.Eval(`ret print(5, 1);`)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if bad.Kind != value.Int || bad.Int != 1 {
		t.Fatalf("got %v, want Int 1 (non-String first argument with extra args)", bad)
	}
}

func TestToStringBuiltin(t *testing.T) {
	env, err := lang.New()
	if err != nil {
		t.Fatalf("new environment: %v", err)
	}
	v, err := env.Eval("ret to_string(5);")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v.Kind != value.String || v.Str != "5" {
		t.Fatalf("got %v, want String \"5\"", v)
	}
}
