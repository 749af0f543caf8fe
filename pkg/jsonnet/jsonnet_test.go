package jsonnet

import (
	"os"
	"path/filepath"
	"testing"
)

func mustEval(t *testing.T, source string, opts EvalOptions) string {
	t.Helper()

	out, err := Evaluate(source, "<test>", opts)
	if err != nil {
		t.Fatalf("Evaluate(%q): %v", source, err)
	}

	return out
}

func TestEvaluateLiteralObject(t *testing.T) {
	got := mustEval(t, `{ a: 1, b: 2 }`, EvalOptions{})
	if got != `{"a":1,"b":2}` {
		t.Fatalf("got %q", got)
	}
}

func TestEvaluateDefaultParameters(t *testing.T) {
	got := mustEval(t, `local f(x=10) = x*x; [f(), f(3)]`, EvalOptions{})
	if got != `[100,9]` {
		t.Fatalf("got %q", got)
	}
}

func TestEvaluateAdditiveField(t *testing.T) {
	got := mustEval(t, `{ a: 1 } + { a+: 2 }`, EvalOptions{})
	if got != `{"a":3}` {
		t.Fatalf("got %q", got)
	}
}

func TestEvaluateSuperLateBinding(t *testing.T) {
	got := mustEval(t, `local A = { f: 1, g: self.f }; local B = A + { f: 2 }; B.g`, EvalOptions{})
	if got != `2` {
		t.Fatalf("got %q", got)
	}
}

func TestEvaluateSuperAccess(t *testing.T) {
	got := mustEval(t, `local A = { f: 1 }; local B = A + { f+: super.f + 10 }; B.f`, EvalOptions{})
	if got != `12` {
		t.Fatalf("got %q", got)
	}
}

func TestEvaluateExtVarString(t *testing.T) {
	got := mustEval(t, `std.extVar("name")`, EvalOptions{ExtVars: map[string]string{"name": "world"}})
	if got != `"world"` {
		t.Fatalf("got %q", got)
	}
}

func TestEvaluateExtVarCode(t *testing.T) {
	got := mustEval(t, `std.extVar("n") + 1`, EvalOptions{ExtCodes: map[string]string{"n": "41"}})
	if got != `42` {
		t.Fatalf("got %q", got)
	}
}

func TestEvaluateTopLevelArgs(t *testing.T) {
	got := mustEval(t, `function(x, y=10) x + y`, EvalOptions{
		TLACodes: map[string]string{"x": "5"},
	})
	if got != `15` {
		t.Fatalf("got %q", got)
	}
}

func TestEvaluateStringOutput(t *testing.T) {
	got := mustEval(t, `"hello"`, EvalOptions{StringOutput: true})
	if got != "hello" {
		t.Fatalf("got %q", got)
	}
}

func TestEvaluateStringOutputRejectsNonString(t *testing.T) {
	_, err := Evaluate(`{}`, "<test>", EvalOptions{StringOutput: true})
	if err == nil {
		t.Fatal("expected an error for non-string top-level value in string output mode")
	}
}

func TestEvaluateImportFromFile(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.jsonnet")
	mainPath := filepath.Join(dir, "main.jsonnet")

	if err := os.WriteFile(lib, []byte(`{ answer: 42 }`), 0o644); err != nil {
		t.Fatalf("write lib: %v", err)
	}

	out, err := Evaluate(`(import "lib.jsonnet").answer`, mainPath, EvalOptions{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if out != "42" {
		t.Fatalf("got %q", out)
	}
}

func TestEvaluateParseError(t *testing.T) {
	_, err := Evaluate(`{ a: }`, "<test>", EvalOptions{})
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestEvaluateRuntimeError(t *testing.T) {
	_, err := Evaluate(`1 + "a"`, "<test>", EvalOptions{})
	if err == nil {
		t.Fatal("expected a runtime error")
	}
}

func TestEvaluateIndentedOutput(t *testing.T) {
	got := mustEval(t, `{ a: 1 }`, EvalOptions{Indent: 2})
	want := "{\n  \"a\": 1\n}"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
