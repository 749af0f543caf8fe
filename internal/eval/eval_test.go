package eval

import (
	"testing"

	"github.com/conneroisu/jsonnet/internal/desugar"
	"github.com/conneroisu/jsonnet/internal/stdlib"
	"github.com/conneroisu/jsonnet/pkg/parser"
)

// mustRun parses, desugars, evaluates, and manifests src as JSON — the
// same pipeline pkg/jsonnet.Evaluate runs, but inlined here so eval's own
// tests don't depend on a package that in turn depends on eval.
func mustRun(t *testing.T, src string) string {
	t.Helper()

	raw, err := parser.ParseString("test.jsonnet", src)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", src, err)
	}

	core, err := desugar.Desugar(raw)
	if err != nil {
		t.Fatalf("Desugar(%q): %v", src, err)
	}

	it := New(nil, nil)
	it.Std = stdlib.New(it)

	v, err := it.Eval(core, it.RootEnv("test.jsonnet"))
	if err != nil {
		t.Fatalf("Eval(%q): %v", src, err)
	}

	out, err := it.ManifestJSON(v, 0)
	if err != nil {
		t.Fatalf("ManifestJSON(%q): %v", src, err)
	}

	return out
}

func mustFail(t *testing.T, src string) {
	t.Helper()

	raw, err := parser.ParseString("test.jsonnet", src)
	if err != nil {
		return
	}

	core, err := desugar.Desugar(raw)
	if err != nil {
		return
	}

	it := New(nil, nil)
	it.Std = stdlib.New(it)

	v, err := it.Eval(core, it.RootEnv("test.jsonnet"))
	if err == nil {
		if _, err = it.ManifestJSON(v, 0); err == nil {
			t.Fatalf("expected %q to fail, got a result instead", src)
		}
	}
}

func TestEvalLiterals(t *testing.T) {
	cases := map[string]string{
		`1 + 2`:        `3`,
		`"a" + "b"`:     `"ab"`,
		`[1, 2] + [3]`:  `[1,2,3]`,
		`!true`:         `false`,
		`-5`:            `-5`,
		`if true then 1 else 2`: `1`,
		`if false then 1`:       `null`,
	}

	for src, want := range cases {
		if got := mustRun(t, src); got != want {
			t.Errorf("%s = %s, want %s", src, got, want)
		}
	}
}

func TestEvalLocalAndFunction(t *testing.T) {
	got := mustRun(t, `local add(a, b=10) = a + b; add(1) + add(1, 2)`)
	if got != `14` {
		t.Fatalf("got %s, want 14", got)
	}
}

func TestEvalLazyArgumentNeverForced(t *testing.T) {
	// The second argument is never used by the function, so referencing
	// an unbound name inside it must not raise an error.
	got := mustRun(t, `local f(x, y) = x; f(1, undefinedName)`)
	if got != `1` {
		t.Fatalf("got %s, want 1", got)
	}
}

func TestEvalObjectFieldOrderAndHiding(t *testing.T) {
	got := mustRun(t, `{ b: 1, a: 2, c:: 3 }`)
	if got != `{"a":2,"b":1}` {
		t.Fatalf("got %s", got)
	}
}

func TestEvalObjectMergeSelfAlwaysOutermost(t *testing.T) {
	got := mustRun(t, `{ x: 1, y: self.x + 1 } + { x: 10 }`)
	if got != `{"x":10,"y":11}` {
		t.Fatalf("got %s, want y to see the overridden x (11)", got)
	}
}

func TestEvalObjectMergeAdditiveField(t *testing.T) {
	got := mustRun(t, `{ xs: [1, 2] } + { xs+: [3] }`)
	if got != `{"xs":[1,2,3]}` {
		t.Fatalf("got %s", got)
	}
}

func TestEvalSuperIndex(t *testing.T) {
	got := mustRun(t, `{ f: 1 } + { f: super.f + 1 }`)
	if got != `{"f":2}` {
		t.Fatalf("got %s", got)
	}
}

func TestEvalInSuper(t *testing.T) {
	got := mustRun(t, `{ a: 1 } + { has_a: "a" in super }`)
	if got != `{"a":1,"has_a":true}` {
		t.Fatalf("got %s", got)
	}
}

func TestEvalArrayIndexOutOfBounds(t *testing.T) {
	mustFail(t, `[1, 2, 3][10]`)
}

func TestEvalAssertFailureBlocksManifestation(t *testing.T) {
	mustFail(t, `{ assert 1 == 2 : "nope", x: 1 }`)
}

func TestEvalDivisionByZero(t *testing.T) {
	mustFail(t, `1 / 0`)
}

func TestEvalEqualityIsStructural(t *testing.T) {
	got := mustRun(t, `{ a: [1, {b: 2}] } == { a: [1, {b: 2}] }`)
	if got != `true` {
		t.Fatalf("got %s, want true", got)
	}
}

func TestEvalErrorExpr(t *testing.T) {
	mustFail(t, `error "boom"`)
}

func TestEvalComprehension(t *testing.T) {
	got := mustRun(t, `[x * 2 for x in [1, 2, 3] if x != 2]`)
	if got != `[2,6]` {
		t.Fatalf("got %s, want [2,6]", got)
	}
}

func TestEvalObjectComprehension(t *testing.T) {
	got := mustRun(t, `{ [k]: k + k for k in ["a", "b"] }`)
	if got != `{"a":"aa","b":"bb"}` {
		t.Fatalf("got %s", got)
	}
}

func TestEvalPercentStringFormat(t *testing.T) {
	got := mustRun(t, `"%s is %d" % ["x", 3]`)
	if got != `"x is 3"` {
		t.Fatalf("got %s", got)
	}
}

func TestEvalMaxDepthExceeded(t *testing.T) {
	mustFail(t, `local f(n) = f(n + 1); f(0)`)
}
