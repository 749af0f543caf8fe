package desugar

import (
	"testing"

	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/pkg/parser"
)

func mustDesugar(t *testing.T, src string) ast.Node {
	t.Helper()

	raw, err := parser.ParseString("test.jsonnet", src)
	if err != nil {
		t.Fatalf("ParseString(%q) returned error: %v", src, err)
	}

	node, err := Desugar(raw)
	if err != nil {
		t.Fatalf("Desugar(%q) returned error: %v", src, err)
	}

	return node
}

func TestDesugarObjectBecomesDesugaredObject(t *testing.T) {
	node := mustDesugar(t, `{ a: 1, b: 2 }`)

	obj, ok := node.(*ast.DesugaredObject)
	if !ok {
		t.Fatalf("got %T, want *ast.DesugaredObject", node)
	}

	if len(obj.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(obj.Fields))
	}

	for i, name := range []string{"a", "b"} {
		key, ok := obj.Fields[i].Key.(*ast.Str)
		if !ok {
			t.Fatalf("field %d key is %T, want *ast.Str", i, obj.Fields[i].Key)
		}

		if key.Value != name {
			t.Fatalf("field %d key = %q, want %q", i, key.Value, name)
		}
	}
}

func TestDesugarIdentifierKeyBecomesStrNode(t *testing.T) {
	node := mustDesugar(t, `{ foo: 1 }`)
	obj := node.(*ast.DesugaredObject)

	key, ok := obj.Fields[0].Key.(*ast.Str)
	if !ok || key.Value != "foo" {
		t.Fatalf("field key is %#v, want *ast.Str{foo}", obj.Fields[0].Key)
	}

	if _, ok := obj.Fields[0].Expr.(*ast.Number); !ok {
		t.Fatalf("field value is %T, want *ast.Number", obj.Fields[0].Expr)
	}
}

func TestDesugarComputedKeyIsDesugaredNotStringified(t *testing.T) {
	node := mustDesugar(t, `{ ["a" + "b"]: 1 }`)
	obj := node.(*ast.DesugaredObject)

	if _, ok := obj.Fields[0].Key.(*ast.Binary); !ok {
		t.Fatalf("computed key collapsed to %T, want *ast.Binary", obj.Fields[0].Key)
	}
}

func TestDesugarTopLevelDollarBindingInjected(t *testing.T) {
	node := mustDesugar(t, `{ a: 1, b: $.a }`)
	obj := node.(*ast.DesugaredObject)

	var found bool

	for _, l := range obj.Locals {
		if l.Name == "$" {
			found = true

			if _, ok := l.Expr.(*ast.Self); !ok {
				t.Fatalf("$ local bound to %T, want *ast.Self", l.Expr)
			}
		}
	}

	if !found {
		t.Fatalf("no synthetic $ local injected: %+v", obj.Locals)
	}

	idx, ok := obj.Fields[1].Expr.(*ast.Index)
	if !ok {
		t.Fatalf("field b is %T, want *ast.Index", obj.Fields[1].Expr)
	}

	if _, ok := idx.Target.(*ast.Var); !ok {
		t.Fatalf("$ reference target is %T, want *ast.Var", idx.Target)
	}
}

func TestDesugarDollarWithNoEnclosingObjectErrors(t *testing.T) {
	raw, err := parser.ParseString("test.jsonnet", `$`)
	if err != nil {
		t.Fatalf("ParseString returned error: %v", err)
	}

	_, err = Desugar(raw)
	if err == nil {
		t.Fatalf("expected an error desugaring a bare $, got nil")
	}

	if _, ok := err.(*StaticError); !ok {
		t.Fatalf("got %T, want *StaticError", err)
	}
}

func TestDesugarNestedObjectDollarSeesOutermost(t *testing.T) {
	node := mustDesugar(t, `{ a: 1, b: { c: $.a } }`)
	outer := node.(*ast.DesugaredObject)

	var outerHasDollar bool

	for _, l := range outer.Locals {
		if l.Name == "$" {
			outerHasDollar = true
		}
	}

	if !outerHasDollar {
		t.Fatalf("outer object missing $ binding")
	}

	inner, ok := outer.Fields[1].Expr.(*ast.DesugaredObject)
	if !ok {
		t.Fatalf("nested field is %T, want *ast.DesugaredObject", outer.Fields[1].Expr)
	}

	for _, l := range inner.Locals {
		if l.Name == "$" {
			t.Fatalf("nested object should not rebind $, it should reference the outer one")
		}
	}
}

func TestDesugarObjectAssertPassesThroughFromParser(t *testing.T) {
	node := mustDesugar(t, `{ assert self.x > 0 : "bad", x: 1 }`)
	obj := node.(*ast.DesugaredObject)

	cond, ok := obj.Asserts[0].(*ast.Conditional)
	if !ok {
		t.Fatalf("assert is %T, want *ast.Conditional", obj.Asserts[0])
	}

	if _, ok := cond.False.(*ast.ErrorExpr); !ok {
		t.Fatalf("assert false-branch is %T, want *ast.ErrorExpr", cond.False)
	}
}

func TestDesugarFieldHideAndPlusSuperPreserved(t *testing.T) {
	node := mustDesugar(t, `{ a+:: 1 }`)
	obj := node.(*ast.DesugaredObject)

	if obj.Fields[0].Hide != ast.ObjectFieldHidden {
		t.Fatalf("got hide %v, want ObjectFieldHidden", obj.Fields[0].Hide)
	}

	if !obj.Fields[0].PlusSuper {
		t.Fatalf("expected PlusSuper to be true")
	}
}

func TestDesugarMethodSugarBecomesFunctionField(t *testing.T) {
	node := mustDesugar(t, `{ greet(name): "hi " + name }`)
	obj := node.(*ast.DesugaredObject)

	if _, ok := obj.Fields[0].Expr.(*ast.Function); !ok {
		t.Fatalf("method-sugar field is %T, want *ast.Function", obj.Fields[0].Expr)
	}
}

func TestDesugarArrayCompSingleFor(t *testing.T) {
	node := mustDesugar(t, `[x * 2 for x in [1, 2, 3]]`)

	apply, ok := node.(*ast.Apply)
	if !ok {
		t.Fatalf("got %T, want *ast.Apply (std.flatMap call)", node)
	}

	idx, ok := apply.Target.(*ast.Index)
	if !ok {
		t.Fatalf("apply target is %T, want *ast.Index", apply.Target)
	}

	name, ok := idx.Index.(*ast.Str)
	if !ok || name.Value != "flatMap" {
		t.Fatalf("call is not std.flatMap: %+v", idx.Index)
	}

	fn, ok := apply.Args[0].Expr.(*ast.Function)
	if !ok {
		t.Fatalf("first arg is %T, want *ast.Function", apply.Args[0].Expr)
	}

	if len(fn.Params) != 1 || fn.Params[0].Name != "x" {
		t.Fatalf("lambda params = %+v, want [x]", fn.Params)
	}

	if _, ok := fn.Body.(*ast.Array); !ok {
		t.Fatalf("lambda body is %T, want *ast.Array (single-element wrap)", fn.Body)
	}
}

func TestDesugarArrayCompWithIfFilters(t *testing.T) {
	node := mustDesugar(t, `[x for x in [1, 2, 3] if x > 1]`)

	apply := node.(*ast.Apply)
	fn := apply.Args[0].Expr.(*ast.Function)

	cond, ok := fn.Body.(*ast.Conditional)
	if !ok {
		t.Fatalf("lambda body is %T, want *ast.Conditional (if-filter)", fn.Body)
	}

	if _, ok := cond.False.(*ast.Array); !ok {
		t.Fatalf("filter false-branch is %T, want empty *ast.Array", cond.False)
	}
}

func TestDesugarArrayCompMultipleForsNest(t *testing.T) {
	node := mustDesugar(t, `[x + y for x in [1, 2] for y in [3, 4]]`)

	outer := node.(*ast.Apply)
	outerFn := outer.Args[0].Expr.(*ast.Function)

	if outerFn.Params[0].Name != "x" {
		t.Fatalf("outer lambda param = %q, want x", outerFn.Params[0].Name)
	}

	inner, ok := outerFn.Body.(*ast.Apply)
	if !ok {
		t.Fatalf("outer lambda body is %T, want nested std.flatMap *ast.Apply", outerFn.Body)
	}

	innerFn := inner.Args[0].Expr.(*ast.Function)
	if innerFn.Params[0].Name != "y" {
		t.Fatalf("inner lambda param = %q, want y", innerFn.Params[0].Name)
	}
}

func TestDesugarObjectCompBecomesFoldlOverFlatMap(t *testing.T) {
	node := mustDesugar(t, `{ [k]: k for k in ["a", "b"] }`)

	apply, ok := node.(*ast.Apply)
	if !ok {
		t.Fatalf("got %T, want *ast.Apply (std.foldl call)", node)
	}

	idx := apply.Target.(*ast.Index)

	name := idx.Index.(*ast.Str)
	if name.Value != "foldl" {
		t.Fatalf("call is not std.foldl: %q", name.Value)
	}

	if len(apply.Args) != 3 {
		t.Fatalf("got %d args to foldl, want 3", len(apply.Args))
	}

	if _, ok := apply.Args[1].Expr.(*ast.Apply); !ok {
		t.Fatalf("second foldl arg is %T, want the flatMap expansion *ast.Apply", apply.Args[1].Expr)
	}

	if _, ok := apply.Args[2].Expr.(*ast.DesugaredObject); !ok {
		t.Fatalf("third foldl arg is %T, want empty *ast.DesugaredObject", apply.Args[2].Expr)
	}
}

func TestDesugarInObjectBecomesObjectHasEx(t *testing.T) {
	node := mustDesugar(t, `"a" in { a: 1 }`)

	apply, ok := node.(*ast.Apply)
	if !ok {
		t.Fatalf("got %T, want *ast.Apply (std.objectHasEx call)", node)
	}

	idx := apply.Target.(*ast.Index)

	name := idx.Index.(*ast.Str)
	if name.Value != "objectHasEx" {
		t.Fatalf("call is not std.objectHasEx: %q", name.Value)
	}

	if len(apply.Args) != 3 {
		t.Fatalf("got %d args, want 3", len(apply.Args))
	}

	// Arguments are reordered: obj, key, hidden=true.
	if _, ok := apply.Args[0].Expr.(*ast.DesugaredObject); !ok {
		t.Fatalf("first arg is %T, want *ast.DesugaredObject", apply.Args[0].Expr)
	}

	key, ok := apply.Args[1].Expr.(*ast.Str)
	if !ok || key.Value != "a" {
		t.Fatalf("second arg is %+v, want literal \"a\"", apply.Args[1].Expr)
	}

	hidden, ok := apply.Args[2].Expr.(*ast.Bool)
	if !ok || !hidden.Value {
		t.Fatalf("third arg is %+v, want literal true", apply.Args[2].Expr)
	}
}

func TestDesugarInSuperPreservedDistinctFromIn(t *testing.T) {
	node := mustDesugar(t, `{ a: 1, b: "a" in super }`)
	obj := node.(*ast.DesugaredObject)

	if _, ok := obj.Fields[1].Expr.(*ast.InSuper); !ok {
		t.Fatalf("b field is %T, want *ast.InSuper", obj.Fields[1].Expr)
	}
}

func TestDesugarSliceBecomesStdSliceWithNullDefaults(t *testing.T) {
	node := mustDesugar(t, `[1, 2, 3][1:]`)

	apply, ok := node.(*ast.Apply)
	if !ok {
		t.Fatalf("got %T, want *ast.Apply (std.slice call)", node)
	}

	idx := apply.Target.(*ast.Index)

	name := idx.Index.(*ast.Str)
	if name.Value != "slice" {
		t.Fatalf("call is not std.slice: %q", name.Value)
	}

	if len(apply.Args) != 4 {
		t.Fatalf("got %d args, want 4 (target, begin, end, step)", len(apply.Args))
	}

	if n, ok := apply.Args[1].Expr.(*ast.Number); !ok || n.Value != 1 {
		t.Fatalf("begin arg = %+v, want literal 1", apply.Args[1].Expr)
	}

	if _, ok := apply.Args[2].Expr.(*ast.Null); !ok {
		t.Fatalf("end arg is %T, want *ast.Null", apply.Args[2].Expr)
	}

	if _, ok := apply.Args[3].Expr.(*ast.Null); !ok {
		t.Fatalf("step arg is %T, want *ast.Null", apply.Args[3].Expr)
	}
}

func TestDesugarAssertRule(t *testing.T) {
	node := mustDesugar(t, `assert 1 == 1 : "nope"; "ok"`)

	cond, ok := node.(*ast.Conditional)
	if !ok {
		t.Fatalf("got %T, want *ast.Conditional", node)
	}

	if _, ok := cond.True.(*ast.Str); !ok {
		t.Fatalf("true-branch (rest) is %T, want *ast.Str", cond.True)
	}

	errExpr, ok := cond.False.(*ast.ErrorExpr)
	if !ok {
		t.Fatalf("false-branch is %T, want *ast.ErrorExpr", cond.False)
	}

	msg, ok := errExpr.Expr.(*ast.Str)
	if !ok || msg.Value != "nope" {
		t.Fatalf("error message = %+v, want literal \"nope\"", errExpr.Expr)
	}
}

func TestDesugarAssertDefaultMessage(t *testing.T) {
	node := mustDesugar(t, `assert false; "ok"`)
	cond := node.(*ast.Conditional)

	errExpr := cond.False.(*ast.ErrorExpr)

	msg, ok := errExpr.Expr.(*ast.Str)
	if !ok || msg.Value != defaultAssertMessage {
		t.Fatalf("default error message = %+v, want %q", errExpr.Expr, defaultAssertMessage)
	}
}

func TestDesugarConditionalMissingElseBecomesNull(t *testing.T) {
	node := mustDesugar(t, `if true then 1`)
	cond := node.(*ast.Conditional)

	if _, ok := cond.False.(*ast.Null); !ok {
		t.Fatalf("missing else branch desugared to %T, want *ast.Null", cond.False)
	}
}

func TestDesugarFunctionDefaultParamsPassThrough(t *testing.T) {
	node := mustDesugar(t, `function(x, y=1) x + y`)
	fn := node.(*ast.Function)

	if len(fn.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(fn.Params))
	}

	if fn.Params[0].Default != nil {
		t.Fatalf("required param x should have nil Default")
	}

	def, ok := fn.Params[1].Default.(*ast.Number)
	if !ok || def.Value != 1 {
		t.Fatalf("y default = %+v, want literal 1", fn.Params[1].Default)
	}
}

func TestDesugarPercentLeftAsBinaryOp(t *testing.T) {
	node := mustDesugar(t, `"%d" % 5`)

	bin, ok := node.(*ast.Binary)
	if !ok {
		t.Fatalf("got %T, want *ast.Binary (left alone for runtime dispatch)", node)
	}

	if bin.Op != ast.BopPercent {
		t.Fatalf("got op %v, want BopPercent", bin.Op)
	}
}

func TestDesugarDesugaredObjectPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic desugaring an already-desugared object")
		}
	}()

	_, _ = desugarNode(&ast.DesugaredObject{}, 0)
}
