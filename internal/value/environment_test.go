package value

import "testing"

func TestEnvironmentLookupWalksParentChain(t *testing.T) {
	root := NewRootEnvironment()
	root.Bind("a", Ready(Number(1)))

	child := root.Extend()
	child.Bind("b", Ready(Number(2)))

	if _, ok := child.Lookup("a"); !ok {
		t.Fatalf("child should see parent binding 'a'")
	}

	if _, ok := root.Lookup("b"); ok {
		t.Fatalf("parent should not see child binding 'b'")
	}

	tv, ok := child.Lookup("b")
	if !ok {
		t.Fatalf("child should see its own binding 'b'")
	}

	v, _ := tv.Force()
	if v != Number(2) {
		t.Fatalf("b = %v, want 2", v)
	}
}

func TestEnvironmentShadowing(t *testing.T) {
	root := NewRootEnvironment()
	root.Bind("x", Ready(Number(1)))

	child := root.Extend()
	child.Bind("x", Ready(Number(2)))

	tv, _ := child.Lookup("x")
	v, _ := tv.Force()

	if v != Number(2) {
		t.Fatalf("shadowed x = %v, want 2", v)
	}
}

func TestEnvironmentSelfSuperUndefinedAtRoot(t *testing.T) {
	root := NewRootEnvironment()

	if _, ok := root.Self(); ok {
		t.Fatalf("root environment should have no self frame")
	}
}

func TestEnvironmentSelfSuperCarriedThroughExtend(t *testing.T) {
	root := NewRootEnvironment()
	obj := &Object{}

	frame := root.ExtendWithObjectFrame(obj, nil)
	nested := frame.Extend() // e.g. a function body defined inside a field

	self, ok := nested.Self()
	if !ok || self != obj {
		t.Fatalf("nested scope should inherit self from its object frame")
	}
}

func TestEnvironmentObjectFrameReplacesSelf(t *testing.T) {
	root := NewRootEnvironment()
	outer := &Object{}
	inner := &Object{}

	outerFrame := root.ExtendWithObjectFrame(outer, nil)
	innerFrame := outerFrame.ExtendWithObjectFrame(inner, outer)

	self, _ := innerFrame.Self()
	if self != inner {
		t.Fatalf("inner object frame should replace self with the nested object")
	}

	super, _ := innerFrame.Super()
	if super != outer {
		t.Fatalf("inner object frame's super should be the outer object")
	}
}
