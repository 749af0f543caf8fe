package value

import "testing"

func TestThunkMemoizesOnFirstSuccess(t *testing.T) {
	calls := 0
	th := NewThunk(func() (Value, error) {
		calls++

		return Number(42), nil
	})

	for i := 0; i < 3; i++ {
		v, err := th.Force()
		if err != nil {
			t.Fatalf("Force() returned error: %v", err)
		}

		if v != Number(42) {
			t.Fatalf("Force() = %v, want 42", v)
		}
	}

	if calls != 1 {
		t.Fatalf("compute called %d times, want 1", calls)
	}
}

func TestThunkDetectsCycle(t *testing.T) {
	var th *Thunk

	th = NewNamedThunk("x", func() (Value, error) {
		return th.Force()
	})

	_, err := th.Force()
	if err == nil {
		t.Fatalf("expected a cycle error, got nil")
	}

	if _, ok := err.(*CycleError); !ok {
		t.Fatalf("got %T, want *CycleError", err)
	}
}

func TestThunkMemoizesFailure(t *testing.T) {
	calls := 0
	boom := &CycleError{Name: "boom"}

	th := NewThunk(func() (Value, error) {
		calls++

		return nil, boom
	})

	_, err1 := th.Force()
	_, err2 := th.Force()

	if err1 != boom || err2 != boom {
		t.Fatalf("expected the same memoized error both times, got %v then %v", err1, err2)
	}

	if calls != 1 {
		t.Fatalf("compute called %d times on failure, want 1", calls)
	}
}

func TestReadyThunkNeverComputes(t *testing.T) {
	th := Ready(Bool(true))

	v, err := th.Force()
	if err != nil {
		t.Fatalf("Force() returned error: %v", err)
	}

	if v != Bool(true) {
		t.Fatalf("Force() = %v, want true", v)
	}
}
