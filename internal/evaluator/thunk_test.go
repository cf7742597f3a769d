package evaluator

import (
	"testing"
)

func TestThunkMemoization(t *testing.T) {
	calls := 0
	thunk := NewComputeThunk(func(e *Evaluator) Object {
		calls++
		return NewNumberFromInt(7)
	})
	e := New()
	wantNumber(t, e.Force(thunk), "7")
	wantNumber(t, e.Force(thunk), "7")
	if calls != 1 {
		t.Fatalf("compute ran %d times, want 1", calls)
	}
}

func TestThunkMemoizesErrors(t *testing.T) {
	calls := 0
	thunk := NewComputeThunk(func(e *Evaluator) Object {
		calls++
		return &Error{Kind: ErrTypeMismatch, Message: "boom"}
	})
	e := New()
	wantErrorKind(t, e.Force(thunk), ErrTypeMismatch)
	wantErrorKind(t, e.Force(thunk), ErrTypeMismatch)
	if calls != 1 {
		t.Fatalf("compute ran %d times, want 1", calls)
	}
}

func TestSelfReferenceIsInfiniteRecursion(t *testing.T) {
	wantErrorKind(t, testEval(t, "let rec x = x in x"), ErrInfiniteRecursion)
	wantErrorKind(t, testEval(t, "let rec x = x + 1 in x"), ErrInfiniteRecursion)
}

func TestMutualRecursionThroughRecord(t *testing.T) {
	wantErrorKind(t, recordField(t, testEval(t, "{a = b, b = a}"), "a"), ErrInfiniteRecursion)
}

func TestRevertSharesNonRevertibleThunks(t *testing.T) {
	forced := NewForcedThunk(NewNumberFromInt(1))
	if forced.Revertible() {
		t.Fatal("forced thunks must not be revertible")
	}
	if forced.Revert(NewEnvironment()) != forced {
		t.Fatal("non-revertible thunks are shared, not copied")
	}
}

func TestSharedThunkForcedOnceAcrossUses(t *testing.T) {
	// One binding observed from two fields evaluates once.
	calls := 0
	shared := NewComputeThunk(func(e *Evaluator) Object {
		calls++
		return NewNumberFromInt(3)
	})
	env := NewEnvironment()
	env.Set("x", shared)

	e := New()
	if v, ok := env.Get("x"); !ok || e.Force(v).(*Number).Inspect() != "3" {
		t.Fatal("first force failed")
	}
	if v, _ := env.Get("x"); e.Force(v).(*Number).Inspect() != "3" {
		t.Fatal("second force failed")
	}
	if calls != 1 {
		t.Fatalf("shared thunk ran %d times, want 1", calls)
	}
}
