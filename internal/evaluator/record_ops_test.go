package evaluator

import (
	"testing"

	"github.com/weldlang/weld/internal/token"
)

func TestFreezeBakesValues(t *testing.T) {
	v := testEval(t, "std.record.freeze {a = 1, b = a + 1}")
	wantNumber(t, recordField(t, v, "a"), "1")
	wantNumber(t, recordField(t, v, "b"), "2")
}

func TestFreezeSeversRecursion(t *testing.T) {
	// After freezing, b no longer follows overrides of a.
	frozen := "std.record.freeze {a | default = 1, b = a + 1}"
	v := testEval(t, "("+frozen+") & {a | force = 10}")
	wantNumber(t, recordField(t, v, "a"), "10")
	wantNumber(t, recordField(t, v, "b"), "2")

	// Without freeze the same merge rewires b.
	live := testEval(t, "{a | default = 1, b = a + 1} & {a | force = 10}")
	wantNumber(t, recordField(t, live, "b"), "11")
}

func TestFreezePromotesDefaults(t *testing.T) {
	// A frozen default is a stable definition: a later default loses
	// instead of silently overriding.
	v := testEval(t, "(std.record.freeze {a | default = 1}) & {a | default = 2}")
	wantNumber(t, recordField(t, v, "a"), "1")

	r := testEval(t, "std.record.freeze {a | default = 1}").(*Record)
	if got := r.FieldMap["a"].Priority; got.Compare(NeutralPriority()) != 0 {
		t.Errorf("frozen default should sit at priority 0, got %s", got)
	}
}

func TestFreezeKeepsExplicitPriorities(t *testing.T) {
	r := testEval(t, "std.record.freeze {a | force = 1, b | priority 7 = 2}").(*Record)
	if r.FieldMap["a"].Priority.Kind != PriorityTop {
		t.Error("force priority must survive freeze")
	}
	if p := r.FieldMap["b"].Priority; p.Kind != PriorityNumeral || p.Num != 7 {
		t.Errorf("numeric priority must survive freeze, got %s", p)
	}
}

func TestFreezeAppliesContracts(t *testing.T) {
	wantErrorKind(t, testEval(t, `std.record.freeze {p | Number = "x"}`), ErrContractViolation)

	r := testEval(t, "std.record.freeze {p | Number = 1}").(*Record)
	if len(r.FieldMap["p"].PendingContracts) != 0 {
		t.Error("freeze must clear pending contracts")
	}
}

func TestFreezeDropsOptionalValueless(t *testing.T) {
	r := testEval(t, "std.record.freeze {a = 1, b | optional | Number}").(*Record)
	if _, ok := r.FieldMap["b"]; ok {
		t.Error("valueless optional field should be dropped by freeze")
	}
	if _, ok := r.FieldMap["a"]; !ok {
		t.Error("defined field lost")
	}
}

func TestFreezeFailsOnRequiredValueless(t *testing.T) {
	wantErrorKind(t, testEval(t, "std.record.freeze {a | Number}"), ErrFieldMissing)
}

func TestInsert(t *testing.T) {
	v := testEval(t, `std.record.insert "b" 2 {a = 1}`)
	wantNumber(t, recordField(t, v, "a"), "1")
	wantNumber(t, recordField(t, v, "b"), "2")

	wantErrorKind(t, testEval(t, `std.record.insert "a" 2 {a = 1}`), ErrIncompatibleValues)
}

func TestInsertDoesNotMutateOriginal(t *testing.T) {
	src := `let base = {a = 1} in let grown = std.record.insert "b" 2 base in std.record.length base`
	wantNumber(t, testEval(t, src), "1")
}

func TestInsertWithOpts(t *testing.T) {
	src := `(std.record.insert_with_opts {priority = "default"} "a" 1 {}) & {a = 5}`
	wantNumber(t, recordField(t, testEval(t, src), "a"), "5")

	forced := `(std.record.insert_with_opts {priority = "force"} "a" 1 {}) & {a = 5}`
	wantNumber(t, recordField(t, testEval(t, forced), "a"), "1")

	hidden := testEval(t, `std.record.insert_with_opts {not_exported = true, doc = "internal"} "k" 1 {}`).(*Record)
	meta := hidden.FieldMap["k"].Metadata
	if !meta.NotExported || meta.Doc != "internal" {
		t.Errorf("metadata not applied: %+v", meta)
	}
}

func TestInsertValueStaysLazy(t *testing.T) {
	// The stored value diverges; nothing fails until the field itself
	// is observed.
	src := `let rec boom = boom in std.record.length (std.record.insert "b" boom {a = 1})`
	wantNumber(t, testEval(t, src), "2")

	wantErrorKind(t, testEval(t, `(std.record.insert "b" (1 / 0) {a = 1}).b`), ErrDivisionByZero)

	opts := `let rec boom = boom in
  std.record.has_field "b" (std.record.insert_with_opts {priority = "force"} "b" boom {})`
	wantBool(t, testEval(t, opts), true)
}

func TestUpdateValueStaysLazy(t *testing.T) {
	src := `let rec boom = boom in std.record.length (std.record.update "a" boom {a = 1})`
	wantNumber(t, testEval(t, src), "1")
}

func TestRemove(t *testing.T) {
	v := testEval(t, `std.record.remove "a" {a = 1, b = 2}`)
	r := v.(*Record)
	if _, ok := r.FieldMap["a"]; ok {
		t.Error("field a should be gone")
	}
	wantNumber(t, recordField(t, v, "b"), "2")

	wantErrorKind(t, testEval(t, `std.record.remove "zz" {a = 1}`), ErrFieldMissing)

	tolerant := testEval(t, `std.record.remove_with_opts {ignore_missing = true} "zz" {a = 1}`)
	if isError(tolerant) {
		t.Fatalf("ignore_missing should tolerate absence: %s", tolerant.Inspect())
	}
}

func TestUpdate(t *testing.T) {
	v := testEval(t, `std.record.update "a" 9 {a | Number = 1, b = 2}`)
	wantNumber(t, recordField(t, v, "a"), "9")

	// Update replaces contracts along with the value.
	replaced := testEval(t, `std.record.update "a" "now a string" {a | Number = 1}`)
	wantString(t, recordField(t, replaced, "a"), "now a string")

	inserted := testEval(t, `std.record.update "new" 1 {}`)
	wantNumber(t, recordField(t, inserted, "new"), "1")
}

func TestRecordQueries(t *testing.T) {
	wantBool(t, testEval(t, `std.record.has_field "a" {a = 1}`), true)
	wantBool(t, testEval(t, `std.record.has_field "b" {a = 1}`), false)
	// Declared but valueless fields do not count as present.
	wantBool(t, testEval(t, `std.record.has_field "a" {a | optional | Number}`), false)

	wantNumber(t, testEval(t, "std.record.length {a = 1, b = 2}"), "2")

	wantString(t, testEval(t, `std.string.join "," (std.record.fields {b = 1, a = 2, c = 3})`), "a,b,c")
	wantNumber(t, testEval(t, "std.array.at 0 (std.record.values {b = 2, a = 1})"), "1")
}

func TestValuesAreLazy(t *testing.T) {
	// values must not force fields it does not need.
	src := "let rec boom = boom in std.array.at 0 (std.record.values {a = 1, z = boom})"
	wantNumber(t, testEval(t, src), "1")
}

func TestFreezeDirectAPI(t *testing.T) {
	r := testEval(t, "{a = 1}").(*Record)
	e := New()
	frozen := e.Freeze(r, token.Token{})
	fr, ok := frozen.(*Record)
	if !ok {
		t.Fatalf("want record, got %s", frozen.Inspect())
	}
	if !fr.FieldMap["a"].Value.IsForced() {
		t.Error("frozen fields must hold forced thunks")
	}
}
