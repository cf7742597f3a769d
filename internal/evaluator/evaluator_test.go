package evaluator

import (
	"strings"
	"testing"

	"github.com/weldlang/weld/internal/lexer"
	"github.com/weldlang/weld/internal/parser"
	"github.com/weldlang/weld/internal/pipeline"
	"github.com/weldlang/weld/internal/token"
)

// testEval runs a source snippet end to end through lexer, parser and
// evaluator, against the standard base environment.
func testEval(t *testing.T, src string) Object {
	t.Helper()
	ctx := pipeline.NewPipelineContext(src)
	p := parser.New(lexer.New(src), ctx)
	root := p.ParseProgram()
	if len(ctx.Errors) > 0 {
		t.Fatalf("parse error in %q: %v", src, ctx.Errors[0])
	}
	e := New()
	return e.Eval(root, NewBaseEnvironment())
}

// testForce additionally deep-forces the result, so pending contracts
// and lazy merge conflicts surface.
func testForce(t *testing.T, src string) Object {
	t.Helper()
	result := testEval(t, src)
	if isError(result) {
		return result
	}
	e := New()
	return e.DeepForce(result, token.Token{})
}

func wantNumber(t *testing.T, obj Object, want string) {
	t.Helper()
	n, ok := obj.(*Number)
	if !ok {
		t.Fatalf("want number %s, got %s", want, obj.Inspect())
	}
	if n.Inspect() != want {
		t.Fatalf("want %s, got %s", want, n.Inspect())
	}
}

func wantBool(t *testing.T, obj Object, want bool) {
	t.Helper()
	b, ok := obj.(*Boolean)
	if !ok {
		t.Fatalf("want boolean, got %s", obj.Inspect())
	}
	if b.Value != want {
		t.Fatalf("want %t, got %t", want, b.Value)
	}
}

func wantString(t *testing.T, obj Object, want string) {
	t.Helper()
	s, ok := obj.(*Str)
	if !ok {
		t.Fatalf("want string %q, got %s", want, obj.Inspect())
	}
	if s.Value != want {
		t.Fatalf("want %q, got %q", want, s.Value)
	}
}

func wantErrorKind(t *testing.T, obj Object, kind ErrorKind) *Error {
	t.Helper()
	err, ok := obj.(*Error)
	if !ok {
		t.Fatalf("want %s error, got %s", kind, obj.Inspect())
	}
	if err.Kind != kind {
		t.Fatalf("want %s, got %s (%s)", kind, err.Kind, err.Message)
	}
	return err
}

func recordField(t *testing.T, obj Object, name string) Object {
	t.Helper()
	r, ok := obj.(*Record)
	if !ok {
		t.Fatalf("want record, got %s", obj.Inspect())
	}
	f, ok := r.FieldMap[name]
	if !ok {
		t.Fatalf("record has no field %q", name)
	}
	e := New()
	return e.forceField(name, f, nil)
}

func TestEvalScalars(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"5", "5"},
		{"1 + 2 * 3", "7"},
		{"(1 + 2) * 3", "9"},
		{"10 / 4", "5/2"},
		{"-3 + 1", "-2"},
		{"0.1 + 0.2", "3/10"},
	}
	for _, tt := range tests {
		wantNumber(t, testEval(t, tt.input), tt.want)
	}
}

func TestEvalBooleansAndComparisons(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"!false", true},
		{"1 < 2", true},
		{"2 <= 1", false},
		{`"a" < "b"`, true},
		{"1 == 1", true},
		{"1 != 1", false},
		{`"x" == "x"`, true},
		{"[1, 2] == [1, 2]", true},
		{"{a = 1} == {a = 1}", true},
		{"{a = 1} == {a = 2}", false},
		{"'Up == 'Up", true},
		{"'Up == 'Down", false},
		{"true && false", false},
		{"false || true", true},
	}
	for _, tt := range tests {
		wantBool(t, testEval(t, tt.input), tt.want)
	}
}

func TestShortCircuitSkipsRightOperand(t *testing.T) {
	// The right side would fail; && must not reach it.
	wantBool(t, testEval(t, "false && (1 / 0 == 1)"), false)
	wantBool(t, testEval(t, "true || (1 / 0 == 1)"), true)
}

func TestDivisionByZero(t *testing.T) {
	wantErrorKind(t, testEval(t, "1 / 0"), ErrDivisionByZero)
}

func TestStringConcat(t *testing.T) {
	wantString(t, testEval(t, `"foo" ++ "bar"`), "foobar")
}

func TestLetBindings(t *testing.T) {
	wantNumber(t, testEval(t, "let x = 2 in let y = x + 3 in x * y"), "10")
}

func TestLetShadowing(t *testing.T) {
	wantNumber(t, testEval(t, "let x = 1 in let x = x + 1 in x"), "2")
}

func TestFunctionsAreCurried(t *testing.T) {
	wantNumber(t, testEval(t, "let add = fun a b => a + b in add 2 3"), "5")
	wantNumber(t, testEval(t, "let add = fun a b => a + b in let inc = add 1 in inc 41"), "42")
}

func TestCallByNeed(t *testing.T) {
	// The argument diverges but is never used.
	wantNumber(t, testEval(t, "let const = fun a b => a in let rec boom = boom in const 1 boom"), "1")
}

func TestLetRecFunction(t *testing.T) {
	src := `let rec fact = fun n => if n == 0 then 1 else n * fact (n - 1) in fact 6`
	wantNumber(t, testEval(t, src), "720")
}

func TestRecursiveRecordSiblings(t *testing.T) {
	wantNumber(t, recordField(t, testEval(t, "{a = 1, b = a + 1}"), "b"), "2")
}

func TestRecursiveRecordOutOfOrder(t *testing.T) {
	wantNumber(t, recordField(t, testEval(t, "{b = a + 1, a = 1}"), "b"), "2")
}

func TestFieldAccess(t *testing.T) {
	wantNumber(t, testEval(t, "{a = {b = {c = 7}}}.a.b.c"), "7")
	wantErrorKind(t, testEval(t, "{a = 1}.b"), ErrFieldMissing)
	wantErrorKind(t, testEval(t, "(1).b"), ErrTypeMismatch)
}

func TestDuplicateFieldRejected(t *testing.T) {
	wantErrorKind(t, testEval(t, "{a = 1, a = 2}"), ErrTypeMismatch)
}

func TestIfExpression(t *testing.T) {
	wantNumber(t, testEval(t, "if 1 < 2 then 10 else 20"), "10")
	wantNumber(t, testEval(t, "if 1 > 2 then 10 else 20"), "20")
	wantErrorKind(t, testEval(t, "if 1 then 2 else 3"), ErrTypeMismatch)
}

func TestMatchExpression(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"match 'Some 5 { 'Some x => x, 'None => 0 }", "5"},
		{"match 'None { 'Some x => x, 'None => 0 }", "0"},
		{"match 3 { 1 => 10, 3 => 30, _ => 0 }", "30"},
		{"match 99 { 1 => 10, _ => 0 }", "0"},
	}
	for _, tt := range tests {
		wantNumber(t, testEval(t, tt.input), tt.want)
	}
	wantErrorKind(t, testEval(t, "match 'Odd { 'Even => 1 }"), ErrDestructuringMismatch)
}

func TestMatchPayloadStaysLazy(t *testing.T) {
	// Payload diverges; matching on the tag alone must not force it.
	wantNumber(t, testEval(t, "let rec boom = boom in match 'Tagged boom { 'Tagged x => 1, _ => 0 }"), "1")
}

func TestUnboundIdentifier(t *testing.T) {
	err := wantErrorKind(t, testEval(t, "nope"), ErrUnboundIdentifier)
	if !strings.Contains(err.Message, "nope") {
		t.Errorf("message should name the identifier: %s", err.Message)
	}
}

func TestNotAFunction(t *testing.T) {
	wantErrorKind(t, testEval(t, "1 2"), ErrNotAFunction)
}

func TestEnumTagApplication(t *testing.T) {
	v := testEval(t, "'Port 8080")
	variant, ok := v.(*EnumVariant)
	if !ok {
		t.Fatalf("want enum variant, got %s", v.Inspect())
	}
	if variant.Name != "Port" {
		t.Errorf("want tag Port, got %q", variant.Name)
	}
}

func TestArrayLaziness(t *testing.T) {
	// Building an array never forces its elements.
	v := testEval(t, "let rec boom = boom in [boom, 1]")
	arr, ok := v.(*Array)
	if !ok {
		t.Fatalf("want array, got %s", v.Inspect())
	}
	if len(arr.Elements) != 2 {
		t.Fatalf("want 2 elements, got %d", len(arr.Elements))
	}
	e := New()
	wantNumber(t, e.Force(arr.Elements[1]), "1")
	wantErrorKind(t, e.Force(arr.Elements[0]), ErrInfiniteRecursion)
}

func TestStdArray(t *testing.T) {
	wantNumber(t, testEval(t, "std.array.length [1, 2, 3]"), "3")
	wantNumber(t, testEval(t, "std.array.at 1 [10, 20, 30]"), "20")
	wantNumber(t, testEval(t, "std.array.length (std.array.concat [1] [2, 3])"), "3")
	wantNumber(t, testEval(t, "std.array.at 0 (std.array.map (fun x => x * 2) [21])"), "42")
}

func TestStdString(t *testing.T) {
	wantNumber(t, testEval(t, `std.string.length "héllo"`), "5")
	wantString(t, testEval(t, `std.string.substring 1 3 "abcd"`), "bc")
	wantString(t, testEval(t, `std.string.join "-" ["a", "b", "c"]`), "a-b-c")
	wantBool(t, testEval(t, `std.string.contains "ell" "hello"`), true)
	wantNumber(t, testEval(t, `std.array.length (std.string.characters "ab")`), "2")
}

func TestStdNumber(t *testing.T) {
	wantNumber(t, testEval(t, "std.number.floor (7 / 2)"), "3")
	wantNumber(t, testEval(t, "std.number.floor (0 - 7 / 2)"), "-4")
	wantNumber(t, testEval(t, "std.number.truncate (0 - 7 / 2)"), "-3")
	wantNumber(t, testEval(t, "std.number.abs (0 - 5)"), "5")
}

func TestStdEnum(t *testing.T) {
	wantBool(t, testEval(t, "std.enum.is_variant ('Some 1)"), true)
	wantBool(t, testEval(t, "std.enum.is_variant 'None"), false)
	v := testEval(t, "std.enum.to_tag_and_arg ('Some 5)")
	wantNumber(t, recordField(t, v, "arg"), "5")
	tag := recordField(t, v, "tag")
	if et, ok := tag.(*EnumTag); !ok || et.Name != "Some" {
		t.Errorf("want tag 'Some, got %s", tag.Inspect())
	}
}

func TestDepthLimit(t *testing.T) {
	src := "let rec loop = fun n => loop (n + 1) in loop 0"
	wantErrorKind(t, testEval(t, src), ErrDepthExceeded)
}
