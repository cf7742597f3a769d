package serializer

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/weldlang/weld/internal/evaluator"
	"github.com/weldlang/weld/internal/lexer"
	"github.com/weldlang/weld/internal/parser"
	"github.com/weldlang/weld/internal/pipeline"
)

func evalSource(t *testing.T, src string) (*evaluator.Evaluator, evaluator.Object) {
	t.Helper()
	ctx := pipeline.NewPipelineContext(src)
	p := parser.New(lexer.New(src), ctx)
	root := p.ParseProgram()
	if len(ctx.Errors) > 0 {
		t.Fatalf("parse error: %v", ctx.Errors[0])
	}
	e := evaluator.New()
	v := e.Eval(root, evaluator.NewBaseEnvironment())
	if err, ok := v.(*evaluator.Error); ok {
		t.Fatalf("eval error: %s", err.Inspect())
	}
	return e, v
}

func serializeJSON(t *testing.T, src string) map[string]interface{} {
	t.Helper()
	e, v := evalSource(t, src)
	data, err := Serialize(e, v, FormatJSON)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON %s: %v", data, err)
	}
	return out
}

func TestExportJSONBasic(t *testing.T) {
	out := serializeJSON(t, `{name = "svc", port = 8080, debug = false, tags = ["a", "b"], nothing = null}`)
	if out["name"] != "svc" {
		t.Errorf("name: %v", out["name"])
	}
	if out["port"] != float64(8080) {
		t.Errorf("port: %v", out["port"])
	}
	if out["debug"] != false {
		t.Errorf("debug: %v", out["debug"])
	}
	if out["nothing"] != nil {
		t.Errorf("nothing: %v", out["nothing"])
	}
	tags, ok := out["tags"].([]interface{})
	if !ok || len(tags) != 2 || tags[0] != "a" {
		t.Errorf("tags: %v", out["tags"])
	}
}

func TestExportAppliesMergeAndContracts(t *testing.T) {
	out := serializeJSON(t, `{port | Number | default = 80} & {port = 8080}`)
	if out["port"] != float64(8080) {
		t.Errorf("port: %v", out["port"])
	}

	e, v := evalSource(t, `{port | Number = "eighty"}`)
	if _, err := Serialize(e, v, FormatJSON); err == nil {
		t.Fatal("contract violation must fail the export")
	}
}

func TestExportSkipsNotExported(t *testing.T) {
	out := serializeJSON(t, `{visible = 1, secret | not_exported = 2}`)
	if _, ok := out["secret"]; ok {
		t.Error("not_exported field leaked")
	}
	if out["visible"] != float64(1) {
		t.Errorf("visible: %v", out["visible"])
	}
}

func TestExportDropsOptionalValueless(t *testing.T) {
	out := serializeJSON(t, `{a = 1, b | optional | Number}`)
	if _, ok := out["b"]; ok {
		t.Error("valueless optional field should be dropped")
	}
}

func TestExportFailsOnRequiredValueless(t *testing.T) {
	e, v := evalSource(t, `{a | Number}`)
	if _, err := Serialize(e, v, FormatJSON); err == nil {
		t.Fatal("required valueless field must fail the export")
	}
	e2, v2 := evalSource(t, `{a | Number} & {b = 1}`)
	if _, err := Serialize(e2, v2, FormatJSON); err == nil {
		t.Fatal("merge does not fill the hole; export must fail")
	}
}

func TestExportFieldsSortedLexicographically(t *testing.T) {
	e, v := evalSource(t, `{zeta = 1, alpha = 2, mid = 3}`)
	data, err := Serialize(e, v, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !(strings.Index(s, "alpha") < strings.Index(s, "mid") && strings.Index(s, "mid") < strings.Index(s, "zeta")) {
		t.Errorf("fields not sorted: %s", s)
	}
}

func TestExportNumbers(t *testing.T) {
	out := serializeJSON(t, `{int = 3, frac = 1 / 2}`)
	if out["int"] != float64(3) {
		t.Errorf("int: %v", out["int"])
	}
	if out["frac"] != 0.5 {
		t.Errorf("frac: %v", out["frac"])
	}
}

func TestExportEnums(t *testing.T) {
	out := serializeJSON(t, `{mode = 'Fast, boxed = 'Some 5}`)
	if out["mode"] != "Fast" {
		t.Errorf("mode: %v", out["mode"])
	}
	boxed, ok := out["boxed"].(map[string]interface{})
	if !ok || boxed["tag"] != "Some" || boxed["arg"] != float64(5) {
		t.Errorf("boxed: %v", out["boxed"])
	}
}

func TestExportRejectsFunctions(t *testing.T) {
	e, v := evalSource(t, `{f = fun x => x}`)
	if _, err := Serialize(e, v, FormatJSON); err == nil {
		t.Fatal("functions are not serializable")
	}
}

func TestExportYAML(t *testing.T) {
	e, v := evalSource(t, `{server = {host = "h", port = 1}}`)
	data, err := Serialize(e, v, FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]interface{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid YAML %s: %v", data, err)
	}
	server := out["server"].(map[string]interface{})
	if server["host"] != "h" {
		t.Errorf("host: %v", server["host"])
	}
}

func TestExportTOML(t *testing.T) {
	e, v := evalSource(t, `{title = "demo", owner = {name = "ada"}}`)
	data, err := Serialize(e, v, FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, "title = 'demo'") && !strings.Contains(s, `title = "demo"`) {
		t.Errorf("missing title: %s", s)
	}

	// TOML cannot represent a scalar document.
	e2, v2 := evalSource(t, "42")
	if _, err := Serialize(e2, v2, FormatTOML); err == nil {
		t.Fatal("scalar TOML export must fail")
	}
}

func TestParseFormat(t *testing.T) {
	for _, good := range []string{"json", "yaml", "toml"} {
		if _, err := ParseFormat(good); err != nil {
			t.Errorf("%s: %v", good, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("xml should be rejected")
	}
}
