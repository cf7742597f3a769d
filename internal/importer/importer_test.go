package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/weldlang/weld/internal/evaluator"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func resolve(t *testing.T, path string) evaluator.Object {
	t.Helper()
	v, err := New(nil).Resolve(path, path)
	if err != nil {
		t.Fatalf("resolve %s: %v", path, err)
	}
	return v
}

func fieldValue(t *testing.T, obj evaluator.Object, name string) evaluator.Object {
	t.Helper()
	r, ok := obj.(*evaluator.Record)
	if !ok {
		t.Fatalf("want record, got %s", obj.Inspect())
	}
	f, ok := r.FieldMap[name]
	if !ok {
		t.Fatalf("no field %q", name)
	}
	return evaluator.New().ForceField(name, f)
}

func TestImportJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cfg.json", `{"port": 8080, "name": "svc", "tags": ["a", "b"], "debug": false, "extra": null, "ratio": 0.5}`)

	v := resolve(t, path)
	if n := fieldValue(t, v, "port").(*evaluator.Number); n.Inspect() != "8080" {
		t.Errorf("port: got %s", n.Inspect())
	}
	if s := fieldValue(t, v, "name").(*evaluator.Str); s.Value != "svc" {
		t.Errorf("name: got %q", s.Value)
	}
	if b := fieldValue(t, v, "debug").(*evaluator.Boolean); b.Value {
		t.Error("debug should be false")
	}
	if _, ok := fieldValue(t, v, "extra").(*evaluator.Null); !ok {
		t.Error("extra should be null")
	}
	if n := fieldValue(t, v, "ratio").(*evaluator.Number); n.Inspect() != "1/2" {
		t.Errorf("ratio: got %s", n.Inspect())
	}
	arr := fieldValue(t, v, "tags").(*evaluator.Array)
	if len(arr.Elements) != 2 {
		t.Errorf("tags: want 2 elements, got %d", len(arr.Elements))
	}
}

func TestImportYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cfg.yaml", "server:\n  host: localhost\n  port: 9000\nitems:\n  - 1\n  - 2\n")

	v := resolve(t, path)
	server := fieldValue(t, v, "server")
	if s := fieldValue(t, server, "host").(*evaluator.Str); s.Value != "localhost" {
		t.Errorf("host: got %q", s.Value)
	}
	if n := fieldValue(t, server, "port").(*evaluator.Number); n.Inspect() != "9000" {
		t.Errorf("port: got %s", n.Inspect())
	}
}

func TestImportTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cfg.toml", "title = \"demo\"\n[owner]\nname = \"ada\"\n")

	v := resolve(t, path)
	if s := fieldValue(t, v, "title").(*evaluator.Str); s.Value != "demo" {
		t.Errorf("title: got %q", s.Value)
	}
	owner := fieldValue(t, v, "owner")
	if s := fieldValue(t, owner, "name").(*evaluator.Str); s.Value != "ada" {
		t.Errorf("owner.name: got %q", s.Value)
	}
}

func TestImportText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "motd.txt", "hello\n")
	if s := resolve(t, path).(*evaluator.Str); s.Value != "hello\n" {
		t.Errorf("got %q", s.Value)
	}
}

func TestImportSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.weld", "{a | default = 1, b = a * 2}")
	main := writeFile(t, dir, "main.weld", `(import "base.weld") & {a = 5}`)

	v := resolve(t, main)
	if n := fieldValue(t, v, "b").(*evaluator.Number); n.Inspect() != "10" {
		t.Errorf("override should rewire b, got %s", n.Inspect())
	}
}

func TestImportIsCached(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cfg.json", `{"n": 1}`)

	im := New(nil)
	first, err := im.Resolve(path, path)
	if err != nil {
		t.Fatal(err)
	}
	// A rewrite is invisible once cached.
	writeFile(t, dir, "cfg.json", `{"n": 2}`)
	second, err := im.Resolve(path, path)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("same path should yield the cached object")
	}
}

func TestImportCycleDetected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.weld", `import "b.weld"`)
	writeFile(t, dir, "b.weld", `import "a.weld"`)
	a := filepath.Join(dir, "a.weld")

	if _, err := New(nil).Resolve(a, a); err == nil {
		t.Fatal("expected cycle error")
	}
}

func TestImportUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.bin", "xx")
	if _, err := New(nil).Resolve(path, path); err == nil {
		t.Fatal("expected unsupported extension error")
	}
}

func TestImportMissingFile(t *testing.T) {
	if _, err := New(nil).Resolve("/does/not/exist.json", "/does/not/exist.json"); err == nil {
		t.Fatal("expected read error")
	}
}

func TestImportParseErrorSurfaces(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.weld", "{a = }")
	if _, err := New(nil).Resolve(path, path); err == nil {
		t.Fatal("expected parse error")
	}
}
