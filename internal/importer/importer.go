package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/weldlang/weld/internal/config"
	"github.com/weldlang/weld/internal/evaluator"
	"github.com/weldlang/weld/internal/lexer"
	"github.com/weldlang/weld/internal/parser"
	"github.com/weldlang/weld/internal/pipeline"
)

// Importer resolves import expressions to values. Paths are resolved
// relative to the importing file and loaded at most once; the result
// of each load is cached by absolute path.
type Importer struct {
	Logger *slog.Logger

	cache   map[string]evaluator.Object
	loading map[string]bool
}

func New(logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Importer{
		Logger:  logger,
		cache:   make(map[string]evaluator.Object),
		loading: make(map[string]bool),
	}
}

// Resolve implements evaluator.ImportHandler.
func (im *Importer) Resolve(path string, fromFile string) (evaluator.Object, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(filepath.Dir(fromFile), path)
	}
	abs, err := filepath.Abs(abs)
	if err != nil {
		return nil, err
	}

	if v, ok := im.cache[abs]; ok {
		return v, nil
	}
	if im.loading[abs] {
		return nil, fmt.Errorf("import cycle through %s", abs)
	}
	im.loading[abs] = true
	defer delete(im.loading, abs)

	im.Logger.Debug("loading import", "path", abs)

	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	v, err := im.load(abs, string(content))
	if err != nil {
		return nil, err
	}
	im.cache[abs] = v
	return v, nil
}

func (im *Importer) load(abs, content string) (evaluator.Object, error) {
	ext := strings.ToLower(filepath.Ext(abs))
	switch {
	case ext == config.SourceFileExt:
		return im.evalSource(abs, content)
	case contains(config.JSONExtensions, ext):
		var data interface{}
		dec := json.NewDecoder(strings.NewReader(content))
		dec.UseNumber()
		if err := dec.Decode(&data); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		return fromGo(data)
	case contains(config.YAMLExtensions, ext):
		var data interface{}
		if err := yaml.Unmarshal([]byte(content), &data); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		return fromGo(data)
	case contains(config.TOMLExtensions, ext):
		var data map[string]interface{}
		if err := toml.Unmarshal([]byte(content), &data); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
		return fromGo(data)
	case contains(config.TextExtensions, ext):
		return &evaluator.Str{Value: content}, nil
	default:
		return nil, fmt.Errorf("unsupported import extension %q", ext)
	}
}

// evalSource lexes, parses and evaluates an imported source file in a
// fresh top-level environment. The imported file can itself import.
func (im *Importer) evalSource(abs, content string) (evaluator.Object, error) {
	ctx := pipeline.NewPipelineContext(content)
	ctx.FilePath = abs
	p := parser.New(lexer.New(content), ctx)
	root := p.ParseProgram()
	if len(ctx.Errors) > 0 {
		msgs := make([]string, len(ctx.Errors))
		for i, e := range ctx.Errors {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("parse errors:\n%s", strings.Join(msgs, "\n"))
	}

	ev := evaluator.New()
	ev.CurrentFile = abs
	ev.Imports = im.Resolve
	ev.Logger = im.Logger

	result := ev.Eval(root, evaluator.NewBaseEnvironment())
	if err, ok := result.(*evaluator.Error); ok {
		return nil, fmt.Errorf("evaluating %s: %s", abs, err.Inspect())
	}
	return result, nil
}

// fromGo converts decoded JSON/YAML/TOML values to language values.
// Imported data carries no laziness and no priorities beyond neutral.
func fromGo(data interface{}) (evaluator.Object, error) {
	switch v := data.(type) {
	case nil:
		return &evaluator.Null{}, nil
	case bool:
		return &evaluator.Boolean{Value: v}, nil
	case int:
		return evaluator.NewNumberFromInt(int64(v)), nil
	case int64:
		return evaluator.NewNumberFromInt(v), nil
	case uint64:
		return &evaluator.Number{Value: new(big.Rat).SetUint64(v)}, nil
	case float64:
		r := new(big.Rat)
		if r.SetFloat64(v) == nil {
			return nil, fmt.Errorf("cannot represent %v as a number", v)
		}
		return &evaluator.Number{Value: r}, nil
	case json.Number:
		r, ok := new(big.Rat).SetString(v.String())
		if !ok {
			return nil, fmt.Errorf("cannot parse number %q", v.String())
		}
		return &evaluator.Number{Value: r}, nil
	case string:
		return &evaluator.Str{Value: v}, nil
	case []interface{}:
		elems := make([]*evaluator.Thunk, len(v))
		for i, item := range v {
			obj, err := fromGo(item)
			if err != nil {
				return nil, err
			}
			elems[i] = evaluator.NewForcedThunk(obj)
		}
		return &evaluator.Array{Elements: elems}, nil
	case map[string]interface{}:
		out := evaluator.NewRecordValue(false)
		for key, item := range v {
			obj, err := fromGo(item)
			if err != nil {
				return nil, err
			}
			out.SetField(key, &evaluator.Field{
				Value:    evaluator.NewForcedThunk(obj),
				Priority: evaluator.NeutralPriority(),
			})
		}
		return out, nil
	case map[interface{}]interface{}:
		out := evaluator.NewRecordValue(false)
		for key, item := range v {
			obj, err := fromGo(item)
			if err != nil {
				return nil, err
			}
			out.SetField(fmt.Sprintf("%v", key), &evaluator.Field{
				Value:    evaluator.NewForcedThunk(obj),
				Priority: evaluator.NeutralPriority(),
			})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported imported value of type %T", data)
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
