package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/weldlang/weld/internal/evaluator"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML, FormatTOML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown export format %q (want json, yaml or toml)", s)
}

// Serialize fully evaluates v and encodes it. Fields marked
// not_exported are omitted; valueless optional fields disappear;
// valueless required fields make the export fail. Record fields are
// emitted in lexicographic order, which the three encoders all apply
// to string-keyed maps.
func Serialize(ev *evaluator.Evaluator, v evaluator.Object, format Format) ([]byte, error) {
	plain, err := toGo(ev, v)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plain); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(plain)
	case FormatTOML:
		if _, ok := plain.(map[string]interface{}); !ok {
			return nil, fmt.Errorf("TOML export requires a record at the top level, got %s", kindName(v))
		}
		return toml.Marshal(plain)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

func toGo(ev *evaluator.Evaluator, v evaluator.Object) (interface{}, error) {
	switch v := v.(type) {
	case *evaluator.Null:
		return nil, nil
	case *evaluator.Boolean:
		return v.Value, nil
	case *evaluator.Str:
		return v.Value, nil
	case *evaluator.Number:
		return numberToGo(v)
	case *evaluator.EnumTag:
		return v.Name, nil
	case *evaluator.EnumVariant:
		payload := ev.Force(v.Payload)
		if err, ok := payload.(*evaluator.Error); ok {
			return nil, fmt.Errorf("%s", err.Inspect())
		}
		arg, err := toGo(ev, payload)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"tag": v.Name, "arg": arg}, nil
	case *evaluator.Array:
		out := make([]interface{}, len(v.Elements))
		for i, el := range v.Elements {
			forced := ev.Force(el)
			if err, ok := forced.(*evaluator.Error); ok {
				return nil, fmt.Errorf("%s", err.Inspect())
			}
			item, err := toGo(ev, forced)
			if err != nil {
				return nil, err
			}
			out[i] = item
		}
		return out, nil
	case *evaluator.Record:
		return recordToGo(ev, v)
	case *evaluator.Error:
		return nil, fmt.Errorf("%s", v.Inspect())
	default:
		return nil, fmt.Errorf("cannot serialize %s", kindName(v))
	}
}

func recordToGo(ev *evaluator.Evaluator, r *evaluator.Record) (interface{}, error) {
	out := make(map[string]interface{}, len(r.FieldMap))
	for _, name := range r.SortedNames() {
		f := r.FieldMap[name]
		if f.Metadata.NotExported {
			continue
		}
		if !f.Defined() {
			if f.Metadata.Optional {
				continue
			}
			return nil, fmt.Errorf("field %q has no definition", name)
		}
		forced := ev.ForceField(name, f)
		if err, ok := forced.(*evaluator.Error); ok {
			return nil, fmt.Errorf("%s", err.Inspect())
		}
		item, err := toGo(ev, forced)
		if err != nil {
			return nil, err
		}
		out[name] = item
	}
	return out, nil
}

// numberToGo keeps integers exact when they fit in int64 and falls
// back to the nearest float64 otherwise.
func numberToGo(n *evaluator.Number) (interface{}, error) {
	if n.IsInt() {
		num := n.Value.Num()
		if num.IsInt64() {
			return num.Int64(), nil
		}
		return nil, fmt.Errorf("integer %s is too large to export", num.String())
	}
	f, _ := n.Value.Float64()
	return f, nil
}

func kindName(v evaluator.Object) string {
	return string(v.Type())
}
