package extjson

import (
	"encoding/base64"
	"fmt"
	"math"
	"time"

	"github.com/bson-format/go-bson/ir"

	"github.com/goccy/go-yaml"
)

// ToYAML renders v as YAML. Key order is preserved, and non-YAML
// kinds keep their $-keyed wrappers so FromYAML round-trips them.
func ToYAML(v ir.Value) ([]byte, error) {
	node, err := yamlValue(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// FromYAML parses YAML into an ir value, recognizing the same
// wrappers as Decode.
func FromYAML(data []byte) (ir.Value, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, &DecodeError{Message: "bad yaml", Err: err}
	}
	return yamlToIR(v)
}

func yamlValue(v ir.Value) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case *ir.Document:
		out := make(yaml.MapSlice, 0, t.Len())
		var rerr error
		t.Range(func(key string, elem ir.Value) bool {
			var node any
			node, rerr = yamlValue(elem)
			if rerr != nil {
				return false
			}
			out = append(out, yaml.MapItem{Key: key, Value: node})
			return true
		})
		return out, rerr
	case *ir.Array:
		out := make([]any, 0, t.Len())
		for _, elem := range t.Values() {
			node, err := yamlValue(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, node)
		}
		return out, nil
	case ir.String:
		return string(t), nil
	case ir.Boolean:
		return bool(t), nil
	case ir.Null:
		return nil, nil
	case ir.Int32:
		return int64(t), nil
	case ir.Int64:
		return int64(t), nil
	case ir.Double:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return wrapperSlice("$numberDouble", formatSpecialDouble(float64(t))), nil
		}
		return float64(t), nil
	case ir.DateTime:
		return wrapperSlice("$date", t.Time().UTC().Format(time.RFC3339Nano)), nil
	case ir.ObjectID:
		return wrapperSlice("$oid", t.Hex()), nil
	case ir.Decimal128:
		return wrapperSlice("$numberDecimal", t.String()), nil
	case ir.Binary:
		return yaml.MapSlice{{Key: "$binary", Value: yaml.MapSlice{
			{Key: "base64", Value: base64.StdEncoding.EncodeToString(t.Data)},
			{Key: "subType", Value: fmt.Sprintf("%02x", t.Subtype)},
		}}}, nil
	case ir.Regex:
		return yaml.MapSlice{{Key: "$regularExpression", Value: yaml.MapSlice{
			{Key: "pattern", Value: t.Pattern},
			{Key: "options", Value: t.Options},
		}}}, nil
	case ir.Code:
		return wrapperSlice("$code", string(t)), nil
	case ir.CodeWithScope:
		scope, err := yamlValue(orEmptyDoc(t.Scope))
		if err != nil {
			return nil, err
		}
		return yaml.MapSlice{
			{Key: "$code", Value: t.Code},
			{Key: "$scope", Value: scope},
		}, nil
	case ir.Timestamp:
		return yaml.MapSlice{{Key: "$timestamp", Value: yaml.MapSlice{
			{Key: "t", Value: uint64(t.T)},
			{Key: "i", Value: uint64(t.I)},
		}}}, nil
	case ir.MinKey:
		return wrapperSlice("$minKey", 1), nil
	case ir.MaxKey:
		return wrapperSlice("$maxKey", 1), nil
	case ir.Undefined:
		return wrapperSlice("$undefined", true), nil
	case ir.Symbol:
		return wrapperSlice("$symbol", string(t)), nil
	case ir.DBPointer:
		return yaml.MapSlice{{Key: "$dbPointer", Value: yaml.MapSlice{
			{Key: "$ref", Value: t.Namespace},
			{Key: "$id", Value: wrapperSlice("$oid", t.Pointer.Hex())},
		}}}, nil
	}
	return nil, fmt.Errorf("extjson: cannot encode %T as yaml", v)
}

func wrapperSlice(key string, v any) yaml.MapSlice {
	return yaml.MapSlice{{Key: key, Value: v}}
}

func formatSpecialDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	}
	return "-Infinity"
}

func orEmptyDoc(d *ir.Document) *ir.Document {
	if d == nil {
		return ir.NewDocument()
	}
	return d
}

func yamlToIR(v any) (ir.Value, error) {
	switch t := v.(type) {
	case nil:
		return ir.Null{}, nil
	case yaml.MapSlice:
		doc := ir.NewDocument()
		for _, item := range t {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprintf("%v", item.Key)
			}
			node, err := yamlToIR(item.Value)
			if err != nil {
				return nil, err
			}
			doc.Set(key, node)
		}
		return promote(doc)
	case []any:
		arr := ir.NewArray()
		for _, elem := range t {
			node, err := yamlToIR(elem)
			if err != nil {
				return nil, err
			}
			arr.Append(node)
		}
		return arr, nil
	case string:
		return ir.String(t), nil
	case bool:
		return ir.Boolean(t), nil
	case int:
		return ir.Int(int64(t)), nil
	case int64:
		return ir.Int(t), nil
	case uint64:
		node, err := ir.Uint(t)
		if err != nil {
			return nil, &DecodeError{Message: "integer out of range", Err: err}
		}
		return node, nil
	case float64:
		return ir.Double(t), nil
	case time.Time:
		return ir.FromTime(t), nil
	}
	return nil, &DecodeError{Message: fmt.Sprintf("cannot map yaml value %T (%v)", v, v)}
}
