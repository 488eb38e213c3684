package kv

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// DecodeAttrs parses a stored JSON object. Numbers are read as decimals and
// normalized so that integral values surface as int64 and the rest as
// float64.
func DecodeAttrs(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode attrs: %w", err)
	}
	if raw == nil {
		return map[string]any{}, nil
	}
	return Normalize(raw).(map[string]any), nil
}

// Normalize walks v and converts every json.Number or decimal.Decimal into
// int64 when integral and in range, float64 otherwise. Maps and slices are
// rewritten in place.
func Normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return t.String()
		}
		return fromDecimal(d)
	case decimal.Decimal:
		return fromDecimal(t)
	case map[string]any:
		for k, e := range t {
			t[k] = Normalize(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = Normalize(e)
		}
		return t
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float32:
		return float64(t)
	}
	return v
}

func fromDecimal(d decimal.Decimal) any {
	if d.IsInteger() {
		if bi := d.BigInt(); bi.IsInt64() {
			return bi.Int64()
		}
	}
	f, _ := d.Float64()
	return f
}
