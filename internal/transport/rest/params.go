package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

// errBody carries the message reported for an unusable request body.
type errBody string

func (e errBody) Error() string { return string(e) }

// decodeBody reads a JSON object. Numbers stay json.Number so integer
// fields can be checked strictly.
func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	if r.Body == nil {
		return nil, errBody("Missing request body")
	}
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBody("Request body too large")
		}
		return nil, errBody("Invalid JSON body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errBody("Missing request body")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errBody("Invalid JSON body")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errBody("JSON body must be an object")
	}
	return obj, nil
}

// stringValue renders a scalar as it was sent. Absent, null and non-scalar
// values read as "".
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// optionalString is nil for an absent or null field.
func optionalString(m map[string]any, key string) *string {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	s := stringValue(v)
	return &s
}

// strictInt accepts an integer literal only: no fraction, no exponent, no
// strings, no booleans.
func strictInt(v any) (int64, bool) {
	n, ok := v.(json.Number)
	if !ok || strings.ContainsAny(n.String(), ".eE") {
		return 0, false
	}
	i, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return i, true
}

func optionalInt(m map[string]any, key string) *int64 {
	i, ok := strictInt(m[key])
	if !ok {
		return nil
	}
	return &i
}

// yearValue parses a year sent as a number or a numeric string. Anything
// else reads as 0, which the services reject.
func yearValue(v any) int {
	y, err := strconv.Atoi(strings.TrimSpace(stringValue(v)))
	if err != nil {
		return 0
	}
	return y
}

// queryLimit returns nil when limit is absent or empty.
func queryLimit(r *http.Request) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errBody("limit must be an integer")
	}
	return &n, nil
}

func queryYear(r *http.Request) int {
	return yearValue(r.URL.Query().Get("year"))
}

// patchValue converts a patch field for the goal service: integer literals
// become int64, other numbers float64, everything else is kept.
func patchValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, ok := strictInt(n); ok {
		return i
	}
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	return f
}
