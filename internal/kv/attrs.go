package kv

// Typed accessors over Item attributes. They assume values went through
// Normalize; a missing or mistyped attribute reports ok=false.

func (it Item) String(name string) (string, bool) {
	s, ok := it.Attrs[name].(string)
	return s, ok
}

// StringPtr returns nil for a missing, null or non-string attribute.
func (it Item) StringPtr(name string) *string {
	s, ok := it.String(name)
	if !ok {
		return nil
	}
	return &s
}

func (it Item) Int(name string) (int64, bool) {
	switch n := it.Attrs[name].(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}

// IntPtr returns nil for a missing or non-integral attribute.
func (it Item) IntPtr(name string) *int64 {
	n, ok := it.Int(name)
	if !ok {
		return nil
	}
	return &n
}

func (it Item) Bool(name string) bool {
	b, _ := it.Attrs[name].(bool)
	return b
}

// Strings returns the string elements of a list attribute, skipping
// anything else.
func (it Item) Strings(name string) []string {
	switch l := it.Attrs[name].(type) {
	case []string:
		return l
	case []any:
		out := make([]string, 0, len(l))
		for _, e := range l {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
