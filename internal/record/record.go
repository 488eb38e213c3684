// Package record converts domain entities to and from stored kv items and
// builds the atomic updates the services issue.
package record

import (
	"errors"
	"fmt"

	"github.com/math-s/yeargoals/internal/kv"
)

// ErrMalformed marks a stored item that lacks a required attribute.
var ErrMalformed = errors.New("malformed record")

// Attribute names shared by several entities.
const (
	attrYear      = "year"
	attrCreatedAt = "createdAt"
	attrUpdatedAt = "updatedAt"
)

func malformed(it kv.Item, attr string) error {
	return fmt.Errorf("%w: %s/%s: missing %s", ErrMalformed, it.PK, it.SK, attr)
}

func requireYear(it kv.Item) (int, error) {
	y, ok := it.Int(attrYear)
	if !ok {
		return 0, malformed(it, attrYear)
	}
	return int(y), nil
}

func setIfNotNil[T any](attrs map[string]any, name string, v *T) {
	if v != nil {
		attrs[name] = *v
	}
}

// stringsAttr stores a list as []any so in-memory items look the same as
// items decoded from JSON.
func stringsAttr(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
