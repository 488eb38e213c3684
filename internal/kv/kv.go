// Package kv defines the data shapes shared by the sorted key-value store
// backends and the code that reads and writes through them.
package kv

import "context"

// Key addresses one item: PK selects the owner partition, SK orders items
// inside it.
type Key struct {
	PK string
	SK string
}

// Item is a stored record. Attribute values are JSON-compatible: string,
// bool, int64, float64, []any, map[string]any or nil.
type Item struct {
	Key
	Attrs map[string]any
}

// Order is the direction of a prefix scan.
type Order int

const (
	Ascending Order = iota
	Descending
)

// Query is a prefix range scan inside one partition. Limit <= 0 means
// unbounded.
type Query struct {
	PK     string
	Prefix string
	Order  Order
	Limit  int
}

// Update is one atomic mutation of an item. It is applied in this order:
// SetIfAbsent fills attributes the stored item lacks, Set overwrites, Add
// increments numeric attributes (missing counts as zero). When MustExist is
// false a missing item is created.
type Update struct {
	Key
	Set         map[string]any
	SetIfAbsent map[string]any
	Add         map[string]int64
	MustExist   bool
}

// Store is the storage collaborator. Implementations must apply Update as
// a single atomic operation so concurrent increments commute. Get and a
// MustExist Update report a missing item with domain.ErrNotFound.
type Store interface {
	Get(ctx context.Context, key Key) (Item, error)
	Put(ctx context.Context, item Item) error
	Update(ctx context.Context, u Update) (Item, error)
	Delete(ctx context.Context, key Key) error
	Query(ctx context.Context, q Query) ([]Item, error)
}

// Merge returns the attributes an Update would produce on top of base.
// Backends that cannot push the computation down to the database use it,
// and the PostgreSQL store uses it for the insert branch of an upsert.
func (u Update) Merge(base map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(u.Set)+len(u.SetIfAbsent)+len(u.Add))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range u.SetIfAbsent {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	for k, v := range u.Set {
		out[k] = v
	}
	for k, d := range u.Add {
		out[k] = addNumber(out[k], d)
	}
	return out
}

func addNumber(cur any, delta int64) any {
	switch n := cur.(type) {
	case int64:
		return n + delta
	case int:
		return int64(n) + delta
	case float64:
		return n + float64(delta)
	}
	return delta
}
