// Package memory implements the sorted key-value store in process memory.
// It backs the "memory" storage driver for local runs and serves as a test
// double with the same semantics as the PostgreSQL store.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/kv"
)

// Store is safe for concurrent use. Every operation holds one lock, which
// makes Update atomic.
type Store struct {
	mu         sync.RWMutex
	partitions map[string]map[string]map[string]any
}

// New creates an empty store.
func New() *Store {
	return &Store{partitions: make(map[string]map[string]map[string]any)}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Get(_ context.Context, key kv.Key) (kv.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attrs, ok := s.partitions[key.PK][key.SK]
	if !ok {
		return kv.Item{}, fmt.Errorf("get %s/%s: %w", key.PK, key.SK, domain.ErrNotFound)
	}
	return kv.Item{Key: key, Attrs: clone(attrs)}, nil
}

func (s *Store) Put(_ context.Context, it kv.Item) error {
	attrs, err := roundTrip(it.Attrs)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.partition(it.PK)[it.SK] = attrs
	return nil
}

func (s *Store) Update(_ context.Context, u kv.Update) (kv.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	part := s.partition(u.PK)
	cur, exists := part[u.SK]
	if !exists && u.MustExist {
		return kv.Item{}, fmt.Errorf("update %s/%s: %w", u.PK, u.SK, domain.ErrNotFound)
	}

	next, err := roundTrip(u.Merge(cur))
	if err != nil {
		return kv.Item{}, err
	}
	part[u.SK] = next
	return kv.Item{Key: u.Key, Attrs: clone(next)}, nil
}

func (s *Store) Delete(_ context.Context, key kv.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.partitions[key.PK], key.SK)
	return nil
}

func (s *Store) Query(_ context.Context, q kv.Query) ([]kv.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	part := s.partitions[q.PK]
	keys := make([]string, 0, len(part))
	for sk := range part {
		if strings.HasPrefix(sk, q.Prefix) {
			keys = append(keys, sk)
		}
	}
	sort.Strings(keys)
	if q.Order == kv.Descending {
		sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	}
	if q.Limit > 0 && len(keys) > q.Limit {
		keys = keys[:q.Limit]
	}

	items := make([]kv.Item, 0, len(keys))
	for _, sk := range keys {
		items = append(items, kv.Item{Key: kv.Key{PK: q.PK, SK: sk}, Attrs: clone(part[sk])})
	}
	return items, nil
}

func (s *Store) partition(pk string) map[string]map[string]any {
	p, ok := s.partitions[pk]
	if !ok {
		p = make(map[string]map[string]any)
		s.partitions[pk] = p
	}
	return p
}

// roundTrip stores attributes the way a JSON column would: through an
// encode/decode cycle, so callers never share maps with the store and
// numbers come back normalized.
func roundTrip(attrs map[string]any) (map[string]any, error) {
	if attrs == nil {
		return map[string]any{}, nil
	}
	b, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("encode attrs: %w", err)
	}
	return kv.DecodeAttrs(b)
}

func clone(attrs map[string]any) map[string]any {
	out, err := roundTrip(attrs)
	if err != nil {
		// attrs were produced by roundTrip and always re-encode.
		panic(err)
	}
	return out
}
