package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/kv"
	"github.com/math-s/yeargoals/internal/record"
)

type itemStore interface {
	Get(ctx context.Context, key kv.Key) (kv.Item, error)
}

// Service reads the per-year aggregates.
type Service struct {
	store itemStore
	owner string
	log   *slog.Logger
}

// NewService creates a new stats service.
func NewService(log *slog.Logger, store itemStore, owner string) *Service {
	return &Service{
		store: store,
		owner: owner,
		log:   log.With("service", "stats"),
	}
}

// Get returns a year's aggregates. A year without any recorded action reads
// as all zeros.
func (s *Service) Get(ctx context.Context, year int) (domain.Stats, error) {
	if !domain.ValidYear(year) {
		return domain.Stats{}, domain.NewValidationError("year", "year is required (e.g. ?year=2026)")
	}

	it, err := s.store.Get(ctx, record.StatsKey(s.owner, year))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.EmptyStats(year), nil
		}
		return domain.Stats{}, fmt.Errorf("get stats %d: %w", year, err)
	}
	return record.DecodeStats(year, it), nil
}
