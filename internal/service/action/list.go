package action

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/kv"
	"github.com/math-s/yeargoals/internal/record"
)

// List returns a year's actions, most recent first. With a type filter the
// whole year is scanned and the limit applies to the matches. READ actions
// stored without book display fields are backfilled from the library.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Action, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.EffectiveLimit()
	filter := input.typeFilter()

	q := kv.Query{
		PK:     s.owner,
		Prefix: domain.ActionPrefix(input.Year),
		Order:  kv.Descending,
		Limit:  limit,
	}
	if filter != "" {
		q.Limit = 0
	}

	items, err := s.store.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}

	actions := make([]domain.Action, 0, min(len(items), limit))
	for _, it := range items {
		if len(actions) == limit {
			break
		}
		a, err := record.DecodeAction(it)
		if err != nil {
			if errors.Is(err, record.ErrMalformed) {
				s.log.WarnContext(ctx, "skip malformed action", slog.String("sk", it.SK), slog.String("error", err.Error()))
				continue
			}
			return nil, err
		}
		if filter != "" && a.Kind.String() != filter {
			continue
		}
		actions = append(actions, a)
	}

	s.backfillBooks(ctx, actions)
	return actions, nil
}
