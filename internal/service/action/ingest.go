package action

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/record"
)

// Ingest validates and stores one action, then bumps the year's aggregate
// row. Validation and lookup failures return before anything is written.
// For READ the library record is upserted before the action is stored.
//
// The action write and the stats increment are two independent atomic
// operations. If the increment fails after the action was stored, the
// failure is logged and the action is still returned.
func (s *Service) Ingest(ctx context.Context, input IngestInput) (domain.Action, error) {
	v, err := input.Validate()
	if err != nil {
		return domain.Action{}, err
	}

	now := domain.FormatTimestamp(s.clock.Now())
	ts := strings.TrimSpace(input.Timestamp)
	if ts == "" {
		ts = now
	}

	a := domain.Action{
		ID:        s.newID(),
		Year:      v.year,
		Timestamp: ts,
		Kind:      v.kind,
		CreatedAt: now,
	}

	switch v.kind {
	case domain.ActionKindSave:
		a.AmountCents = &v.amountCents
	case domain.ActionKindRead:
		book, err := s.books.Resolve(ctx, v.isbn)
		if err != nil {
			return domain.Action{}, fmt.Errorf("ingest read: %w", err)
		}
		ref := book.SK()
		a.ISBN = &book.ISBN
		a.BookRef = &ref
		a.BookTitle = book.Title
		a.BookAuthors = book.Authors
		a.GoogleVolumeID = book.GoogleVolumeID
	}

	if note := strings.TrimSpace(input.Note); note != "" {
		a.Note = &note
	}

	if err := s.store.Put(ctx, record.EncodeAction(s.owner, a)); err != nil {
		return domain.Action{}, fmt.Errorf("put action: %w", err)
	}

	delta := domain.DeltaFor(a.Kind, v.amountCents)
	if _, err := s.store.Update(ctx, record.StatsIncrement(s.owner, a.Year, delta, now)); err != nil {
		s.log.ErrorContext(ctx, "stats increment failed after action write",
			slog.String("action_id", a.ID),
			slog.Int("year", a.Year),
			slog.String("type", a.Kind.String()),
			slog.String("error", err.Error()),
		)
	}

	s.log.InfoContext(ctx, "action ingested",
		slog.String("action_id", a.ID),
		slog.Int("year", a.Year),
		slog.String("type", a.Kind.String()),
	)
	return a, nil
}
