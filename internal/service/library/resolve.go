package library

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/record"
)

// Resolve looks isbn up in the metadata catalog and upserts the library
// record. isbn must already be canonical. A catalog failure returns an error
// wrapping domain.ErrLookupFailed; no match returns domain.ErrBookNotFound.
// Nothing is written in either case.
func (s *Service) Resolve(ctx context.Context, isbn string) (domain.Book, error) {
	return s.resolve(ctx, isbn, false)
}

// Add validates the ISBN, then resolves it and marks the book as explicitly
// added to the library.
func (s *Service) Add(ctx context.Context, input AddBookInput) (domain.Book, error) {
	isbn, err := input.Validate()
	if err != nil {
		return domain.Book{}, err
	}
	return s.resolve(ctx, isbn, true)
}

func (s *Service) resolve(ctx context.Context, isbn string, markInLibrary bool) (domain.Book, error) {
	meta, err := s.lookup.LookupISBN(ctx, isbn)
	if err != nil {
		s.log.WarnContext(ctx, "book lookup failed",
			slog.String("isbn", isbn),
			slog.String("error", err.Error()),
		)
		return domain.Book{}, fmt.Errorf("lookup isbn %s: %w: %w", isbn, domain.ErrLookupFailed, err)
	}
	if meta == nil {
		return domain.Book{}, fmt.Errorf("lookup isbn %s: %w", isbn, domain.ErrBookNotFound)
	}

	now := domain.FormatTimestamp(s.clock.Now())
	it, err := s.store.Update(ctx, record.BookUpsert(s.owner, isbn, *meta, now, markInLibrary))
	if err != nil {
		return domain.Book{}, fmt.Errorf("upsert book %s: %w", isbn, err)
	}

	book, err := record.DecodeBook(it)
	if err != nil {
		return domain.Book{}, fmt.Errorf("upsert book %s: %w", isbn, err)
	}

	s.log.InfoContext(ctx, "book upserted",
		slog.String("isbn", isbn),
		slog.Bool("in_library", book.InLibrary),
	)
	return book, nil
}
