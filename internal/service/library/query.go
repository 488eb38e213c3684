package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/kv"
	"github.com/math-s/yeargoals/internal/record"
)

// Get returns the library record of an ISBN in any accepted spelling.
func (s *Service) Get(ctx context.Context, rawISBN string) (domain.Book, error) {
	isbn, ok := domain.NormalizeISBN(rawISBN)
	if !ok {
		return domain.Book{}, domain.NewValidationError("isbn", "isbn must be a valid ISBN-10 or ISBN-13")
	}

	it, err := s.store.Get(ctx, record.BookKey(s.owner, isbn))
	if err != nil {
		return domain.Book{}, fmt.Errorf("get book %s: %w", isbn, err)
	}
	book, err := record.DecodeBook(it)
	if err != nil {
		return domain.Book{}, fmt.Errorf("get book %s: %w", isbn, err)
	}
	return book, nil
}

// List returns library books in ascending ISBN order. Malformed records
// are logged and skipped.
func (s *Service) List(ctx context.Context, input ListBooksInput) ([]domain.Book, error) {
	items, err := s.store.Query(ctx, kv.Query{
		PK:     s.owner,
		Prefix: domain.BookPrefix(),
		Order:  kv.Ascending,
		Limit:  input.EffectiveLimit(),
	})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	books := make([]domain.Book, 0, len(items))
	for _, it := range items {
		b, err := record.DecodeBook(it)
		if err != nil {
			if errors.Is(err, record.ErrMalformed) {
				s.log.WarnContext(ctx, "skip malformed book", slog.String("sk", it.SK), slog.String("error", err.Error()))
				continue
			}
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}
