package action

import (
	"context"
	"log/slog"
	"time"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/math-s/yeargoals/internal/domain"
)

const (
	backfillWait     = time.Millisecond
	backfillMaxBatch = 100
)

// newBookLoader creates a loader scoped to one listing call. Its cache
// memoizes lookups by ISBN, so each book is read at most once per listing.
func (s *Service) newBookLoader() *dataloader.Loader[string, domain.Book] {
	return dataloader.NewBatchedLoader(
		s.batchBooks,
		dataloader.WithWait[string, domain.Book](backfillWait),
		dataloader.WithBatchCapacity[string, domain.Book](backfillMaxBatch),
	)
}

func (s *Service) batchBooks(ctx context.Context, isbns []string) []*dataloader.Result[domain.Book] {
	results := make([]*dataloader.Result[domain.Book], len(isbns))
	for i, isbn := range isbns {
		book, err := s.books.Get(ctx, isbn)
		results[i] = &dataloader.Result[domain.Book]{Data: book, Error: err}
	}
	return results
}

// backfillBooks fills missing book title and authors of READ actions from
// the library. Failures leave the fields empty.
func (s *Service) backfillBooks(ctx context.Context, actions []domain.Action) {
	var (
		loader  *dataloader.Loader[string, domain.Book]
		pending = make(map[int]dataloader.Thunk[domain.Book])
	)
	for i, a := range actions {
		if !a.NeedsBookBackfill() {
			continue
		}
		if loader == nil {
			loader = s.newBookLoader()
		}
		pending[i] = loader.Load(ctx, *a.ISBN)
	}

	for i, thunk := range pending {
		book, err := thunk()
		if err != nil {
			s.log.WarnContext(ctx, "book backfill failed",
				slog.String("isbn", *actions[i].ISBN),
				slog.String("error", err.Error()),
			)
			continue
		}
		a := &actions[i]
		if a.BookTitle == nil {
			a.BookTitle = book.Title
		}
		if len(a.BookAuthors) == 0 {
			a.BookAuthors = book.Authors
		}
		if a.GoogleVolumeID == nil {
			a.GoogleVolumeID = book.GoogleVolumeID
		}
	}
}
