package library

import (
	"context"
	"log/slog"

	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/kv"
	"github.com/math-s/yeargoals/internal/provider"
)

type itemStore interface {
	Get(ctx context.Context, key kv.Key) (kv.Item, error)
	Update(ctx context.Context, u kv.Update) (kv.Item, error)
	Query(ctx context.Context, q kv.Query) ([]kv.Item, error)
}

type bookLookup interface {
	LookupISBN(ctx context.Context, isbn string) (*provider.BookResult, error)
}

// Listing bounds.
const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// Service manages the owner's library of books, one record per ISBN.
type Service struct {
	store  itemStore
	lookup bookLookup
	owner  string
	clock  domain.Clock
	log    *slog.Logger
}

// NewService creates a new library service. owner is the partition key all
// books are stored under.
func NewService(log *slog.Logger, store itemStore, lookup bookLookup, owner string, clock domain.Clock) *Service {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &Service{
		store:  store,
		lookup: lookup,
		owner:  owner,
		clock:  clock,
		log:    log.With("service", "library"),
	}
}
