package action

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/kv"
)

type itemStore interface {
	Put(ctx context.Context, item kv.Item) error
	Update(ctx context.Context, u kv.Update) (kv.Item, error)
	Query(ctx context.Context, q kv.Query) ([]kv.Item, error)
}

// bookCatalog is the library: Resolve looks an ISBN up and upserts its
// record, Get reads a stored record.
type bookCatalog interface {
	Resolve(ctx context.Context, isbn string) (domain.Book, error)
	Get(ctx context.Context, isbn string) (domain.Book, error)
}

// Listing bounds.
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Config carries the explicit collaborators of the service.
type Config struct {
	// Owner is the partition key of the single owner.
	Owner string
	Clock domain.Clock
	// NewID generates action ids. Defaults to dashless random UUIDs.
	NewID func() string
}

// Service ingests actions and lists them.
type Service struct {
	store itemStore
	books bookCatalog
	owner string
	clock domain.Clock
	newID func() string
	log   *slog.Logger
}

// NewService creates a new action service.
func NewService(log *slog.Logger, store itemStore, books bookCatalog, cfg Config) *Service {
	if cfg.Clock == nil {
		cfg.Clock = domain.SystemClock{}
	}
	if cfg.NewID == nil {
		cfg.NewID = newID
	}
	return &Service{
		store: store,
		books: books,
		owner: cfg.Owner,
		clock: cfg.Clock,
		newID: cfg.NewID,
		log:   log.With("service", "action"),
	}
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
