package goal

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/kv"
)

type itemStore interface {
	Get(ctx context.Context, key kv.Key) (kv.Item, error)
	Put(ctx context.Context, item kv.Item) error
	Update(ctx context.Context, u kv.Update) (kv.Item, error)
	Delete(ctx context.Context, key kv.Key) error
	Query(ctx context.Context, q kv.Query) ([]kv.Item, error)
}

// Service provides goal management operations.
type Service struct {
	store itemStore
	owner string
	clock domain.Clock
	newID func() string
	log   *slog.Logger
}

// NewService creates a new goal service.
func NewService(log *slog.Logger, store itemStore, owner string, clock domain.Clock) *Service {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &Service{
		store: store,
		owner: owner,
		clock: clock,
		newID: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
		log:   log.With("service", "goal"),
	}
}
