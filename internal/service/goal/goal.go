package goal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/kv"
	"github.com/math-s/yeargoals/internal/record"
)

// Create validates and stores a new goal. A structured goal without a title
// takes its kind's label as title.
func (s *Service) Create(ctx context.Context, input CreateGoalInput) (domain.Goal, error) {
	g, err := input.Validate()
	if err != nil {
		return domain.Goal{}, err
	}

	now := domain.FormatTimestamp(s.clock.Now())
	g.ID = s.newID()
	g.CreatedAt = now
	g.UpdatedAt = now

	if err := s.store.Put(ctx, record.EncodeGoal(s.owner, g)); err != nil {
		return domain.Goal{}, fmt.Errorf("create goal: %w", err)
	}

	s.log.InfoContext(ctx, "goal created",
		slog.String("goal_id", g.ID),
		slog.Int("year", g.Year),
	)
	return g, nil
}

// Patch applies a validated partial update to an existing goal and returns
// the updated goal. A missing goal yields domain.ErrNotFound. Setting a kind
// without a target is accepted only when the goal already has a target.
func (s *Service) Patch(ctx context.Context, input PatchGoalInput) (domain.Goal, error) {
	changes, err := input.Validate()
	if err != nil {
		return domain.Goal{}, err
	}

	if changes.Kind != nil && changes.Target == nil {
		if err := s.requireStoredTarget(ctx, input); err != nil {
			return domain.Goal{}, err
		}
	}

	now := domain.FormatTimestamp(s.clock.Now())
	it, err := s.store.Update(ctx, record.GoalPatch(s.owner, input.Year, input.GoalID, changes, now))
	if err != nil {
		return domain.Goal{}, fmt.Errorf("patch goal %s: %w", input.GoalID, err)
	}

	g, err := record.DecodeGoal(it)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("patch goal %s: %w", input.GoalID, err)
	}
	return g, nil
}

func (s *Service) requireStoredTarget(ctx context.Context, input PatchGoalInput) error {
	it, err := s.store.Get(ctx, record.GoalKey(s.owner, input.Year, input.GoalID))
	if err != nil {
		return fmt.Errorf("patch goal %s: %w", input.GoalID, err)
	}

	g, err := record.DecodeGoal(it)
	if err != nil {
		return fmt.Errorf("patch goal %s: %w", input.GoalID, err)
	}
	if g.Target == nil {
		return domain.NewValidationError("target", msgKindTarget)
	}
	return nil
}

// Delete removes a goal. Deleting a goal that does not exist succeeds.
func (s *Service) Delete(ctx context.Context, input DeleteGoalInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, record.GoalKey(s.owner, input.Year, input.GoalID)); err != nil {
		return fmt.Errorf("delete goal %s: %w", input.GoalID, err)
	}

	s.log.InfoContext(ctx, "goal deleted", slog.String("goal_id", input.GoalID), slog.Int("year", input.Year))
	return nil
}

// List returns a year's goals: open goals first, then done ones, each group
// in creation order.
func (s *Service) List(ctx context.Context, year int) ([]domain.Goal, error) {
	if !domain.ValidYear(year) {
		return nil, domain.NewValidationError("year", "year is required (e.g. ?year=2026)")
	}

	items, err := s.store.Query(ctx, kv.Query{
		PK:     s.owner,
		Prefix: domain.GoalPrefix(year),
		Order:  kv.Ascending,
	})
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	goals := make([]domain.Goal, 0, len(items))
	for _, it := range items {
		g, err := record.DecodeGoal(it)
		if err != nil {
			if errors.Is(err, record.ErrMalformed) {
				s.log.WarnContext(ctx, "skip malformed goal", slog.String("sk", it.SK), slog.String("error", err.Error()))
				continue
			}
			return nil, err
		}
		goals = append(goals, g)
	}

	sort.SliceStable(goals, func(i, j int) bool {
		if goals[i].IsDone() != goals[j].IsDone() {
			return !goals[i].IsDone()
		}
		return goals[i].CreatedAt < goals[j].CreatedAt
	})
	return goals, nil
}
