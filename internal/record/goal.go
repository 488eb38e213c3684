package record

import (
	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/kv"
)

const (
	attrTitle  = "title"
	attrKind   = "kind"
	attrStatus = "status"
	attrTarget = "target"
)

// GoalKey returns the key of a goal.
func GoalKey(owner string, year int, id string) kv.Key {
	return kv.Key{PK: owner, SK: domain.GoalSK(year, id)}
}

// EncodeGoal builds the stored item of a new goal.
func EncodeGoal(owner string, g domain.Goal) kv.Item {
	attrs := map[string]any{
		attrYear:      int64(g.Year),
		attrTitle:     g.Title,
		attrStatus:    g.Status.String(),
		attrCreatedAt: g.CreatedAt,
		attrUpdatedAt: g.UpdatedAt,
	}
	if g.Kind != nil {
		attrs[attrKind] = g.Kind.String()
	}
	setIfNotNil(attrs, attrTarget, g.Target)

	return kv.Item{Key: GoalKey(owner, g.Year, g.ID), Attrs: attrs}
}

// DecodeGoal reads a goal item. A missing status reads as todo and a
// missing title as empty, matching goals written before those fields were
// required.
func DecodeGoal(it kv.Item) (domain.Goal, error) {
	year, err := requireYear(it)
	if err != nil {
		return domain.Goal{}, err
	}

	g := domain.Goal{
		ID:     domain.GoalIDFromSK(it.SK),
		Year:   year,
		Status: domain.GoalStatusTodo,
		Target: it.IntPtr(attrTarget),
	}
	g.Title, _ = it.String(attrTitle)
	g.CreatedAt, _ = it.String(attrCreatedAt)
	g.UpdatedAt, _ = it.String(attrUpdatedAt)

	if raw, ok := it.String(attrStatus); ok {
		g.Status = domain.GoalStatus(raw)
	}
	if raw, ok := it.String(attrKind); ok && raw != "" {
		k := domain.GoalKind(raw)
		g.Kind = &k
	}
	return g, nil
}

// GoalPatch builds the update applying changes to an existing goal.
func GoalPatch(owner string, year int, id string, c domain.GoalChanges, now string) kv.Update {
	set := map[string]any{attrUpdatedAt: now}
	setIfNotNil(set, attrTitle, c.Title)
	setIfNotNil(set, attrTarget, c.Target)
	if c.Kind != nil {
		set[attrKind] = c.Kind.String()
	}
	if c.Status != nil {
		set[attrStatus] = c.Status.String()
	}
	return kv.Update{
		Key:       GoalKey(owner, year, id),
		Set:       set,
		MustExist: true,
	}
}
