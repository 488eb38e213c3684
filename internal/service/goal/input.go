package goal

import (
	"strconv"
	"strings"

	"github.com/math-s/yeargoals/internal/domain"
)

const (
	msgYear       = "year is required"
	msgStatus     = "status must be todo|doing|done"
	msgKind       = "kind must be BJJ_SESSIONS|PILATES_SESSIONS|MONEY_SAVED_CENTS|BOOKS_FINISHED"
	msgTarget     = "target must be a positive integer"
	msgKindTarget = "target is required when setting kind"
	msgGoalID     = "goalId is required"
)

// CreateGoalInput holds the parameters for creating a goal. A structured
// goal names a Kind and a Target; a legacy goal only a Title.
type CreateGoalInput struct {
	Year   int
	Title  string
	Kind   *string // nil = absent
	Status *string // nil = todo
	Target *int64  // nil when absent or not an integer
}

// Validate checks all fields and returns the goal to store, without id and
// timestamps.
func (i CreateGoalInput) Validate() (domain.Goal, error) {
	var errs []domain.FieldError

	g := domain.Goal{
		Year:   i.Year,
		Title:  strings.TrimSpace(i.Title),
		Status: domain.GoalStatusTodo,
	}

	if !domain.ValidYear(i.Year) {
		errs = append(errs, domain.FieldError{Field: "year", Message: msgYear})
	}

	if i.Status != nil {
		s, ok := domain.ParseGoalStatus(*i.Status)
		if !ok {
			errs = append(errs, domain.FieldError{Field: "status", Message: msgStatus})
		}
		g.Status = s
	}

	if i.Kind != nil && strings.TrimSpace(*i.Kind) != "" {
		k, ok := domain.ParseGoalKind(*i.Kind)
		if !ok {
			errs = append(errs, domain.FieldError{Field: "kind", Message: msgKind})
		} else {
			g.Kind = &k
			if g.Title == "" {
				g.Title = k.Label()
			}
		}
	}

	switch {
	case g.Kind != nil:
		if i.Target == nil || *i.Target <= 0 {
			errs = append(errs, domain.FieldError{Field: "target", Message: msgTarget})
		}
	case i.Kind == nil || strings.TrimSpace(*i.Kind) == "":
		if g.Title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "title is required"})
		}
		if i.Target != nil && *i.Target <= 0 {
			errs = append(errs, domain.FieldError{Field: "target", Message: msgTarget})
		}
	}
	g.Target = i.Target

	if len(errs) > 0 {
		return domain.Goal{}, &domain.ValidationError{Errors: errs}
	}
	return g, nil
}

// PatchGoalInput holds a partial update. Fields is the raw field map; only
// title, kind, status and target are considered, other keys are ignored.
type PatchGoalInput struct {
	Year   int
	GoalID string
	Fields map[string]any
}

// Validate checks every recognized field and returns the changes.
func (i PatchGoalInput) Validate() (domain.GoalChanges, error) {
	var (
		c    domain.GoalChanges
		errs []domain.FieldError
	)

	if strings.TrimSpace(i.GoalID) == "" {
		errs = append(errs, domain.FieldError{Field: "goalId", Message: msgGoalID})
	}
	if !domain.ValidYear(i.Year) {
		errs = append(errs, domain.FieldError{Field: "year", Message: msgYear})
	}

	if raw, ok := i.Fields["title"]; ok {
		title := strings.TrimSpace(stringValue(raw))
		if title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "title cannot be empty"})
		}
		c.Title = &title
	}
	if raw, ok := i.Fields["kind"]; ok {
		k, ok := domain.ParseGoalKind(stringValue(raw))
		if !ok {
			errs = append(errs, domain.FieldError{Field: "kind", Message: msgKind})
		}
		c.Kind = &k
	}
	if raw, ok := i.Fields["status"]; ok {
		s, ok := domain.ParseGoalStatus(stringValue(raw))
		if !ok {
			errs = append(errs, domain.FieldError{Field: "status", Message: msgStatus})
		}
		c.Status = &s
	}
	if raw, ok := i.Fields["target"]; ok {
		n, ok := intValue(raw)
		if !ok || n <= 0 {
			errs = append(errs, domain.FieldError{Field: "target", Message: msgTarget})
		}
		c.Target = &n
	}

	if len(errs) == 0 && c.IsEmpty() {
		errs = append(errs, domain.FieldError{Field: "patch", Message: "no valid fields to patch"})
	}
	if len(errs) > 0 {
		return domain.GoalChanges{}, &domain.ValidationError{Errors: errs}
	}
	return c, nil
}

// DeleteGoalInput identifies a goal to delete.
type DeleteGoalInput struct {
	Year   int
	GoalID string
}

// Validate checks all fields and collects all errors.
func (i DeleteGoalInput) Validate() error {
	var errs []domain.FieldError
	if !domain.ValidYear(i.Year) {
		errs = append(errs, domain.FieldError{Field: "year", Message: "year is required (e.g. ?year=2026)"})
	}
	if strings.TrimSpace(i.GoalID) == "" {
		errs = append(errs, domain.FieldError{Field: "goalId", Message: msgGoalID})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// stringValue renders a scalar the way it was sent; nil becomes "".
func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// intValue accepts integers only. Floats, booleans and strings are
// rejected even when they look integral.
func intValue(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}
