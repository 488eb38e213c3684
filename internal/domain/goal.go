package domain

// Goal is a mutable year-scoped target. Kind and Target are set together for
// structured goals; legacy free-text goals carry only a title.
type Goal struct {
	ID        string
	Year      int
	Title     string
	Kind      *GoalKind
	Status    GoalStatus
	Target    *int64
	CreatedAt string
	UpdatedAt string
}

// IsDone reports whether the goal is completed.
func (g Goal) IsDone() bool { return g.Status == GoalStatusDone }

// GoalChanges is a validated partial update. Nil fields are left untouched.
type GoalChanges struct {
	Title  *string
	Kind   *GoalKind
	Status *GoalStatus
	Target *int64
}

// IsEmpty reports whether no field is set.
func (c GoalChanges) IsEmpty() bool {
	return c.Title == nil && c.Kind == nil && c.Status == nil && c.Target == nil
}
