package domain

import "strings"

// ActionKind identifies the tracked activity an Action records.
type ActionKind string

const (
	ActionKindBJJ     ActionKind = "BJJ"
	ActionKindPilates ActionKind = "PILATES"
	ActionKindSave    ActionKind = "SAVE"
	ActionKindRead    ActionKind = "READ"
)

func (k ActionKind) String() string { return string(k) }

func (k ActionKind) IsValid() bool {
	switch k {
	case ActionKindBJJ, ActionKindPilates, ActionKindSave, ActionKindRead:
		return true
	}
	return false
}

// ParseActionKind matches free-form input against the closed set after
// trimming and upper-casing. Empty or unknown input is not recognized.
func ParseActionKind(raw string) (ActionKind, bool) {
	k := ActionKind(strings.ToUpper(strings.TrimSpace(raw)))
	if !k.IsValid() {
		return "", false
	}
	return k, true
}

// GoalStatus is the progress state of a Goal.
type GoalStatus string

const (
	GoalStatusTodo  GoalStatus = "todo"
	GoalStatusDoing GoalStatus = "doing"
	GoalStatusDone  GoalStatus = "done"
)

func (s GoalStatus) String() string { return string(s) }

func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalStatusTodo, GoalStatusDoing, GoalStatusDone:
		return true
	}
	return false
}

// ParseGoalStatus trims and lower-cases before matching.
func ParseGoalStatus(raw string) (GoalStatus, bool) {
	s := GoalStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", false
	}
	return s, true
}

// GoalKind is the measurable target type of a structured Goal.
type GoalKind string

const (
	GoalKindBJJSessions     GoalKind = "BJJ_SESSIONS"
	GoalKindPilatesSessions GoalKind = "PILATES_SESSIONS"
	GoalKindMoneySavedCents GoalKind = "MONEY_SAVED_CENTS"
	GoalKindBooksFinished   GoalKind = "BOOKS_FINISHED"
)

func (k GoalKind) String() string { return string(k) }

func (k GoalKind) IsValid() bool {
	switch k {
	case GoalKindBJJSessions, GoalKindPilatesSessions, GoalKindMoneySavedCents, GoalKindBooksFinished:
		return true
	}
	return false
}

// Label is the display title used when a structured goal is created without one.
func (k GoalKind) Label() string { return string(k) }

// ParseGoalKind trims and upper-cases before matching.
func ParseGoalKind(raw string) (GoalKind, bool) {
	k := GoalKind(strings.ToUpper(strings.TrimSpace(raw)))
	if !k.IsValid() {
		return "", false
	}
	return k, true
}
