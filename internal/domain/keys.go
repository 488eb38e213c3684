package domain

import (
	"fmt"
	"strings"
)

// Sort-key prefixes. Every entity of one owner lives in the same partition;
// the prefix selects the entity type and, where present, the year.
const (
	goalPrefix   = "GOAL#"
	actionPrefix = "ACTION#"
	statsPrefix  = "STATS#"
	bookPrefix   = "BOOK#"
)

// OwnerKey returns the partition key for an owner label.
func OwnerKey(label string) string {
	return "USER#" + label
}

// GoalSK returns the sort key of a goal.
func GoalSK(year int, goalID string) string {
	return fmt.Sprintf("%s%d#%s", goalPrefix, year, goalID)
}

// GoalPrefix selects all goals of a year.
func GoalPrefix(year int) string {
	return fmt.Sprintf("%s%d#", goalPrefix, year)
}

// ActionSK returns the sort key of an action. The timestamp sits between the
// year and the id so that, for normalized UTC timestamps, key order within a
// year is chronological and same-second events stay unique.
func ActionSK(year int, ts, actionID string) string {
	return fmt.Sprintf("%s%d#%s#%s", actionPrefix, year, ts, actionID)
}

// ActionPrefix selects all actions of a year.
func ActionPrefix(year int) string {
	return fmt.Sprintf("%s%d#", actionPrefix, year)
}

// StatsSK returns the sort key of the aggregate row of a year.
func StatsSK(year int) string {
	return fmt.Sprintf("%s%d", statsPrefix, year)
}

// BookSK returns the sort key of a library book. Books are not year-scoped.
func BookSK(isbn string) string {
	return bookPrefix + isbn
}

// BookPrefix selects every library book.
func BookPrefix() string {
	return bookPrefix
}

// GoalIDFromSK extracts the goal id from "GOAL#<year>#<id>".
func GoalIDFromSK(sk string) string {
	parts := strings.SplitN(sk, "#", 3)
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

// ActionIDFromSK extracts the trailing id segment of an action sort key.
// The timestamp may itself contain '#' only if the caller supplied one, so
// the id is taken after the last separator.
func ActionIDFromSK(sk string) string {
	if !strings.HasPrefix(sk, actionPrefix) {
		return ""
	}
	i := strings.LastIndexByte(sk, '#')
	if i < 0 {
		return ""
	}
	return sk[i+1:]
}
