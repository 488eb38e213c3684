package domain

import "time"

// Clock supplies the current instant. Services take one so tests can pin time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FormatTimestamp renders t as ISO-8601 in UTC at seconds precision
// ("2026-03-01T07:30:00Z"). Zero-padded fixed width keeps string order
// identical to time order.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

// MinYear and MaxYear bound every year-scoped request.
const (
	MinYear = 1970
	MaxYear = 3000
)

// ValidYear reports whether y is inside [MinYear, MaxYear].
func ValidYear(y int) bool {
	return y >= MinYear && y <= MaxYear
}
