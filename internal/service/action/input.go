package action

import (
	"strings"

	"github.com/math-s/yeargoals/internal/domain"
)

// IngestInput holds one action request. Fields arrive loosely typed; zero
// values mean absent.
type IngestInput struct {
	Year        int
	Type        string
	Timestamp   string
	AmountCents *int64 // nil when absent or not an integer
	ISBN        string
	Note        string
}

// validated is an IngestInput after validation.
type validated struct {
	year        int
	kind        domain.ActionKind
	amountCents int64
	isbn        string
}

// Validate checks all fields and collects all errors. Kind-specific checks
// run only when the kind itself is valid.
func (i IngestInput) Validate() (validated, error) {
	var (
		v    validated
		errs []domain.FieldError
	)

	if !domain.ValidYear(i.Year) {
		errs = append(errs, domain.FieldError{Field: "year", Message: "year is required"})
	}
	v.year = i.Year

	kind, ok := domain.ParseActionKind(i.Type)
	if !ok {
		errs = append(errs, domain.FieldError{Field: "type", Message: "type must be BJJ|PILATES|SAVE|READ"})
	}
	v.kind = kind

	switch kind {
	case domain.ActionKindSave:
		if i.AmountCents == nil {
			errs = append(errs, domain.FieldError{Field: "amountCents", Message: "SAVE requires integer amountCents"})
		} else {
			v.amountCents = *i.AmountCents
		}
	case domain.ActionKindRead:
		isbn, ok := domain.NormalizeISBN(i.ISBN)
		if !ok {
			errs = append(errs, domain.FieldError{Field: "isbn", Message: "READ requires valid isbn (ISBN-10 or ISBN-13)"})
		}
		v.isbn = isbn
	}

	if len(errs) > 0 {
		return validated{}, &domain.ValidationError{Errors: errs}
	}
	return v, nil
}

// ListInput holds the parameters for listing a year's actions.
type ListInput struct {
	Year  int
	Type  string // optional filter, matched case-insensitively
	Limit *int   // nil = default
}

// Validate checks the year.
func (i ListInput) Validate() error {
	if !domain.ValidYear(i.Year) {
		return domain.NewValidationError("year", "year is required (e.g. ?year=2026)")
	}
	return nil
}

// EffectiveLimit applies the default and clamps into [1, MaxListLimit].
func (i ListInput) EffectiveLimit() int {
	if i.Limit == nil {
		return DefaultListLimit
	}
	return min(max(*i.Limit, 1), MaxListLimit)
}

func (i ListInput) typeFilter() string {
	return strings.ToUpper(strings.TrimSpace(i.Type))
}
