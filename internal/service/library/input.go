package library

import "github.com/math-s/yeargoals/internal/domain"

// AddBookInput holds the parameters for adding a book to the library.
type AddBookInput struct {
	ISBN string
}

// Validate checks the ISBN and returns its canonical form.
func (i AddBookInput) Validate() (string, error) {
	isbn, ok := domain.NormalizeISBN(i.ISBN)
	if !ok {
		return "", domain.NewValidationError("isbn", "isbn is required (ISBN-10 or ISBN-13)")
	}
	return isbn, nil
}

// ListBooksInput holds the parameters for listing the library.
type ListBooksInput struct {
	Limit *int // nil = default
}

// EffectiveLimit applies the default and clamps into [1, MaxListLimit].
func (i ListBooksInput) EffectiveLimit() int {
	if i.Limit == nil {
		return DefaultListLimit
	}
	return min(max(*i.Limit, 1), MaxListLimit)
}
