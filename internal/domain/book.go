package domain

import "encoding/json"

// Book is a library record, one per canonical ISBN.
type Book struct {
	ISBN            string
	Title           *string
	Authors         []string
	PublishedDate   *string
	PageCount       *int64
	Categories      []string
	Thumbnail       *string
	GoogleVolumeID  *string
	VolumeInfo      json.RawMessage
	InLibrary       bool
	CreatedAt       string
	UpdatedAt       string
	GoogleFetchedAt *string
}

// SK returns the book's sort key.
func (b Book) SK() string { return BookSK(b.ISBN) }
