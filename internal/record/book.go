package record

import (
	"encoding/json"

	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/kv"
	"github.com/math-s/yeargoals/internal/provider"
)

const (
	attrAuthors         = "authors"
	attrPublishedDate   = "publishedDate"
	attrPageCount       = "pageCount"
	attrCategories      = "categories"
	attrThumbnail       = "thumbnail"
	attrInLibrary       = "inLibrary"
	attrGoogleFetchedAt = "googleFetchedAt"
	attrGoogleVolume    = "googleVolumeInfo"
)

// BookKey returns the key of a library book.
func BookKey(owner, isbn string) kv.Key {
	return kv.Key{PK: owner, SK: domain.BookSK(isbn)}
}

// BookUpsert builds the idempotent library upsert for a resolved ISBN.
// createdAt is only written on first insert; every metadata field the
// catalog returned is overwritten. markInLibrary additionally flags the book
// as explicitly added by the owner.
func BookUpsert(owner, isbn string, r provider.BookResult, now string, markInLibrary bool) kv.Update {
	set := map[string]any{
		attrUpdatedAt:       now,
		attrISBN:            isbn,
		attrAuthors:         stringsAttr(nonNil(r.Authors)),
		attrGoogleFetchedAt: now,
	}
	setIfNotNil(set, attrTitle, r.Title)
	setIfNotNil(set, attrPublishedDate, r.PublishedDate)
	setIfNotNil(set, attrPageCount, r.PageCount)
	setIfNotNil(set, attrThumbnail, r.Thumbnail)
	setIfNotNil(set, attrGoogleVolumeID, r.VolumeID)
	if r.Categories != nil {
		set[attrCategories] = stringsAttr(r.Categories)
	}
	if info, err := kv.DecodeAttrs(r.VolumeInfo); err == nil && len(info) > 0 {
		set[attrGoogleVolume] = info
	}
	if markInLibrary {
		set[attrInLibrary] = true
	}

	return kv.Update{
		Key:         BookKey(owner, isbn),
		Set:         set,
		SetIfAbsent: map[string]any{attrCreatedAt: now},
	}
}

// DecodeBook reads a library item.
func DecodeBook(it kv.Item) (domain.Book, error) {
	isbn, ok := it.String(attrISBN)
	if !ok || isbn == "" {
		return domain.Book{}, malformed(it, attrISBN)
	}

	b := domain.Book{
		ISBN:            isbn,
		Title:           it.StringPtr(attrTitle),
		Authors:         nonNil(it.Strings(attrAuthors)),
		PublishedDate:   it.StringPtr(attrPublishedDate),
		PageCount:       it.IntPtr(attrPageCount),
		Categories:      nonNil(it.Strings(attrCategories)),
		Thumbnail:       it.StringPtr(attrThumbnail),
		GoogleVolumeID:  it.StringPtr(attrGoogleVolumeID),
		InLibrary:       it.Bool(attrInLibrary),
		GoogleFetchedAt: it.StringPtr(attrGoogleFetchedAt),
	}
	b.CreatedAt, _ = it.String(attrCreatedAt)
	b.UpdatedAt, _ = it.String(attrUpdatedAt)

	if info, ok := it.Attrs[attrGoogleVolume].(map[string]any); ok {
		if raw, err := json.Marshal(info); err == nil {
			b.VolumeInfo = raw
		}
	}
	return b, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
