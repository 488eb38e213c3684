package record

import (
	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/kv"
)

const (
	attrTS             = "ts"
	attrType           = "type"
	attrNote           = "note"
	attrAmountCents    = "amountCents"
	attrISBN           = "isbn"
	attrBookRef        = "bookRef"
	attrBookTitle      = "bookTitle"
	attrBookAuthors    = "bookAuthors"
	attrGoogleVolumeID = "googleVolumeId"
	attrPages          = "pages"
	attrBook           = "book"
)

// EncodeAction builds the stored item of a new action.
func EncodeAction(owner string, a domain.Action) kv.Item {
	attrs := map[string]any{
		attrYear:      int64(a.Year),
		attrTS:        a.Timestamp,
		attrType:      a.Kind.String(),
		attrCreatedAt: a.CreatedAt,
	}
	setIfNotNil(attrs, attrNote, a.Note)
	setIfNotNil(attrs, attrAmountCents, a.AmountCents)
	setIfNotNil(attrs, attrISBN, a.ISBN)
	setIfNotNil(attrs, attrBookRef, a.BookRef)
	setIfNotNil(attrs, attrBookTitle, a.BookTitle)
	setIfNotNil(attrs, attrGoogleVolumeID, a.GoogleVolumeID)
	setIfNotNil(attrs, attrPages, a.Pages)
	setIfNotNil(attrs, attrBook, a.BookText)
	if a.Kind == domain.ActionKindRead && a.ISBN != nil {
		attrs[attrBookAuthors] = stringsAttr(a.BookAuthors)
	}

	return kv.Item{
		Key:   kv.Key{PK: owner, SK: domain.ActionSK(a.Year, a.Timestamp, a.ID)},
		Attrs: attrs,
	}
}

// DecodeAction reads an action item. Both the ISBN-based and the legacy
// pages-based READ shapes are accepted; the kind is kept as stored.
func DecodeAction(it kv.Item) (domain.Action, error) {
	year, err := requireYear(it)
	if err != nil {
		return domain.Action{}, err
	}
	ts, ok := it.String(attrTS)
	if !ok {
		return domain.Action{}, malformed(it, attrTS)
	}
	kind, ok := it.String(attrType)
	if !ok {
		return domain.Action{}, malformed(it, attrType)
	}
	createdAt, _ := it.String(attrCreatedAt)

	return domain.Action{
		ID:             domain.ActionIDFromSK(it.SK),
		Year:           year,
		Timestamp:      ts,
		Kind:           domain.ActionKind(kind),
		CreatedAt:      createdAt,
		Note:           it.StringPtr(attrNote),
		AmountCents:    it.IntPtr(attrAmountCents),
		ISBN:           it.StringPtr(attrISBN),
		BookRef:        it.StringPtr(attrBookRef),
		BookTitle:      it.StringPtr(attrBookTitle),
		BookAuthors:    it.Strings(attrBookAuthors),
		GoogleVolumeID: it.StringPtr(attrGoogleVolumeID),
		Pages:          it.IntPtr(attrPages),
		BookText:       it.StringPtr(attrBook),
	}, nil
}
