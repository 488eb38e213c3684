package domain

// Action is one immutable recorded event. Kind-specific fields are nil when
// they do not apply to the kind.
type Action struct {
	ID        string
	Year      int
	Timestamp string
	Kind      ActionKind
	CreatedAt string
	Note      *string

	// SAVE
	AmountCents *int64

	// READ
	ISBN           *string
	BookRef        *string
	BookTitle      *string
	BookAuthors    []string
	GoogleVolumeID *string

	// Legacy READ shape: page count plus free-text book name, no ISBN.
	Pages    *int64
	BookText *string
}

// NeedsBookBackfill reports whether a READ action lacks the denormalized
// display fields and has an ISBN to look them up by.
func (a Action) NeedsBookBackfill() bool {
	if a.Kind != ActionKindRead || a.ISBN == nil || *a.ISBN == "" {
		return false
	}
	return a.BookTitle == nil || len(a.BookAuthors) == 0
}

// StatsDelta is the contribution of one action to its year's aggregate row.
type StatsDelta struct {
	BJJCount        int64
	PilatesCount    int64
	SavedCentsTotal int64
	ReadBooksTotal  int64
	ReadCount       int64
}

// DeltaFor returns the aggregate contribution of an action of kind k.
// amountCents is only consulted for SAVE.
func DeltaFor(k ActionKind, amountCents int64) StatsDelta {
	switch k {
	case ActionKindBJJ:
		return StatsDelta{BJJCount: 1}
	case ActionKindPilates:
		return StatsDelta{PilatesCount: 1}
	case ActionKindSave:
		return StatsDelta{SavedCentsTotal: amountCents}
	case ActionKindRead:
		return StatsDelta{ReadBooksTotal: 1, ReadCount: 1}
	}
	return StatsDelta{}
}
