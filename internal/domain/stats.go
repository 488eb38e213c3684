package domain

// Stats is the per-year aggregate row maintained by action ingestion.
type Stats struct {
	Year            int
	BJJCount        int64
	PilatesCount    int64
	SavedCentsTotal int64
	ReadBooksTotal  int64
	ReadCount       int64
	UpdatedAt       *string
}

// EmptyStats is the all-zero projection for a year without activity.
func EmptyStats(year int) Stats {
	return Stats{Year: year}
}
