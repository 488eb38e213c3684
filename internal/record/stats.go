package record

import (
	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/kv"
)

const (
	attrBJJCount        = "bjjCount"
	attrPilatesCount    = "pilatesCount"
	attrSavedCentsTotal = "savedCentsTotal"
	attrReadBooksTotal  = "readBooksTotal"
	attrReadCount       = "readCount"
)

// StatsKey returns the key of a year's aggregate row.
func StatsKey(owner string, year int) kv.Key {
	return kv.Key{PK: owner, SK: domain.StatsSK(year)}
}

// StatsIncrement builds the atomic add-and-set applied after an action is
// stored. updatedAt is always set; only non-zero counters are added.
func StatsIncrement(owner string, year int, d domain.StatsDelta, now string) kv.Update {
	add := make(map[string]int64, 2)
	addNonZero(add, attrBJJCount, d.BJJCount)
	addNonZero(add, attrPilatesCount, d.PilatesCount)
	addNonZero(add, attrSavedCentsTotal, d.SavedCentsTotal)
	addNonZero(add, attrReadBooksTotal, d.ReadBooksTotal)
	addNonZero(add, attrReadCount, d.ReadCount)

	return kv.Update{
		Key: StatsKey(owner, year),
		Set: map[string]any{
			attrYear:      int64(year),
			attrUpdatedAt: now,
		},
		Add: add,
	}
}

func addNonZero(m map[string]int64, name string, v int64) {
	if v != 0 {
		m[name] = v
	}
}

// DecodeStats reads an aggregate row. Missing counters read as zero.
func DecodeStats(year int, it kv.Item) domain.Stats {
	s := domain.Stats{Year: year, UpdatedAt: it.StringPtr(attrUpdatedAt)}
	s.BJJCount, _ = it.Int(attrBJJCount)
	s.PilatesCount, _ = it.Int(attrPilatesCount)
	s.SavedCentsTotal, _ = it.Int(attrSavedCentsTotal)
	s.ReadBooksTotal, _ = it.Int(attrReadBooksTotal)
	s.ReadCount, _ = it.Int(attrReadCount)
	return s
}
