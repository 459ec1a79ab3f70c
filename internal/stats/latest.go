package stats

import "time"

// Keyed is a child record ordered by creation time, then by its local id.
type Keyed interface {
	Key() (time.Time, int64)
}

// Newer reports whether a is later than b: greater timestamp wins, equal timestamps are
// broken by the greater id.
func Newer[T Keyed](a, b T) bool {
	at, aid := a.Key()
	bt, bid := b.Key()
	if !at.Equal(bt) {
		return at.After(bt)
	}
	return aid > bid
}

// Latest returns the latest record of records and false when records is empty.
func Latest[T Keyed](records []T) (T, bool) {
	var best T
	if len(records) == 0 {
		return best, false
	}
	best = records[0]
	for _, rec := range records[1:] {
		if Newer(rec, best) {
			best = rec
		}
	}
	return best, true
}

// LatestByParent reduces records grouped by parent to the latest record of each group.
func LatestByParent[T Keyed](records []T, parent func(T) int64) map[int64]T {
	out := make(map[int64]T)
	for _, rec := range records {
		id := parent(rec)
		if cur, ok := out[id]; ok && !Newer(rec, cur) {
			continue
		}
		out[id] = rec
	}
	return out
}
