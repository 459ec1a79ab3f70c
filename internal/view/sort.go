package view

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts asc or desc in any case.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", s)
	}
}

// SortSpec is a column key plus direction.
type SortSpec struct {
	Key string
	Dir Direction
}

// DefaultSort orders by country name ascending.
var DefaultSort = SortSpec{Key: DefaultSortKey, Dir: Asc}

// Sort returns a sorted copy of rows. Absent values sort last under Asc; Desc is the
// Asc result reversed, so absents come first. Unknown keys sort by country name.
func Sort(rows []Row, key string, dir Direction) []Row {
	col := resolveColumn(key)
	cmp := comparator(col)

	out := slices.Clone(rows)
	if out == nil {
		out = []Row{}
	}
	slices.SortStableFunc(out, func(a, b Row) int {
		av, _ := a.Value(col.Key)
		bv, _ := b.Value(col.Key)
		return cmp(av, bv)
	})
	if dir == Desc {
		slices.Reverse(out)
	}
	return out
}

// comparator builds the kind-aware comparison for col. A collator is not safe for
// concurrent use, so one is made per call.
func comparator(col Column) func(a, b any) int {
	coll := collate.New(language.English)
	text := func(a, b any) int {
		return coll.CompareString(Raw(a), Raw(b))
	}

	return func(a, b any) int {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return 1
		case b == nil:
			return -1
		}

		switch col.Kind {
		case KindNumber, KindPercent:
			da, okA := Decimal(a)
			db, okB := Decimal(b)
			if !okA || !okB {
				return text(a, b)
			}
			if col.Kind == KindPercent {
				da, db = CanonicalPercent(da), CanonicalPercent(db)
			}
			return da.Cmp(db)
		case KindDate:
			ta, okA := ParseDate(a, nil)
			tb, okB := ParseDate(b, nil)
			if !okA || !okB {
				return text(a, b)
			}
			return ta.Compare(tb)
		default:
			return text(a, b)
		}
	}
}
