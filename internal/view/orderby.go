package view

import (
	"fmt"
	"strings"

	"go.einride.tech/aip/ordering"
)

// ParseOrderBy reads an AIP-132 order_by string such as "population desc". Only the first
// field is used. An empty string yields DefaultSort.
func ParseOrderBy(s string) (SortSpec, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultSort, nil
	}
	var orderBy ordering.OrderBy
	if err := orderBy.UnmarshalString(strings.ToLower(s)); err != nil {
		return SortSpec{}, fmt.Errorf("parse order_by %q: %w", s, err)
	}
	if err := orderBy.ValidateForPaths(IDs()...); err != nil {
		return SortSpec{}, fmt.Errorf("order_by %q: %w", s, err)
	}
	if len(orderBy.Fields) == 0 {
		return DefaultSort, nil
	}

	field := orderBy.Fields[0]
	col, _ := ColumnByID(field.Path)
	spec := SortSpec{Key: col.Key, Dir: Asc}
	if field.Desc {
		spec.Dir = Desc
	}
	return spec, nil
}

// OrderBy renders spec back into an order_by string.
func (s SortSpec) OrderBy() string {
	col := resolveColumn(s.Key)
	if s.Dir == Desc {
		return col.ID + " desc"
	}
	return col.ID
}
