package view

import (
	"strings"

	"golang.org/x/text/cases"
)

// NameKey is the field the search box matches against.
const NameKey = "Country Name"

// Filter keeps rows whose country name contains query, ignoring case. A blank query
// returns rows unchanged.
func Filter(rows []Row, query string) []Row {
	query = strings.TrimSpace(query)
	if query == "" {
		return rows
	}
	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		name, _ := r.Value(NameKey)
		if strings.Contains(fold.String(Raw(name)), needle) {
			out = append(out, r)
		}
	}
	return out
}
