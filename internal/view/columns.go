// Package view derives what to render from the fetched stats rows and the user's
// controls: filter, sort, pagination, display formatting and CSV export.
package view

import "strings"

// Kind selects how a column's values are compared, formatted and exported.
type Kind string

const (
	KindText    Kind = "text"
	KindNumber  Kind = "number"
	KindPercent Kind = "percent"
	KindDate    Kind = "date"
)

// Align is a rendering hint.
type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// Column describes one field of a stats row. Key is the JSON key, Label the header shown
// on screen and in CSV, ID a stable snake_case name usable in order_by strings.
type Column struct {
	ID    string
	Key   string
	Label string
	Kind  Kind
	Align Align
}

// Columns is the fixed, ordered catalog shared by rendering, sorting and export.
var Columns = []Column{
	{ID: "no", Key: "No.", Label: "No.", Kind: KindNumber, Align: AlignRight},
	{ID: "country_name", Key: "Country Name", Label: "Country Name", Kind: KindText, Align: AlignLeft},
	{ID: "population", Key: "Population", Label: "Population", Kind: KindNumber, Align: AlignRight},
	{ID: "one_pct_population", Key: "1% Population", Label: "1% Population", Kind: KindNumber, Align: AlignRight},
	{ID: "est_count", Key: "Est. Count", Label: "Est. Count", Kind: KindNumber, Align: AlignRight},
	{ID: "pct_of_population", Key: "% of Population", Label: "% of Population", Kind: KindPercent, Align: AlignRight},
	{ID: "source", Key: "Source", Label: "Source", Kind: KindText, Align: AlignLeft},
	{ID: "conservative_est", Key: "Conservative Est.", Label: "Conservative Est.", Kind: KindNumber, Align: AlignRight},
	{ID: "mid_est", Key: "Mid Est.", Label: "Mid Est.", Kind: KindNumber, Align: AlignRight},
	{ID: "high_est", Key: "High Est.", Label: "High Est.", Kind: KindNumber, Align: AlignRight},
	{ID: "pct_conservative", Key: "% Conservative", Label: "% Conservative", Kind: KindPercent, Align: AlignRight},
	{ID: "pct_mid", Key: "% Mid", Label: "% Mid", Kind: KindPercent, Align: AlignRight},
	{ID: "pct_high", Key: "% High", Label: "% High", Kind: KindPercent, Align: AlignRight},
	{ID: "es_created", Key: "es_created", Label: "ES Created", Kind: KindDate, Align: AlignLeft},
	{ID: "pg_created", Key: "pg_created", Label: "PG Created", Kind: KindDate, Align: AlignLeft},
}

// DefaultSortKey is the column used when no sort, or an unknown one, is requested.
const DefaultSortKey = "Country Name"

// ColumnByKey looks a column up by its JSON key.
func ColumnByKey(key string) (Column, bool) {
	for _, c := range Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnByID looks a column up by its snake_case id.
func ColumnByID(id string) (Column, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, c := range Columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// LookupColumn accepts a key, id or label.
func LookupColumn(name string) (Column, bool) {
	if c, ok := ColumnByKey(name); ok {
		return c, true
	}
	if c, ok := ColumnByID(name); ok {
		return c, true
	}
	for _, c := range Columns {
		if strings.EqualFold(c.Label, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return Column{}, false
}

// resolveColumn is LookupColumn with the Country Name fallback.
func resolveColumn(name string) Column {
	if c, ok := LookupColumn(name); ok {
		return c
	}
	c, _ := ColumnByKey(DefaultSortKey)
	return c
}

// IDs returns the column ids in catalog order.
func IDs() []string {
	ids := make([]string, len(Columns))
	for i, c := range Columns {
		ids[i] = c.ID
	}
	return ids
}

// Labels returns the column labels in catalog order.
func Labels() []string {
	labels := make([]string, len(Columns))
	for i, c := range Columns {
		labels[i] = c.Label
	}
	return labels
}
