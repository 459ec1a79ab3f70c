package view

import (
	"encoding/json"
	"strings"
	"testing"
)

// decodeRows decodes a JSON array the way the client does.
func decodeRows(t *testing.T, text string) []Row {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var rows []Row
	if err := dec.Decode(&rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	return rows
}

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = Raw(r[NameKey])
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func namedRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{NameKey: "Country " + strings.Repeat("x", i%7), "No.": json.Number(jsonInt(i + 1))}
	}
	return rows
}

func jsonInt(i int) string {
	b, _ := json.Marshal(i)
	return string(b)
}
