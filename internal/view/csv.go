package view

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVFileName is the default export file name.
const CSVFileName = "country_stats.csv"

// WriteCSV writes a header of column labels followed by one record per row. Records are
// separated by LF and the last one has no trailing newline.
func (f Formatter) WriteCSV(w io.Writer, rows []Row) error {
	var buf strings.Builder
	cw := csv.NewWriter(&buf)

	if err := cw.Write(Labels()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(Columns))
	for _, r := range rows {
		for i, col := range Columns {
			record[i] = f.CSVValue(r, col)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	_, err := io.WriteString(w, strings.TrimSuffix(buf.String(), "\n"))
	return err
}

// CSV is WriteCSV into a string.
func (f Formatter) CSV(rows []Row) string {
	var b strings.Builder
	// strings.Builder never fails.
	_ = f.WriteCSV(&b, rows)
	return b.String()
}
