package export

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"country-stats/internal/view"
)

// Record is one stats row in Parquet. Cells carry the CSV values; empty cells are null.
type Record struct {
	No               *string `parquet:"no,optional"`
	CountryName      *string `parquet:"country_name,optional"`
	Population       *string `parquet:"population,optional"`
	OnePctPopulation *string `parquet:"one_pct_population,optional"`
	EstCount         *string `parquet:"est_count,optional"`
	PctOfPopulation  *string `parquet:"pct_of_population,optional"`
	Source           *string `parquet:"source,optional"`
	ConservativeEst  *string `parquet:"conservative_est,optional"`
	MidEst           *string `parquet:"mid_est,optional"`
	HighEst          *string `parquet:"high_est,optional"`
	PctConservative  *string `parquet:"pct_conservative,optional"`
	PctMid           *string `parquet:"pct_mid,optional"`
	PctHigh          *string `parquet:"pct_high,optional"`
	ESCreated        *string `parquet:"es_created,optional"`
	PGCreated        *string `parquet:"pg_created,optional"`
}

// fields lists the Record fields in catalog order.
func (r *Record) fields() []**string {
	return []**string{
		&r.No, &r.CountryName, &r.Population, &r.OnePctPopulation,
		&r.EstCount, &r.PctOfPopulation, &r.Source,
		&r.ConservativeEst, &r.MidEst, &r.HighEst,
		&r.PctConservative, &r.PctMid, &r.PctHigh,
		&r.ESCreated, &r.PGCreated,
	}
}

// NewRecord projects row through the CSV formatting rules.
func NewRecord(f view.Formatter, row view.Row) Record {
	var rec Record
	for i, field := range rec.fields() {
		if v := f.CSVValue(row, view.Columns[i]); v != "" {
			*field = &v
		}
	}
	return rec
}

// Values returns the cells in catalog order, empty for null.
func (r Record) Values() []string {
	out := make([]string, 0, len(view.Columns))
	for _, field := range r.fields() {
		if *field == nil {
			out = append(out, "")
			continue
		}
		out = append(out, **field)
	}
	return out
}

func writeParquet(w io.Writer, f view.Formatter, rows []view.Row) error {
	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = NewRecord(f, row)
	}

	pw := parquet.NewGenericWriter[Record](w)
	if _, err := pw.Write(records); err != nil {
		_ = pw.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
