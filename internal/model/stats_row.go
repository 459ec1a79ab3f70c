package model

import "time"

// StatsRow is one aggregated row per country. Nil pointer fields mean the country has no
// estimate of that kind and encode as JSON null.
//
// Field order is the wire order of the /api/country-stats objects.
type StatsRow struct {
	No               int        `json:"No."`
	CountryName      string     `json:"Country Name"`
	Population       int64      `json:"Population"`
	OnePctPopulation float64    `json:"1% Population"`
	EstCount         *int64     `json:"Est. Count"`
	PctOfPopulation  *float64   `json:"% of Population"`
	Source           *string    `json:"Source"`
	ConservativeEst  *int64     `json:"Conservative Est."`
	MidEst           *int64     `json:"Mid Est."`
	HighEst          *int64     `json:"High Est."`
	PctConservative  *float64   `json:"% Conservative"`
	PctMid           *float64   `json:"% Mid"`
	PctHigh          *float64   `json:"% High"`
	ESCreated        *time.Time `json:"es_created"`
	PGCreated        *time.Time `json:"pg_created"`
}

// RowKeys lists the JSON keys of a StatsRow in wire order.
var RowKeys = []string{
	"No.",
	"Country Name",
	"Population",
	"1% Population",
	"Est. Count",
	"% of Population",
	"Source",
	"Conservative Est.",
	"Mid Est.",
	"High Est.",
	"% Conservative",
	"% Mid",
	"% High",
	"es_created",
	"pg_created",
}

// NewStatsRow starts a row from its parent country with every estimate absent.
func NewStatsRow(c Country) StatsRow {
	return StatsRow{
		CountryName:      c.Name,
		Population:       c.Population,
		OnePctPopulation: c.OnePctPopulation,
	}
}

// ApplySpeaker copies the speaker estimate fields onto the row.
func (r *StatsRow) ApplySpeaker(e SpeakerEstimate) {
	r.EstCount = e.EstimatedCount
	r.PctOfPopulation = e.PctOfPopulation
	r.Source = e.Source
	created := e.CreatedAt.UTC()
	r.ESCreated = &created
}

// ApplyProgrammer copies the programmer estimate fields onto the row.
func (r *StatsRow) ApplyProgrammer(e ProgrammerEstimate) {
	r.ConservativeEst = e.ConservativeEst
	r.MidEst = e.MidEst
	r.HighEst = e.HighEst
	r.PctConservative = e.PctConservative
	r.PctMid = e.PctMid
	r.PctHigh = e.PctHigh
	created := e.CreatedAt.UTC()
	r.PGCreated = &created
}
