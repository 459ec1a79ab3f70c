package stats

import (
	"cmp"
	"slices"

	"country-stats/internal/model"
)

// Aggregate joins the latest speaker and programmer estimate of every country onto it.
//
// Rows are ordered by country name, then by country id so duplicate names still order
// deterministically, and numbered from 1 in that order. Estimates whose country is not in
// countries are ignored. Inputs are not modified.
func Aggregate(countries []model.Country, speakers []model.SpeakerEstimate, programmers []model.ProgrammerEstimate) []model.StatsRow {
	latestSpeaker := LatestByParent(speakers, func(e model.SpeakerEstimate) int64 { return e.CountryID })
	latestProgrammer := LatestByParent(programmers, func(e model.ProgrammerEstimate) int64 { return e.CountryID })

	ordered := slices.Clone(countries)
	slices.SortStableFunc(ordered, func(a, b model.Country) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	rows := make([]model.StatsRow, 0, len(ordered))
	for i, c := range ordered {
		row := model.NewStatsRow(c)
		row.No = i + 1
		if e, ok := latestSpeaker[c.ID]; ok {
			row.ApplySpeaker(e)
		}
		if e, ok := latestProgrammer[c.ID]; ok {
			row.ApplyProgrammer(e)
		}
		rows = append(rows, row)
	}
	return rows
}

// Number assigns No. from output position, for fetchers that order rows themselves.
func Number(rows []model.StatsRow) []model.StatsRow {
	for i := range rows {
		rows[i].No = i + 1
	}
	return rows
}
