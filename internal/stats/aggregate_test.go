package stats

import (
	"testing"
	"time"

	"country-stats/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

func TestAggregateTieBreaksOnID(t *testing.T) {
	countries := []model.Country{{ID: 1, Name: "Brazil", Population: 210000000}}
	speakers := []model.SpeakerEstimate{
		{ID: 7, CountryID: 1, EstimatedCount: i64(700), CreatedAt: day("2023-01-01")},
		{ID: 5, CountryID: 1, EstimatedCount: i64(500), CreatedAt: day("2023-01-01")},
	}

	rows := Aggregate(countries, speakers, nil)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].EstCount == nil || *rows[0].EstCount != 700 {
		t.Fatalf("expected estimate from id 7, got %v", rows[0].EstCount)
	}
}

func TestAggregatePrefersLaterTimestampOverID(t *testing.T) {
	countries := []model.Country{{ID: 1, Name: "India"}}
	programmers := []model.ProgrammerEstimate{
		{ID: 9, CountryID: 1, MidEst: i64(1), CreatedAt: day("2022-06-01")},
		{ID: 2, CountryID: 1, MidEst: i64(2), CreatedAt: day("2024-06-01")},
		{ID: 4, CountryID: 1, MidEst: i64(3), CreatedAt: day("2023-06-01")},
	}

	rows := Aggregate(countries, nil, programmers)
	if got := *rows[0].MidEst; got != 2 {
		t.Fatalf("expected mid estimate 2, got %d", got)
	}
	if rows[0].PGCreated == nil || !rows[0].PGCreated.Equal(day("2024-06-01")) {
		t.Fatalf("expected pg_created 2024-06-01, got %v", rows[0].PGCreated)
	}
}

func TestAggregateLeavesMissingEstimatesAbsent(t *testing.T) {
	countries := []model.Country{{ID: 3, Name: "Chad", Population: 17000000, OnePctPopulation: 170000}}

	rows := Aggregate(countries, nil, nil)
	row := rows[0]
	if row.EstCount != nil || row.PctOfPopulation != nil || row.Source != nil || row.ESCreated != nil {
		t.Fatalf("expected absent speaker fields, got %+v", row)
	}
	if row.ConservativeEst != nil || row.MidEst != nil || row.HighEst != nil || row.PGCreated != nil {
		t.Fatalf("expected absent programmer fields, got %+v", row)
	}
	if row.Population != 17000000 || row.OnePctPopulation != 170000 {
		t.Fatalf("expected parent fields copied, got %+v", row)
	}
}

func TestAggregateOrdersByNameAndNumbers(t *testing.T) {
	countries := []model.Country{
		{ID: 1, Name: "Finland"},
		{ID: 2, Name: "Canada"},
		{ID: 3, Name: "India"},
		{ID: 4, Name: "Brazil"},
	}

	rows := Aggregate(countries, nil, nil)
	want := []string{"Brazil", "Canada", "Finland", "India"}
	for i, name := range want {
		if rows[i].CountryName != name {
			t.Fatalf("row %d: expected %s, got %s", i, name, rows[i].CountryName)
		}
		if rows[i].No != i+1 {
			t.Fatalf("row %d: expected No. %d, got %d", i, i+1, rows[i].No)
		}
	}
	if countries[0].Name != "Finland" {
		t.Fatal("expected input countries untouched")
	}
}

func TestAggregateDuplicateNamesFallBackToID(t *testing.T) {
	countries := []model.Country{
		{ID: 9, Name: "Congo", Population: 9},
		{ID: 2, Name: "Congo", Population: 2},
	}

	for range 3 {
		rows := Aggregate(countries, nil, nil)
		if rows[0].Population != 2 || rows[1].Population != 9 {
			t.Fatalf("expected id order for duplicate names, got %d then %d", rows[0].Population, rows[1].Population)
		}
	}
}

func TestAggregateIgnoresOrphanEstimates(t *testing.T) {
	countries := []model.Country{{ID: 1, Name: "Kenya"}}
	speakers := []model.SpeakerEstimate{
		{ID: 1, CountryID: 99, Source: str("orphan"), CreatedAt: day("2024-01-01")},
	}

	rows := Aggregate(countries, speakers, nil)
	if len(rows) != 1 || rows[0].Source != nil {
		t.Fatalf("expected orphan estimate ignored, got %+v", rows)
	}
}

func TestAggregateEmpty(t *testing.T) {
	rows := Aggregate(nil, nil, nil)
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil rows, got %#v", rows)
	}
}

func TestLatest(t *testing.T) {
	if _, ok := Latest([]model.SpeakerEstimate{}); ok {
		t.Fatal("expected no latest for empty input")
	}
	got, ok := Latest([]model.SpeakerEstimate{
		{ID: 1, CreatedAt: day("2023-01-02"), PctOfPopulation: f64(0.1)},
		{ID: 3, CreatedAt: day("2023-01-02"), PctOfPopulation: f64(0.3)},
		{ID: 2, CreatedAt: day("2023-01-01"), PctOfPopulation: f64(0.2)},
	})
	if !ok || got.ID != 3 {
		t.Fatalf("expected id 3, got %+v", got)
	}
}
