package model

import "time"

// Country is read-only reference data; rank is assigned by output order, not stored.
type Country struct {
	ID               int64   `json:"country_id" gorm:"column:country_id;primaryKey"`
	Name             string  `json:"country_name" gorm:"column:country_name;index"`
	Population       int64   `json:"population" gorm:"column:population"`
	OnePctPopulation float64 `json:"one_pct_population" gorm:"column:one_pct_population"`
}

// TableName maps Country onto the countries table.
func (Country) TableName() string { return "countries" }

// SpeakerEstimate is one append-only english speaker estimate for a country
type SpeakerEstimate struct {
	ID              int64     `json:"english_id" gorm:"column:english_id;primaryKey"`
	CountryID       int64     `json:"country_id" gorm:"column:country_id;index"`
	EstimatedCount  *int64    `json:"estimated_count" gorm:"column:estimated_count"`
	PctOfPopulation *float64  `json:"pct_of_population" gorm:"column:pct_of_population"`
	Source          *string   `json:"source" gorm:"column:source"`
	CreatedAt       time.Time `json:"created_date" gorm:"-"`
	CreatedAtMillis int64     `json:"-" gorm:"column:created_at"` // UTC unix millis as stored
}

// TableName maps SpeakerEstimate onto the english_speakers table.
func (SpeakerEstimate) TableName() string { return "english_speakers" }

// Key returns the (timestamp, id) pair used to pick the latest estimate.
func (e SpeakerEstimate) Key() (time.Time, int64) { return e.CreatedAt, e.ID }

// ProgrammerEstimate is one append-only tiered programmer estimate for a country
type ProgrammerEstimate struct {
	ID              int64     `json:"programmer_id" gorm:"column:programmer_id;primaryKey"`
	CountryID       int64     `json:"country_id" gorm:"column:country_id;index"`
	ConservativeEst *int64    `json:"conservative_est" gorm:"column:conservative_est"`
	MidEst          *int64    `json:"mid_est" gorm:"column:mid_est"`
	HighEst         *int64    `json:"high_est" gorm:"column:high_est"`
	PctConservative *float64  `json:"pct_conservative" gorm:"column:pct_conservative"`
	PctMid          *float64  `json:"pct_mid" gorm:"column:pct_mid"`
	PctHigh         *float64  `json:"pct_high" gorm:"column:pct_high"`
	CreatedAt       time.Time `json:"created_date" gorm:"-"`
	CreatedAtMillis int64     `json:"-" gorm:"column:created_at"` // UTC unix millis as stored
}

// TableName maps ProgrammerEstimate onto the programmers table.
func (ProgrammerEstimate) TableName() string { return "programmers" }

// Key returns the (timestamp, id) pair used to pick the latest estimate.
func (e ProgrammerEstimate) Key() (time.Time, int64) { return e.CreatedAt, e.ID }
