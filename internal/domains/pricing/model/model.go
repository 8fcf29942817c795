package model

import (
	"staysync/shared/daterange"
	"staysync/shared/model"
	"time"
)

const (
	TableName  = "rate_overrides"
	EntityName = "rate_override"

	FieldID         = "id"
	FieldListingID  = "listing_id"
	FieldNight      = "night"
	FieldStrategyID = "strategy_id"
)

type SeasonType string

const (
	SeasonLow  SeasonType = "low"
	SeasonMid  SeasonType = "mid"
	SeasonHigh SeasonType = "high"
	SeasonPeak SeasonType = "peak"
)

var seasonMultipliers = map[SeasonType]float64{
	SeasonLow:  0.85,
	SeasonMid:  1.0,
	SeasonHigh: 1.25,
	SeasonPeak: 1.5,
}

// Multiplier returns the seasonal factor; ok is false for unknown seasons.
func (s SeasonType) Multiplier() (float64, bool) {
	m, ok := seasonMultipliers[s]

	return m, ok
}

// SeasonOverride replaces the season multiplier on the nights of Range, e.g. for a festival.
type SeasonOverride struct {
	Name       string          `json:"name"`
	Range      daterange.Range `json:"range"`
	Multiplier float64         `json:"multiplier"`
}

// RateOverride is the persisted nightly price produced by a pricing strategy.
type RateOverride struct {
	ID         string    `db:"id"          json:"id"`
	ListingID  string    `db:"listing_id"  json:"listing_id"`
	Night      time.Time `db:"night"       json:"night"`
	Price      float64   `db:"price"       json:"price"`
	PriceMinor int64     `db:"price_minor" json:"price_minor"`
	StrategyID string    `db:"strategy_id" json:"strategy_id"`
	// Breakdown is the JSON encoded quote breakdown.
	Breakdown string `db:"breakdown" json:"-"`
	model.Metadata
}
