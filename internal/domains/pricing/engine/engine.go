// Package engine turns pricing signals into a nightly rate with an auditable breakdown.
package engine

import (
	"fmt"
	"staysync/internal/domains/pricing/model"
	"staysync/shared/daterange"
	"staysync/shared/failure"
	"staysync/shared/money"
	"staysync/shared/validator"
	"time"
)

const (
	occupancyRamp     = 0.3
	lastMinuteDays    = 3
	lastMinuteFactor  = 0.9
	earlyBirdDays     = 60
	earlyBirdFactor   = 1.05
	neutralMultiplier = 1.0
)

const (
	FactorSeason    = "season"
	FactorOverride  = "season_override"
	FactorOccupancy = "occupancy"
	FactorLeadTime  = "lead_time"
)

type Input struct {
	BasePrice        float64   `json:"base_price"         validate:"gte=0"`
	Date             time.Time `json:"date"               validate:"required"`
	OccupancyRate    float64   `json:"occupancy_rate"     validate:"gte=0,lte=1"`
	DaysUntilCheckIn int       `json:"days_until_checkin" validate:"gte=0"`
	MinimumStay      int       `json:"minimum_stay"       validate:"gte=0"`
	// StayLength is the number of nights requested; zero skips the minimum-stay check.
	StayLength int                    `json:"stay_length" validate:"gte=0"`
	Season     model.SeasonType       `json:"season"      validate:"required,season"`
	Overrides  []model.SeasonOverride `json:"overrides"`
}

// Line is one multiplicative adjustment. Running is the price after applying it.
type Line struct {
	Factor     string  `json:"factor"`
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
	Running    float64 `json:"running"`
}

type Breakdown struct {
	BasePrice        float64 `json:"base_price"`
	Lines            []Line  `json:"lines"`
	BelowMinimumStay bool    `json:"below_minimum_stay"`
}

type Quote struct {
	Price      float64   `json:"price"`
	PriceMinor int64     `json:"price_minor"`
	Breakdown  Breakdown `json:"breakdown"`
}

// CalculatePrice applies season, occupancy and lead-time multipliers to the base price
// and rounds the result half up to cents.
func CalculatePrice(in Input) (Quote, error) {
	if err := validator.ValidateStruct(&in); err != nil {
		return Quote{}, err //nolint:wrapcheck
	}

	for _, override := range in.Overrides {
		if override.Multiplier <= 0 {
			return Quote{}, failure.BadRequestFromString(fmt.Sprintf("override %q needs a positive multiplier", override.Name)) //nolint:wrapcheck
		}
	}

	price := in.BasePrice
	breakdown := Breakdown{BasePrice: in.BasePrice}

	apply := func(factor, label string, multiplier float64) {
		price *= multiplier
		breakdown.Lines = append(breakdown.Lines, Line{
			Factor:     factor,
			Label:      label,
			Multiplier: multiplier,
			Running:    money.Round(price),
		})
	}

	if override, ok := overrideFor(in.Date, in.Overrides); ok {
		apply(FactorOverride, override.Name, override.Multiplier)
	} else {
		multiplier, _ := in.Season.Multiplier()
		apply(FactorSeason, string(in.Season)+" season", multiplier)
	}

	apply(FactorOccupancy, fmt.Sprintf("%.0f%% occupancy", in.OccupancyRate*100), neutralMultiplier+occupancyRamp*in.OccupancyRate)

	switch {
	case in.DaysUntilCheckIn <= lastMinuteDays:
		apply(FactorLeadTime, "last minute", lastMinuteFactor)
	case in.DaysUntilCheckIn >= earlyBirdDays:
		apply(FactorLeadTime, "early bird", earlyBirdFactor)
	default:
		apply(FactorLeadTime, "standard lead time", neutralMultiplier)
	}

	breakdown.BelowMinimumStay = in.StayLength > 0 && in.StayLength < in.MinimumStay

	return Quote{
		Price:      money.Round(price),
		PriceMinor: money.Minor(price),
		Breakdown:  breakdown,
	}, nil
}

// overrideFor picks the narrowest override covering the night, preferring the larger
// multiplier when two have the same span.
func overrideFor(date time.Time, overrides []model.SeasonOverride) (model.SeasonOverride, bool) {
	night := daterange.Day(date)

	var (
		best  model.SeasonOverride
		found bool
	)

	for _, override := range overrides {
		if !override.Range.Contains(night) {
			continue
		}

		if !found ||
			override.Range.Nights() < best.Range.Nights() ||
			(override.Range.Nights() == best.Range.Nights() && override.Multiplier > best.Multiplier) {
			best = override
			found = true
		}
	}

	return best, found
}
