package dto

import (
	"staysync/internal/domains/pricing/engine"
	"staysync/internal/domains/pricing/model"
	"staysync/shared/constant"
)

type QuoteRequest struct {
	BasePrice        float64 `json:"base_price"         validate:"gte=0"`
	Date             string  `json:"date"               validate:"required,day"`
	OccupancyRate    float64 `json:"occupancy_rate"     validate:"gte=0,lte=1"`
	DaysUntilCheckIn int     `json:"days_until_checkin" validate:"gte=0"`
	MinimumStay      int     `json:"minimum_stay"       validate:"gte=0"`
	StayLength       int     `json:"stay_length"        validate:"gte=0"`
	// Season may be omitted when StrategyID is set; the strategy calendar then decides.
	Season     string `json:"season"      validate:"omitempty,season"`
	StrategyID string `json:"strategy_id" validate:"required_without=Season"`
}

type ApplyStrategyRequest struct {
	StrategyID string `json:"strategy_id" validate:"required"`
	Start      string `json:"start"       validate:"required,day"`
	End        string `json:"end"         validate:"required,day"`
}

type RateResponse struct {
	Night      string           `json:"night"`
	Price      float64          `json:"price"`
	PriceMinor int64            `json:"price_minor"`
	Breakdown  engine.Breakdown `json:"breakdown"`
}

func (r *RateResponse) FromModel(rate model.RateOverride, breakdown engine.Breakdown) {
	r.Night = rate.Night.Format(constant.DayFormat)
	r.Price = rate.Price
	r.PriceMinor = rate.PriceMinor
	r.Breakdown = breakdown
}

type ApplyStrategyResponse struct {
	ListingID     string         `json:"listing_id"`
	StrategyID    string         `json:"strategy_id"`
	NightsUpdated int            `json:"nights_updated"`
	Rates         []RateResponse `json:"rates"`
}
