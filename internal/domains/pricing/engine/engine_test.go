package engine_test

import (
	"net/http"
	"staysync/internal/domains/pricing/engine"
	"staysync/internal/domains/pricing/model"
	"staysync/shared/daterange"
	"staysync/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var night = time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)

func baseInput() engine.Input {
	return engine.Input{
		BasePrice:        100,
		Date:             night,
		OccupancyRate:    0.8,
		DaysUntilCheckIn: 45,
		MinimumStay:      2,
		Season:           model.SeasonHigh,
	}
}

func TestCalculatePrice(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(in *engine.Input)
		wantPrice float64
		wantMinor int64
		wantBelow bool
	}{
		{
			name:      "high season busy standard lead time",
			mutate:    func(*engine.Input) {},
			wantPrice: 155.00,
			wantMinor: 15500,
		},
		{
			name:      "last minute discount",
			mutate:    func(in *engine.Input) { in.DaysUntilCheckIn = 2 },
			wantPrice: 139.50,
			wantMinor: 13950,
		},
		{
			name:      "early bird premium",
			mutate:    func(in *engine.Input) { in.DaysUntilCheckIn = 60 },
			wantPrice: 162.75,
			wantMinor: 16275,
		},
		{
			name: "empty low season",
			mutate: func(in *engine.Input) {
				in.Season = model.SeasonLow
				in.OccupancyRate = 0
			},
			wantPrice: 85.00,
			wantMinor: 8500,
		},
		{
			name: "override wins over season",
			mutate: func(in *engine.Input) {
				in.Overrides = []model.SeasonOverride{
					{Name: "regatta", Range: daterange.Range{Start: night.AddDate(0, 0, -1), End: night.AddDate(0, 0, 2)}, Multiplier: 2},
					{Name: "summer", Range: daterange.Range{Start: night.AddDate(0, 0, -30), End: night.AddDate(0, 0, 30)}, Multiplier: 1.1},
				}
			},
			wantPrice: 248.00,
			wantMinor: 24800,
		},
		{
			name: "override outside the night is ignored",
			mutate: func(in *engine.Input) {
				in.Overrides = []model.SeasonOverride{
					{Name: "regatta", Range: daterange.Range{Start: night.AddDate(0, 0, 1), End: night.AddDate(0, 0, 3)}, Multiplier: 2},
				}
			},
			wantPrice: 155.00,
			wantMinor: 15500,
		},
		{
			name:      "stay shorter than minimum is flagged",
			mutate:    func(in *engine.Input) { in.StayLength = 1 },
			wantPrice: 155.00,
			wantMinor: 15500,
			wantBelow: true,
		},
		{
			name:      "zero base price",
			mutate:    func(in *engine.Input) { in.BasePrice = 0 },
			wantPrice: 0,
			wantMinor: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			tt.mutate(&in)

			quote, err := engine.CalculatePrice(in)
			require.NoError(t, err)

			assert.InDelta(t, tt.wantPrice, quote.Price, 1e-9)
			assert.Equal(t, tt.wantMinor, quote.PriceMinor)
			assert.Equal(t, tt.wantBelow, quote.Breakdown.BelowMinimumStay)
			assert.Len(t, quote.Breakdown.Lines, 3)
		})
	}
}

func TestCalculatePrice_Breakdown(t *testing.T) {
	quote, err := engine.CalculatePrice(baseInput())
	require.NoError(t, err)

	lines := quote.Breakdown.Lines
	require.Len(t, lines, 3)

	assert.Equal(t, engine.FactorSeason, lines[0].Factor)
	assert.InDelta(t, 1.25, lines[0].Multiplier, 1e-9)
	assert.Equal(t, engine.FactorOccupancy, lines[1].Factor)
	assert.InDelta(t, 1.24, lines[1].Multiplier, 1e-9)
	assert.Equal(t, engine.FactorLeadTime, lines[2].Factor)
	assert.InDelta(t, 1.0, lines[2].Multiplier, 1e-9)
	assert.InDelta(t, 155.0, lines[2].Running, 1e-9)
}

func TestCalculatePrice_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *engine.Input)
	}{
		{name: "negative base price", mutate: func(in *engine.Input) { in.BasePrice = -1 }},
		{name: "occupancy above one", mutate: func(in *engine.Input) { in.OccupancyRate = 1.01 }},
		{name: "negative occupancy", mutate: func(in *engine.Input) { in.OccupancyRate = -0.1 }},
		{name: "negative lead time", mutate: func(in *engine.Input) { in.DaysUntilCheckIn = -1 }},
		{name: "unknown season", mutate: func(in *engine.Input) { in.Season = "monsoon" }},
		{name: "missing date", mutate: func(in *engine.Input) { in.Date = time.Time{} }},
		{
			name: "non positive override",
			mutate: func(in *engine.Input) {
				in.Overrides = []model.SeasonOverride{{Name: "broken", Range: daterange.Range{Start: night, End: night.AddDate(0, 0, 1)}}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			tt.mutate(&in)

			_, err := engine.CalculatePrice(in)

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestCalculatePrice_Monotonic(t *testing.T) {
	seasons := []model.SeasonType{model.SeasonLow, model.SeasonMid, model.SeasonHigh, model.SeasonPeak}

	for _, lead := range []int{0, 3, 4, 30, 59, 60, 200} {
		previousSeason := -1.0

		for _, season := range seasons {
			in := baseInput()
			in.DaysUntilCheckIn = lead
			in.Season = season

			quote, err := engine.CalculatePrice(in)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, quote.Price, previousSeason)

			previousSeason = quote.Price
		}

		previousOccupancy := -1.0

		for step := 0; step <= 20; step++ {
			in := baseInput()
			in.DaysUntilCheckIn = lead
			in.OccupancyRate = float64(step) / 20

			quote, err := engine.CalculatePrice(in)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, quote.Price, previousOccupancy)

			previousOccupancy = quote.Price
		}
	}
}
