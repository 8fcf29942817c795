package model

import (
	"errors"
	"fmt"
	"staysync/shared/daterange"
	"time"
)

var ErrUnknownStrategy = errors.New("unknown pricing strategy")

// SeasonWindow maps a recurring month-day span to a season. From and To are MM-DD and
// inclusive; a window whose To precedes From wraps the new year.
type SeasonWindow struct {
	Season SeasonType `yaml:"season" json:"season"`
	From   string     `yaml:"from"   json:"from"`
	To     string     `yaml:"to"     json:"to"`
}

type OverrideWindow struct {
	Name       string  `yaml:"name"       json:"name"`
	Start      string  `yaml:"start"      json:"start"`
	End        string  `yaml:"end"        json:"end"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
}

type Strategy struct {
	ID                  string           `yaml:"id"                    json:"id"`
	Name                string           `yaml:"name"                  json:"name"`
	DefaultSeason       SeasonType       `yaml:"default_season"        json:"default_season"`
	Seasons             []SeasonWindow   `yaml:"seasons"               json:"seasons"`
	Overrides           []OverrideWindow `yaml:"overrides"             json:"overrides"`
	OccupancyWindowDays int              `yaml:"occupancy_window_days" json:"occupancy_window_days"`
}

func monthDay(night time.Time) string {
	return night.Format("01-02")
}

// SeasonFor returns the season of the first window containing night.
func (s Strategy) SeasonFor(night time.Time) SeasonType {
	md := monthDay(night)

	for _, window := range s.Seasons {
		if window.From <= window.To {
			if md >= window.From && md <= window.To {
				return window.Season
			}

			continue
		}

		if md >= window.From || md <= window.To {
			return window.Season
		}
	}

	if s.DefaultSeason == "" {
		return SeasonMid
	}

	return s.DefaultSeason
}

// SeasonOverrides parses the dated overrides of the strategy.
func (s Strategy) SeasonOverrides() ([]SeasonOverride, error) {
	overrides := make([]SeasonOverride, 0, len(s.Overrides))

	for _, window := range s.Overrides {
		r, err := daterange.Parse(window.Start, window.End)
		if err != nil {
			return nil, fmt.Errorf("override %q of strategy %q: %w", window.Name, s.ID, err)
		}

		overrides = append(overrides, SeasonOverride{Name: window.Name, Range: r, Multiplier: window.Multiplier})
	}

	return overrides, nil
}

// Validate checks season names and month-day formats.
func (s Strategy) Validate() error {
	if s.ID == "" {
		return errors.New("strategy id is required")
	}

	if s.DefaultSeason != "" {
		if _, ok := s.DefaultSeason.Multiplier(); !ok {
			return fmt.Errorf("strategy %q: unknown default season %q", s.ID, s.DefaultSeason)
		}
	}

	for _, window := range s.Seasons {
		if _, ok := window.Season.Multiplier(); !ok {
			return fmt.Errorf("strategy %q: unknown season %q", s.ID, window.Season)
		}

		for _, md := range []string{window.From, window.To} {
			if _, err := time.Parse("01-02", md); err != nil {
				return fmt.Errorf("strategy %q: invalid month-day %q: %w", s.ID, md, err)
			}
		}
	}

	for _, window := range s.Overrides {
		if window.Multiplier <= 0 {
			return fmt.Errorf("strategy %q: override %q needs a positive multiplier", s.ID, window.Name)
		}
	}

	_, err := s.SeasonOverrides()

	return err
}
