// Package daterange models night-based, half-open date ranges: Start is the
// first night, End is the checkout day and is not itself a night.
package daterange

import (
	"errors"
	"staysync/shared/constant"
	"time"
)

var ErrEmptyRange = errors.New("date range end must be after start")

type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Day truncates t to its calendar date at UTC midnight, keeping the wall-clock date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// New builds a range from two instants, normalised to calendar days.
func New(start, end time.Time) (Range, error) {
	r := Range{Start: Day(start), End: Day(end)}
	if !r.End.After(r.Start) {
		return Range{}, ErrEmptyRange
	}

	return r, nil
}

// Parse builds a range from two YYYY-MM-DD strings.
func Parse(start, end string) (Range, error) {
	s, err := time.Parse(constant.DayFormat, start)
	if err != nil {
		return Range{}, err //nolint:wrapcheck
	}

	e, err := time.Parse(constant.DayFormat, end)
	if err != nil {
		return Range{}, err //nolint:wrapcheck
	}

	return New(s, e)
}

func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

func (r Range) Contains(day time.Time) bool {
	d := Day(day)

	return !d.Before(r.Start) && d.Before(r.End)
}

func (r Range) Nights() int {
	if !r.End.After(r.Start) {
		return 0
	}

	return int(r.End.Sub(r.Start).Hours() / constant.HoursInDay)
}

// Intersect returns the shared nights of two ranges; ok is false when they do not overlap.
func (r Range) Intersect(other Range) (Range, bool) {
	if !r.Overlaps(other) {
		return Range{}, false
	}

	start := r.Start
	if other.Start.After(start) {
		start = other.Start
	}

	end := r.End
	if other.End.Before(end) {
		end = other.End
	}

	return Range{Start: start, End: end}, true
}

// Days lists every night in the range.
func (r Range) Days() []time.Time {
	days := make([]time.Time, 0, r.Nights())

	for d := r.Start; d.Before(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	return days
}

func (r Range) String() string {
	return r.Start.Format(constant.DayFormat) + "/" + r.End.Format(constant.DayFormat)
}
