// Package codec converts between iCal feeds and availability blocks.
package codec

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"staysync/internal/domains/availability/model"
	"staysync/shared/daterange"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
)

const (
	productService = "staysync"

	summaryReserved    = "Reserved"
	summaryUnavailable = "Not available"
	summaryTentative   = "Tentative"

	defaultHorizonDays = 540
	maxOccurrences     = 1000
)

var dateTimeLayouts = []string{
	"20060102T150405Z",
	"20060102T150405",
}

// ParseError means the feed as a whole could not be read.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feed parse error: %s: %v", e.Reason, e.Err)
	}

	return "feed parse error: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Warning records a VEVENT that was skipped or adjusted while decoding.
type Warning struct {
	UID    string `json:"uid"`
	Reason string `json:"reason"`
}

type DecodeResult struct {
	Blocks   []model.Block
	Warnings []Warning
}

type Options struct {
	// Recurring events are expanded for occurrences starting inside [ExpandFrom, ExpandUntil).
	ExpandFrom  time.Time
	ExpandUntil time.Time
}

func DefaultOptions(now time.Time) Options {
	today := daterange.Day(now)

	return Options{
		ExpandFrom:  today.AddDate(0, -1, 0),
		ExpandUntil: today.AddDate(0, 0, defaultHorizonDays),
	}
}

// Decode parses a feed into blocks. Only the date part of DTSTART/DTEND is kept.
// Blocks carry the event reference, range, status and summary; ownership is
// stamped by the store.
func Decode(feed []byte, opts Options) (DecodeResult, error) {
	var result DecodeResult

	body := bytes.TrimSpace(feed)
	if len(body) == 0 {
		return result, &ParseError{Reason: "empty feed"}
	}

	if !bytes.HasPrefix(bytes.ToUpper(body), []byte("BEGIN:VCALENDAR")) {
		return result, &ParseError{Reason: "missing VCALENDAR"}
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return result, &ParseError{Reason: "unreadable calendar", Err: err}
	}

	seen := map[string]struct{}{}

	for _, event := range cal.Events() {
		blocks, warn := decodeEvent(event, opts)
		if warn != nil {
			result.Warnings = append(result.Warnings, *warn)
		}

		for _, block := range blocks {
			if _, dup := seen[block.SourceReference]; dup {
				result.Warnings = append(result.Warnings, Warning{UID: block.SourceReference, Reason: "duplicate UID"})

				continue
			}

			seen[block.SourceReference] = struct{}{}
			result.Blocks = append(result.Blocks, block)
		}
	}

	return result, nil
}

func decodeEvent(event *ical.VEvent, opts Options) ([]model.Block, *Warning) {
	uid := propertyValue(event, ical.ComponentPropertyUniqueId)

	status := strings.ToUpper(propertyValue(event, ical.ComponentPropertyStatus))
	if status == string(ical.ObjectStatusCancelled) {
		return nil, &Warning{UID: uid, Reason: "cancelled event dropped"}
	}

	start, err := parseDate(event.GetProperty(ical.ComponentPropertyDtStart))
	if err != nil {
		return nil, &Warning{UID: uid, Reason: "DTSTART: " + err.Error()}
	}

	end, err := parseDate(event.GetProperty(ical.ComponentPropertyDtEnd))
	if err != nil {
		return nil, &Warning{UID: uid, Reason: "DTEND: " + err.Error()}
	}

	rng, err := daterange.New(start, end)
	if err != nil {
		return nil, &Warning{UID: uid, Reason: "DTEND is not after DTSTART"}
	}

	summary := propertyValue(event, ical.ComponentPropertySummary)
	blockStatus := classify(summary, status)

	var warn *Warning
	if uid == "" {
		uid = "nouid-" + rng.Start.Format("20060102") + "-" + rng.End.Format("20060102")
		warn = &Warning{UID: uid, Reason: "missing UID, reference synthesized"}
	}

	rule := propertyValue(event, ical.ComponentPropertyRrule)
	if rule == "" {
		return []model.Block{newBlock(uid, rng, blockStatus, summary)}, warn
	}

	blocks, err := expand(uid, rule, rng, blockStatus, summary, opts)
	if err != nil {
		return nil, &Warning{UID: uid, Reason: "RRULE: " + err.Error()}
	}

	return blocks, warn
}

func expand(uid, rule string, rng daterange.Range, status model.Status, summary string, opts Options) ([]model.Block, error) {
	option, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	option.Dtstart = rng.Start

	rr, err := rrule.NewRRule(*option)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if opts.ExpandUntil.IsZero() {
		opts = DefaultOptions(time.Now())
	}

	nights := rng.Nights()
	blocks := []model.Block{}

	for _, occurrence := range rr.Between(opts.ExpandFrom, opts.ExpandUntil, true) {
		if len(blocks) >= maxOccurrences {
			break
		}

		day := daterange.Day(occurrence)
		occ := daterange.Range{Start: day, End: day.AddDate(0, 0, nights)}
		ref := uid + "@" + day.Format("20060102")

		blocks = append(blocks, newBlock(ref, occ, status, summary))
	}

	return blocks, nil
}

func newBlock(reference string, rng daterange.Range, status model.Status, summary string) model.Block {
	return model.Block{
		DateRangeStart:  rng.Start,
		DateRangeEnd:    rng.End,
		SourceReference: reference,
		Status:          status,
		Summary:         summary,
		Authoritative:   true,
	}
}

func classify(summary, status string) model.Status {
	lower := strings.ToLower(summary)

	switch {
	case strings.Contains(lower, "blocked"), strings.Contains(lower, "not available"):
		return model.StatusBlocked
	case status == string(ical.ObjectStatusTentative):
		return model.StatusTentative
	}

	return model.StatusConfirmed
}

func propertyValue(event *ical.VEvent, property ical.ComponentProperty) string {
	prop := event.GetProperty(property)
	if prop == nil {
		return ""
	}

	return strings.TrimSpace(prop.Value)
}

func parseDate(prop *ical.IANAProperty) (time.Time, error) {
	if prop == nil || strings.TrimSpace(prop.Value) == "" {
		return time.Time{}, fmt.Errorf("missing")
	}

	value := strings.TrimSpace(prop.Value)

	if len(value) == len("20060102") {
		day, err := time.Parse("20060102", value)
		if err != nil {
			return time.Time{}, fmt.Errorf("malformed date %q", value)
		}

		return day, nil
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return daterange.Day(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("malformed date %q", value)
}

// Encode renders blocks as a calendar. UIDs are listingID:reference and events
// are ordered by start then UID, so the same blocks always give the same bytes.
func Encode(blocks []model.Block, listingID string) []byte {
	cal := ical.NewCalendarFor(productService)
	cal.SetMethod(ical.MethodPublish)

	sorted := slices.Clone(blocks)
	slices.SortFunc(sorted, func(a, b model.Block) int {
		if c := a.DateRangeStart.Compare(b.DateRangeStart); c != 0 {
			return c
		}

		return cmp.Compare(uid(listingID, a), uid(listingID, b))
	})

	for _, block := range sorted {
		event := cal.AddEvent(uid(listingID, block))
		event.SetDtStampTime(block.DateRangeStart)
		event.SetAllDayStartAt(block.DateRangeStart)
		event.SetAllDayEndAt(block.DateRangeEnd)

		switch block.Status {
		case model.StatusBlocked:
			event.SetSummary(summaryUnavailable)
		case model.StatusTentative:
			event.SetSummary(summaryTentative)
			event.SetStatus(ical.ObjectStatusTentative)
		default:
			event.SetSummary(summaryReserved)
		}
	}

	return []byte(cal.Serialize())
}

func uid(listingID string, block model.Block) string {
	return listingID + ":" + block.SourceReference
}
