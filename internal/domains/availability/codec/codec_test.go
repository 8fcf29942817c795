package codec_test

import (
	"errors"
	"staysync/internal/domains/availability/codec"
	"staysync/internal/domains/availability/model"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(events ...string) []byte {
	lines := []string{"BEGIN:VCALENDAR", "VERSION:2.0", "PRODID:-//test//feed//EN"}
	lines = append(lines, events...)
	lines = append(lines, "END:VCALENDAR")

	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}

func event(props ...string) string {
	return strings.Join(append(append([]string{"BEGIN:VEVENT"}, props...), "END:VEVENT"), "\r\n")
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)

	return t
}

var opts = codec.Options{ExpandFrom: day("2025-01-01"), ExpandUntil: day("2026-01-01")}

func TestDecode(t *testing.T) {
	tests := []struct {
		name         string
		feed         []byte
		wantBlocks   int
		wantWarnings int
		check        func(t *testing.T, blocks []model.Block)
	}{
		{
			name: "all-day reservation",
			feed: feed(event("UID:abc@airbnb", "DTSTART;VALUE=DATE:20250701", "DTEND;VALUE=DATE:20250705", "SUMMARY:Reserved")),
			check: func(t *testing.T, blocks []model.Block) {
				assert.Equal(t, "abc@airbnb", blocks[0].SourceReference)
				assert.Equal(t, day("2025-07-01"), blocks[0].DateRangeStart)
				assert.Equal(t, day("2025-07-05"), blocks[0].DateRangeEnd)
				assert.Equal(t, model.StatusConfirmed, blocks[0].Status)
			},
			wantBlocks: 1,
		},
		{
			name: "date-time values are truncated to the date",
			feed: feed(event("UID:dt-1", "DTSTART:20250701T150000Z", "DTEND:20250703T110000Z")),
			check: func(t *testing.T, blocks []model.Block) {
				assert.Equal(t, day("2025-07-01"), blocks[0].DateRangeStart)
				assert.Equal(t, day("2025-07-03"), blocks[0].DateRangeEnd)
			},
			wantBlocks: 1,
		},
		{
			name: "blocked and not available summaries",
			feed: feed(
				event("UID:b-1", "DTSTART;VALUE=DATE:20250701", "DTEND;VALUE=DATE:20250702", "SUMMARY:Airbnb (Not available)"),
				event("UID:b-2", "DTSTART;VALUE=DATE:20250710", "DTEND;VALUE=DATE:20250712", "SUMMARY:BLOCKED by owner"),
			),
			check: func(t *testing.T, blocks []model.Block) {
				assert.Equal(t, model.StatusBlocked, blocks[0].Status)
				assert.Equal(t, model.StatusBlocked, blocks[1].Status)
			},
			wantBlocks: 2,
		},
		{
			name: "tentative and cancelled status",
			feed: feed(
				event("UID:t-1", "DTSTART;VALUE=DATE:20250701", "DTEND;VALUE=DATE:20250702", "STATUS:TENTATIVE"),
				event("UID:c-1", "DTSTART;VALUE=DATE:20250703", "DTEND;VALUE=DATE:20250704", "STATUS:CANCELLED"),
			),
			check: func(t *testing.T, blocks []model.Block) {
				assert.Equal(t, model.StatusTentative, blocks[0].Status)
			},
			wantBlocks:   1,
			wantWarnings: 1,
		},
		{
			name: "one event missing DTEND among five",
			feed: feed(
				event("UID:1", "DTSTART;VALUE=DATE:20250701", "DTEND;VALUE=DATE:20250703"),
				event("UID:2", "DTSTART;VALUE=DATE:20250705", "DTEND;VALUE=DATE:20250707"),
				event("UID:3", "DTSTART;VALUE=DATE:20250709"),
				event("UID:4", "DTSTART;VALUE=DATE:20250711", "DTEND;VALUE=DATE:20250713"),
				event("UID:5", "DTSTART;VALUE=DATE:20250715", "DTEND;VALUE=DATE:20250717"),
			),
			wantBlocks:   4,
			wantWarnings: 1,
		},
		{
			name: "end before start and malformed start are skipped",
			feed: feed(
				event("UID:bad-1", "DTSTART;VALUE=DATE:20250705", "DTEND;VALUE=DATE:20250701"),
				event("UID:bad-2", "DTSTART;VALUE=DATE:2025-07-05", "DTEND;VALUE=DATE:20250707"),
				event("UID:ok", "DTSTART;VALUE=DATE:20250710", "DTEND;VALUE=DATE:20250711"),
			),
			wantBlocks:   1,
			wantWarnings: 2,
		},
		{
			name:         "missing UID gets a synthesized reference",
			feed:         feed(event("DTSTART;VALUE=DATE:20250701", "DTEND;VALUE=DATE:20250702")),
			wantBlocks:   1,
			wantWarnings: 1,
			check: func(t *testing.T, blocks []model.Block) {
				assert.Equal(t, "nouid-20250701-20250702", blocks[0].SourceReference)
			},
		},
		{
			name: "duplicate UID keeps the first event",
			feed: feed(
				event("UID:dup", "DTSTART;VALUE=DATE:20250701", "DTEND;VALUE=DATE:20250702"),
				event("UID:dup", "DTSTART;VALUE=DATE:20250801", "DTEND;VALUE=DATE:20250802"),
			),
			wantBlocks:   1,
			wantWarnings: 1,
			check: func(t *testing.T, blocks []model.Block) {
				assert.Equal(t, day("2025-07-01"), blocks[0].DateRangeStart)
			},
		},
		{
			name: "weekly owner block is expanded",
			feed: feed(event("UID:weekly", "DTSTART;VALUE=DATE:20250707", "DTEND;VALUE=DATE:20250708", "RRULE:FREQ=WEEKLY;COUNT=3", "SUMMARY:Blocked")),
			check: func(t *testing.T, blocks []model.Block) {
				assert.Equal(t, "weekly@20250707", blocks[0].SourceReference)
				assert.Equal(t, "weekly@20250714", blocks[1].SourceReference)
				assert.Equal(t, "weekly@20250721", blocks[2].SourceReference)
				assert.Equal(t, day("2025-07-22"), blocks[2].DateRangeEnd)
				assert.Equal(t, model.StatusBlocked, blocks[2].Status)
			},
			wantBlocks: 3,
		},
		{
			name:       "calendar without events",
			feed:       feed(),
			wantBlocks: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := codec.Decode(tt.feed, opts)
			require.NoError(t, err)

			assert.Len(t, result.Blocks, tt.wantBlocks)
			assert.Len(t, result.Warnings, tt.wantWarnings)

			if tt.check != nil {
				tt.check(t, result.Blocks)
			}
		})
	}
}

func TestDecode_ParseError(t *testing.T) {
	tests := []struct {
		name string
		feed []byte
	}{
		{name: "empty body", feed: []byte("  \r\n")},
		{name: "html error page", feed: []byte("<html><body>rate limited</body></html>")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.feed, opts)

			var parseErr *codec.ParseError
			assert.True(t, errors.As(err, &parseErr))
		})
	}
}

func TestEncode(t *testing.T) {
	blocks := []model.Block{
		{SourceReference: "b", DateRangeStart: day("2025-07-10"), DateRangeEnd: day("2025-07-12"), Status: model.StatusBlocked},
		{SourceReference: "a", DateRangeStart: day("2025-07-01"), DateRangeEnd: day("2025-07-05"), Status: model.StatusConfirmed},
		{SourceReference: "c", DateRangeStart: day("2025-07-01"), DateRangeEnd: day("2025-07-02"), Status: model.StatusTentative},
	}

	out := string(codec.Encode(blocks, "listing-1"))

	assert.Contains(t, out, "UID:listing-1:a")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250701")
	assert.Contains(t, out, "SUMMARY:Not available")
	assert.Contains(t, out, "STATUS:TENTATIVE")
	assert.Less(t, strings.Index(out, "UID:listing-1:a"), strings.Index(out, "UID:listing-1:c"))
	assert.Less(t, strings.Index(out, "UID:listing-1:c"), strings.Index(out, "UID:listing-1:b"))

	reversed := []model.Block{blocks[2], blocks[1], blocks[0]}
	assert.Equal(t, out, string(codec.Encode(reversed, "listing-1")))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	original := feed(
		event("UID:1", "DTSTART;VALUE=DATE:20250701", "DTEND;VALUE=DATE:20250703", "SUMMARY:Reserved"),
		event("UID:2", "DTSTART;VALUE=DATE:20250705", "DTEND;VALUE=DATE:20250707", "SUMMARY:Not available"),
		event("UID:3", "DTSTART;VALUE=DATE:20250709", "DTEND;VALUE=DATE:20250710", "STATUS:TENTATIVE"),
	)

	first, err := codec.Decode(original, opts)
	require.NoError(t, err)

	exported := codec.Encode(first.Blocks, "listing-1")

	second, err := codec.Decode(exported, opts)
	require.NoError(t, err)
	require.Len(t, second.Blocks, len(first.Blocks))

	for i := range first.Blocks {
		assert.Equal(t, first.Blocks[i].Range(), second.Blocks[i].Range())
		assert.Equal(t, first.Blocks[i].Status, second.Blocks[i].Status)
		assert.Equal(t, "listing-1:"+first.Blocks[i].SourceReference, second.Blocks[i].SourceReference)
	}

	assert.Equal(t, exported, codec.Encode(first.Blocks, "listing-1"))
}
