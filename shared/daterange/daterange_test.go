package daterange_test

import (
	"staysync/shared/daterange"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, start, end string) daterange.Range {
	t.Helper()

	r, err := daterange.Parse(start, end)
	require.NoError(t, err)

	return r
}

func TestNew(t *testing.T) {
	_, err := daterange.New(time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), time.Date(2025, 7, 2, 23, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, daterange.ErrEmptyRange)

	r, err := daterange.New(time.Date(2025, 7, 1, 15, 0, 0, 0, time.UTC), time.Date(2025, 7, 4, 11, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3, r.Nights())
	assert.Equal(t, "2025-07-01/2025-07-04", r.String())
}

func TestRange_Overlaps(t *testing.T) {
	base := mustParse(t, "2025-07-01", "2025-07-05")

	tests := []struct {
		name     string
		other    daterange.Range
		expected bool
	}{
		{name: "identical", other: base, expected: true},
		{name: "back to back after", other: mustParse(t, "2025-07-05", "2025-07-08"), expected: false},
		{name: "back to back before", other: mustParse(t, "2025-06-28", "2025-07-01"), expected: false},
		{name: "shares last night", other: mustParse(t, "2025-07-04", "2025-07-06"), expected: true},
		{name: "contained", other: mustParse(t, "2025-07-02", "2025-07-03"), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base.Overlaps(tt.other))
			assert.Equal(t, tt.expected, tt.other.Overlaps(base))
		})
	}
}

func TestRange_IntersectAndDays(t *testing.T) {
	a := mustParse(t, "2025-07-01", "2025-07-05")
	b := mustParse(t, "2025-07-03", "2025-07-10")

	shared, ok := a.Intersect(b)
	require.True(t, ok)
	assert.Equal(t, 2, shared.Nights())
	assert.Len(t, shared.Days(), 2)
	assert.True(t, shared.Contains(time.Date(2025, 7, 4, 22, 0, 0, 0, time.UTC)))
	assert.False(t, shared.Contains(time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)))

	_, ok = a.Intersect(mustParse(t, "2025-07-05", "2025-07-06"))
	assert.False(t, ok)
}
