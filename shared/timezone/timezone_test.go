package timezone_test

import (
	"staysync/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		zone string
		want string
	}{
		{name: "listing zone", zone: "Europe/Lisbon", want: "Europe/Lisbon"},
		{name: "empty", zone: "", want: "UTC"},
		{name: "unknown", zone: "Mars/Olympus_Mons", want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := timezone.Load(tt.zone)
			require.NotNil(t, loc)
			assert.Equal(t, tt.want, loc.String())

			// cached lookups return the same location
			assert.Same(t, loc, timezone.Load(tt.zone))
		})
	}
}

func TestToday(t *testing.T) {
	loc := timezone.Load("Pacific/Auckland")
	today := timezone.Today(loc)

	assert.Equal(t, loc, today.Location())
	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())

	assert.Equal(t, timezone.GetLocation(), timezone.Today(nil).Location())
}

func TestFormat(t *testing.T) {
	assert.Empty(t, timezone.Format(time.Time{}, time.RFC3339))

	synced := time.Date(2026, 7, 1, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, synced.In(timezone.GetLocation()).Format(time.RFC3339), timezone.Format(synced, time.RFC3339))
}
