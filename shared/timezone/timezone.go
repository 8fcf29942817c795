package timezone

import (
	"staysync/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	appLocation = time.UTC
	locations   sync.Map
)

func init() {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load application timezone, using UTC")

		return
	}

	appLocation = loc
	locations.Store(name, loc)
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(appLocation)
}

// ToAppTime converts t to the application timezone.
func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

// GetLocation returns the application timezone.
func GetLocation() *time.Location {
	return appLocation
}

// Load resolves an IANA zone name such as a listing's timezone. Empty or unknown names
// resolve to UTC; lookups are cached since the zone database is read from disk.
func Load(name string) *time.Location {
	if name == "" {
		return time.UTC
	}

	if loc, ok := locations.Load(name); ok {
		return loc.(*time.Location) //nolint:forcetypeassert
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Err(err).Str("timezone", name).Msg("unknown timezone, using UTC")

		loc = time.UTC
	}

	locations.Store(name, loc)

	return loc
}

// Format formats t in the application timezone. Zero times format as an empty string.
func Format(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}

	return ToAppTime(t).Format(layout)
}

// Today returns midnight of the current day in loc, or in the application timezone when loc is nil.
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = appLocation
	}

	now := time.Now().In(loc)

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}
