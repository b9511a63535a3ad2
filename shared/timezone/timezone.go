package timezone

import (
	"carrental/config"
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	name := cfg.App.Timezone
	if name == "" {
		name = "UTC"
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC")
		appLocation = time.UTC

		return
	}

	appLocation = loc
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// SetLocation replaces the application timezone and returns the previous one.
func SetLocation(loc *time.Location) *time.Location {
	prev := GetLocation()
	appLocation = loc

	return prev
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// DateOf truncates t to midnight of its calendar day in the application timezone.
func DateOf(t time.Time) time.Time {
	local := ToAppTime(t)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// CalendarDate is DateOf for date-only values such as Postgres DATE columns,
// which arrive as midnight with a zero offset: the day is read in t's own
// location rather than converted first.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, GetLocation())
}

// StartOfMonth returns midnight of the first day of the month containing t.
func StartOfMonth(t time.Time) time.Time {
	local := ToAppTime(t)

	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, local.Location())
}

// DaysBetween counts whole calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(math.Round(DateOf(end).Sub(DateOf(start)).Hours() / 24))
}
