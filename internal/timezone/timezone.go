package timezone

import (
	"os"
	"time"
)

// Default is the timezone used for barbers whose profile does not set one.
// Overridable at process start; appointments themselves are stored in UTC.
var Default = loadDefault()

func loadDefault() string {
	if tz := os.Getenv("APP_TIMEZONE"); tz != "" {
		if _, err := time.LoadLocation(tz); err == nil {
			return tz
		}
	}
	return "America/Sao_Paulo"
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(Default)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(Default))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
