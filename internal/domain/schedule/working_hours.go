package schedule

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Weekday keys as they appear in stored working-hours documents, indexed by
// time.Weekday (Sunday == 0).
var dayKeys = [7]string{"domingo", "segunda", "terca", "quarta", "quinta", "sexta", "sabado"}

var windowPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)-([01]?\d|2[0-3]):([0-5]\d)$`)

// DayKey maps a weekday to its document key.
func DayKey(d time.Weekday) string {
	return dayKeys[int(d)]
}

func isClosedMarker(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "fechado" || v == "closed"
}

// WorkingHoursDoc is a per-weekday map of "HH:MM-HH:MM" windows or a closed
// marker. A missing day counts as closed. Keys are lowercase; ParseWorkingHours
// normalizes them so lookups agree with what validation accepted.
type WorkingHoursDoc map[string]string

func ParseWorkingHours(raw string) (WorkingHoursDoc, error) {
	var parsed map[string]string
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("invalid working hours document: %w", err)
	}

	doc := make(WorkingHoursDoc, len(parsed))
	for day, window := range parsed {
		doc[strings.ToLower(day)] = window
	}
	return doc, nil
}

// ValidateWorkingHours rejects documents with unknown weekday keys or
// malformed windows. Applied when a profile is written, so only legacy rows
// can carry unparseable documents.
func ValidateWorkingHours(raw string) error {
	doc, err := ParseWorkingHours(raw)
	if err != nil {
		return err
	}

	for day, window := range doc {
		known := false
		for _, k := range dayKeys {
			if day == k {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown weekday %q", day)
		}

		if isClosedMarker(window) {
			continue
		}
		if !windowPattern.MatchString(window) {
			return fmt.Errorf("invalid window %q for %s, want HH:MM-HH:MM or fechado", window, day)
		}
	}
	return nil
}

// Window returns the open interval for a weekday in minutes of day.
// ok is false when the day is closed or absent from the document.
func (d WorkingHoursDoc) Window(weekday time.Weekday) (startMin, endMin int, ok bool) {
	window, present := d[DayKey(weekday)]
	if !present || isClosedMarker(window) {
		return 0, 0, false
	}

	startMin, endMin, err := parseWindow(window)
	if err != nil {
		return 0, 0, false
	}
	return startMin, endMin, true
}

func parseWindow(window string) (startMin, endMin int, err error) {
	if !windowPattern.MatchString(window) {
		return 0, 0, fmt.Errorf("malformed window %q", window)
	}

	parts := strings.SplitN(window, "-", 2)
	startMin, err = minutesOfDay(parts[0])
	if err != nil {
		return 0, 0, err
	}
	endMin, err = minutesOfDay(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return startMin, endMin, nil
}

func minutesOfDay(hm string) (int, error) {
	parts := strings.SplitN(hm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed time %q", hm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// BarberIsWorking reports whether the local instant t falls inside the
// working hours described by rawDoc. A barber with no document at all is open
// by default. An unparseable document or window also permits booking
// (inherited leniency); the parse error is returned so callers can log it.
func BarberIsWorking(rawDoc string, t time.Time) (bool, error) {
	if strings.TrimSpace(rawDoc) == "" {
		return true, nil
	}

	doc, err := ParseWorkingHours(rawDoc)
	if err != nil {
		return true, err
	}

	window, present := doc[DayKey(t.Weekday())]
	if !present || isClosedMarker(window) {
		return false, nil
	}

	startMin, endMin, err := parseWindow(window)
	if err != nil {
		return true, err
	}

	minute := t.Hour()*60 + t.Minute()
	return minute >= startMin && minute < endMin, nil
}
