package services

import (
	"strconv"
	"strings"
	"time"
)

// germanMonths maps German month names to their calendar number. The portal
// writes dates with full month names, so a fixed table replaces the host
// locale entirely: deployments without a de_DE locale parse exactly the
// same way as German ones.
var germanMonths = map[string]time.Month{
	"Januar":    time.January,
	"Februar":   time.February,
	"März":      time.March,
	"April":     time.April,
	"Mai":       time.May,
	"Juni":      time.June,
	"Juli":      time.July,
	"August":    time.August,
	"September": time.September,
	"Oktober":   time.October,
	"November":  time.November,
	"Dezember":  time.December,
}

// ParseGermanDateTime parses portal timestamps of the form
// "Montag, 07. August 2025, 10:00 Uhr" into a naive local time.
// The weekday segment is ignored. Any structural deviation (missing
// segments, unknown month name, non-numeric tokens) returns nil; the
// caller decides what a missing date means.
func ParseGermanDateTime(s string) *time.Time {
	parts := strings.Split(s, ",")
	if len(parts) < 3 {
		return nil
	}

	// Second segment: "07. August 2025"
	dateTokens := strings.Fields(strings.ReplaceAll(parts[1], ".", ""))
	if len(dateTokens) != 3 {
		return nil
	}

	day, err := strconv.Atoi(dateTokens[0])
	if err != nil {
		return nil
	}
	month, ok := germanMonths[dateTokens[1]]
	if !ok {
		return nil
	}
	year, err := strconv.Atoi(dateTokens[2])
	if err != nil {
		return nil
	}

	// Third segment: "10:00 Uhr"
	timeStr := strings.TrimSpace(parts[2])
	if uhr := strings.ToLower(timeStr); strings.HasSuffix(uhr, "uhr") {
		timeStr = strings.TrimSpace(timeStr[:len(timeStr)-3])
	}
	clockTokens := strings.Split(timeStr, ":")
	if len(clockTokens) != 2 {
		return nil
	}
	hour, err := strconv.Atoi(strings.TrimSpace(clockTokens[0]))
	if err != nil {
		return nil
	}
	minute, err := strconv.Atoi(strings.TrimSpace(clockTokens[1]))
	if err != nil {
		return nil
	}

	if day < 1 || day > 31 || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil
	}

	t := time.Date(year, month, day, hour, minute, 0, 0, time.Local)
	// time.Date normalizes overflow ("31. Februar" becomes March 3); such
	// input is not a real calendar date and must be rejected.
	if t.Day() != day || t.Month() != month {
		return nil
	}
	return &t
}
