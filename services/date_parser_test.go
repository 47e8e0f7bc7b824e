package services

import (
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestParseGermanDateTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "full weekday and zero-padded day",
			input: "Montag, 07. August 2025, 10:00 Uhr",
			want:  time.Date(2025, time.August, 7, 10, 0, 0, 0, time.Local),
		},
		{
			name:  "single digit day and hour",
			input: "Dienstag, 1. Januar 2024, 9:05 Uhr",
			want:  time.Date(2024, time.January, 1, 9, 5, 0, 0, time.Local),
		},
		{
			name:  "uppercase Uhr suffix",
			input: "Freitag, 24. Dezember 2027, 08:30 UHR",
			want:  time.Date(2027, time.December, 24, 8, 30, 0, 0, time.Local),
		},
		{
			name:  "March with umlaut",
			input: "Mittwoch, 15. März 2026, 14:15 Uhr",
			want:  time.Date(2026, time.March, 15, 14, 15, 0, 0, time.Local),
		},
		{
			name:  "leap day",
			input: "Donnerstag, 29. Februar 2024, 10:00 Uhr",
			want:  time.Date(2024, time.February, 29, 10, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseGermanDateTime(tt.input)
			if got == nil {
				t.Fatalf("ParseGermanDateTime(%q) = nil, want %v", tt.input, tt.want)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseGermanDateTime(%q) = %v, want %v", tt.input, *got, tt.want)
			}
		})
	}
}

func TestParseGermanDateTimeRejectsMalformedInput(t *testing.T) {
	inputs := []string{
		"",
		"Montag",
		"Montag, 07. August 2025",
		"Montag, 07. Unknownmonth 2025, 10:00 Uhr",
		"Montag, 07. January 2025, 10:00 Uhr", // English month name
		"Montag, xx. August 2025, 10:00 Uhr",
		"Montag, 07. August zwanzig, 10:00 Uhr",
		"Montag, 07. August 2025, zehn Uhr",
		"Montag, 07. August 2025, 10-00 Uhr",
		"Montag, 07. August 2025 extra, 10:00 Uhr",
		"Montag, 99. August 2025, 10:00 Uhr",
		"Montag, 07. August 2025, 25:00 Uhr",
		"Montag, 31. Februar 2025, 10:00 Uhr",  // normalizes to March 3
		"Montag, 31. April 2025, 10:00 Uhr",    // 30-day month
		"Montag, 29. Februar 2025, 10:00 Uhr",  // not a leap year
	}

	for _, input := range inputs {
		if got := ParseGermanDateTime(input); got != nil {
			t.Errorf("ParseGermanDateTime(%q) = %v, want nil", input, *got)
		}
	}
}

func TestParseGermanDateTimeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("never panics and rejects input with fewer than two commas", prop.ForAll(
		func(s string) bool {
			result := ParseGermanDateTime(s)
			if strings.Count(s, ",") < 2 && result != nil {
				return false
			}
			return true
		},
		gen.AnyString(),
	))

	properties.Property("round trips every month of the year", prop.ForAll(
		func(month int) bool {
			names := []string{
				"Januar", "Februar", "März", "April", "Mai", "Juni",
				"Juli", "August", "September", "Oktober", "November", "Dezember",
			}
			input := "Montag, 10. " + names[month-1] + " 2025, 11:30 Uhr"
			result := ParseGermanDateTime(input)
			return result != nil && int(result.Month()) == month
		},
		gen.IntRange(1, 12),
	))

	properties.TestingRun(t)
}
