package dialog

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var errBadDate = errors.New("unrecognized date")

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Shapes that carry an explicit year are taken literally.
var yearLayouts = []string{
	"January 2 2006", "Jan 2 2006", "2 January 2006", "2 Jan 2006", "2006/01/02",
}

// Year-less shapes. Numeric forms are day-first ("5/6" is the 5th of June).
var fuzzyLayouts = []string{
	"January 2", "Jan 2", "2 January", "2 Jan", "2-1", "2/1",
}

// RollToFuture normalizes a caller-supplied date expression to ISO
// YYYY-MM-DD. An explicit 4-digit year is honored as-is; a year-less
// month/day is given today's year and advanced a year when that lands
// strictly before today, so a bare "June 5" never books into the past.
func RollToFuture(raw string, today time.Time) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errBadDate
	}
	if isoDate.MatchString(raw) {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return "", errBadDate
		}
		return d.Format("2006-01-02"), nil
	}

	cleaned := strings.ReplaceAll(raw, ",", "")
	for _, layout := range yearLayouts {
		if d, err := time.Parse(layout, cleaned); err == nil {
			return d.Format("2006-01-02"), nil
		}
	}
	for _, layout := range fuzzyLayouts {
		d, err := time.Parse(layout, cleaned)
		if err != nil {
			continue
		}
		guess := time.Date(today.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		if guess.Before(midnight(today)) {
			guess = guess.AddDate(1, 0, 0)
		}
		// time.Date normalizes overflow (Feb 29 in a non-leap year becomes
		// March 1); a day that doesn't exist in the target year is a bad date,
		// not a silent shift.
		if guess.Month() != d.Month() || guess.Day() != d.Day() {
			return "", errBadDate
		}
		return guess.Format("2006-01-02"), nil
	}
	return "", errBadDate
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
