package ledger

import (
	"errors"
	"strings"
	"time"
)

// Clock is a time-of-day stored as minutes since midnight, so slot
// comparison ignores display formatting.
type Clock int

var errBadClock = errors.New("unrecognized time of day")

// Accepted input shapes, tried in order: "2:00 PM", "14:00", "2 PM".
var clockLayouts = []string{"3:04 PM", "15:04", "3 PM"}

// ParseClock parses a user-supplied time string. Dots and case are
// tolerated ("2 p.m."); a bare hour implies :00.
func ParseClock(raw string) (Clock, error) {
	cleaned := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), ".", ""))
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, cleaned)
		if err != nil {
			continue
		}
		return Clock(t.Hour()*60 + t.Minute()), nil
	}
	return 0, errBadClock
}

// String renders the canonical 12-hour form with no leading zero ("2:00 PM").
func (c Clock) String() string {
	t := time.Date(0, 1, 1, int(c)/60, int(c)%60, 0, 0, time.UTC)
	return t.Format("3:04 PM")
}

// Canonical re-renders any parseable time string into canonical form.
// Unparseable input is returned unchanged.
func Canonical(raw string) string {
	c, err := ParseClock(raw)
	if err != nil {
		return raw
	}
	return c.String()
}
