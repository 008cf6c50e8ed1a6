package ledger

import (
	"sort"
	"strings"
	"sync"
	"time"
)

type BookStatus int

const (
	BookConfirmed BookStatus = iota
	BookUnavailable
	BookBadTime
)

func (s BookStatus) String() string {
	switch s {
	case BookConfirmed:
		return "confirmed"
	case BookUnavailable:
		return "unavailable"
	default:
		return "bad_time"
	}
}

// BookResult is the tagged outcome of a booking attempt. Requested carries
// the canonical rendering of the asked-for time so callers never surface a
// raw 24-hour string.
type BookResult struct {
	Status    BookStatus
	Name      string
	Date      string
	Slot      string // exact inventory slot string that was booked
	Requested string
}

type CancelStatus int

const (
	CancelOK CancelStatus = iota
	CancelNotFound
	CancelBadTime
)

func (s CancelStatus) String() string {
	switch s {
	case CancelOK:
		return "cancelled"
	case CancelNotFound:
		return "not_found"
	default:
		return "bad_time"
	}
}

type CancelResult struct {
	Status CancelStatus
	Date   string
	Slot   string
}

// NoRemainingTimes is the sentinel returned by HumanReadable for a date
// with no open slots.
const NoRemainingTimes = "no remaining times"

// Ledger owns the per-date slot inventory and the booked map. A slot lives
// in exactly one of the two for any date that has ever been touched; Book
// and Cancel move it between them in a single critical section.
type Ledger struct {
	mu        sync.Mutex
	available map[string][]string          // date -> open slot strings, ascending
	booked    map[string]map[string]string // date -> slot -> caller name
}

// New builds a ledger from a date -> slot-times inventory. Slots are
// copied and sorted ascending by time-of-day.
func New(inventory map[string][]string) *Ledger {
	l := &Ledger{
		available: make(map[string][]string, len(inventory)),
		booked:    make(map[string]map[string]string),
	}
	for date, slots := range inventory {
		cp := append([]string(nil), slots...)
		sortSlots(cp)
		l.available[date] = cp
	}
	return l
}

// DefaultTimes is the standard five-slot day used when seeding.
var DefaultTimes = []string{"9:00 AM", "10:30 AM", "12:00 PM", "2:00 PM", "3:30 PM"}

// Seed builds an inventory of consecutive dates starting at from, each
// offering the given slot times.
func Seed(days int, times []string, from time.Time) map[string][]string {
	if len(times) == 0 {
		times = DefaultTimes
	}
	inv := make(map[string][]string, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i).Format("2006-01-02")
		inv[date] = append([]string(nil), times...)
	}
	return inv
}

// Available returns the open slots for a date in ascending order. Unknown
// or exhausted dates yield an empty slice, not an error.
func (l *Ledger) Available(date string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.available[date]...)
}

// Book moves a matching slot from the inventory to the booked map under
// the caller's name. The remove and the add happen inside one critical
// section so no observer sees a slot as both open and booked, or neither.
func (l *Ledger) Book(date, timeStr, name string) BookResult {
	target, err := ParseClock(timeStr)
	if err != nil {
		metricBadTimes.Inc()
		return BookResult{Status: BookBadTime, Name: name, Date: date, Requested: timeStr}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	slots := l.available[date]
	for i, slot := range slots {
		key, err := ParseClock(slot)
		if err != nil || key != target {
			continue
		}
		l.available[date] = append(append([]string(nil), slots[:i]...), slots[i+1:]...)
		if l.booked[date] == nil {
			l.booked[date] = make(map[string]string)
		}
		l.booked[date][slot] = name
		metricBookings.Inc()
		return BookResult{Status: BookConfirmed, Name: name, Date: date, Slot: slot, Requested: target.String()}
	}
	metricBookRejections.Inc()
	return BookResult{Status: BookUnavailable, Name: name, Date: date, Requested: target.String()}
}

// Cancel releases a booked slot back into the inventory. The time must
// match by time-of-day and the recorded name must match exactly; a single
// caller owns a slot, there is no fuzzy identity.
func (l *Ledger) Cancel(date, timeStr, name string) CancelResult {
	target, err := ParseClock(timeStr)
	if err != nil {
		metricBadTimes.Inc()
		return CancelResult{Status: CancelBadTime, Date: date}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for slot, owner := range l.booked[date] {
		key, err := ParseClock(slot)
		if err != nil || key != target || owner != name {
			continue
		}
		delete(l.booked[date], slot)
		l.available[date] = append(l.available[date], slot)
		sortSlots(l.available[date])
		metricCancellations.Inc()
		return CancelResult{Status: CancelOK, Date: date, Slot: slot}
	}
	metricCancelMisses.Inc()
	return CancelResult{Status: CancelNotFound, Date: date}
}

// NextAvailable scans dates in ascending ISO order (chronological for
// YYYY-MM-DD) and returns the earliest open slot, or ok=false when every
// tracked date is exhausted.
func (l *Ledger) NextAvailable() (date, slot string, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	dates := make([]string, 0, len(l.available))
	for d := range l.available {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		if len(l.available[d]) > 0 {
			return d, l.available[d][0], true
		}
	}
	return "", "", false
}

// HumanReadable joins a date's open slots for speech output, or returns
// the NoRemainingTimes sentinel.
func (l *Ledger) HumanReadable(date string) string {
	slots := l.Available(date)
	if len(slots) == 0 {
		return NoRemainingTimes
	}
	return strings.Join(slots, ", ")
}

func sortSlots(slots []string) {
	sort.Slice(slots, func(i, j int) bool {
		a, _ := ParseClock(slots[i])
		b, _ := ParseClock(slots[j])
		return a < b
	})
}
