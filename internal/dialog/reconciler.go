// Package dialog folds ambiguous, partially-specified conversational turns
// into well-formed slot ledger operations and decides what the assistant
// says back.
package dialog

import (
	"fmt"
	"log"
	"time"

	"confido/agent/internal/ledger"
	"confido/agent/internal/types"
)

// Session states for the cross-turn booking machine.
const (
	stateNoBooking  = "NO_BOOKING"
	stateHasBooking = "HAS_BOOKING"
)

// Memory is the per-session current-booking surface the reconciler needs;
// the store satisfies it.
type Memory interface {
	Booking(sessionID string) (types.Booking, bool)
	SetBooking(sessionID string, b types.Booking)
	ClearBooking(sessionID string)
}

// Reconciler resolves one parsed intent per turn against the slot ledger,
// inheriting missing fields from the session's current booking.
type Reconciler struct {
	ledger *ledger.Ledger
	memory Memory
	now    func() time.Time
}

func New(l *ledger.Ledger, m Memory) *Reconciler {
	return &Reconciler{ledger: l, memory: m, now: time.Now}
}

// NewWithClock pins the reconciler's notion of "today"; used by tests.
func NewWithClock(l *ledger.Ledger, m Memory, now func() time.Time) *Reconciler {
	return &Reconciler{ledger: l, memory: m, now: now}
}

// Reply is what the reconciler wants spoken, in order. End marks the
// terminal turn of the call.
type Reply struct {
	Messages []string `json:"messages"`
	End      bool     `json:"end"`
}

func say(msgs ...string) Reply { return Reply{Messages: msgs} }

// Turn processes one conversational turn for a session. Every failure path
// is a conversational message; nothing here returns an error or mutates
// the ledger unless the operation fully resolves.
func (r *Reconciler) Turn(sessionID string, in types.ParsedIntent) Reply {
	metricTurns.WithLabelValues(knownIntent(in.Intent)).Inc()

	prev, hasPrev := r.memory.Booking(sessionID)

	// A follow-up that omits the date means the date we already agreed on.
	date := strVal(in.Date)
	if date == "" && hasPrev && (in.Intent == types.IntentSchedule || in.Intent == types.IntentReschedule) {
		date = prev.Date
	}
	// Only normalize for intents that actually consume a date; an unknown
	// intent with a stray unparsable date still gets the capability summary.
	if date != "" && consumesDate(in.Intent) {
		rolled, err := RollToFuture(date, r.now())
		if err != nil {
			metricClarifications.Inc()
			return say(fmt.Sprintf("I couldn't make sense of the date %q. Could you say it again?", date))
		}
		date = rolled
	}

	switch in.Intent {
	case types.IntentSchedule:
		return r.schedule(sessionID, strVal(in.Name), date, strVal(in.Time))
	case types.IntentReschedule:
		return r.reschedule(sessionID, prev, hasPrev, date, strVal(in.Time))
	case types.IntentCancel:
		return r.cancel(sessionID, prev, hasPrev)
	case types.IntentQuerySlots:
		return r.querySlots(date)
	default:
		return say("I can help with scheduling, rescheduling, cancelling, or checking availability.")
	}
}

func (r *Reconciler) schedule(sessionID, name, date, timeStr string) Reply {
	if name == "" || date == "" || timeStr == "" {
		metricClarifications.Inc()
		return say("I still need the name, date and time to book.")
	}
	res := r.ledger.Book(date, timeStr, name)
	switch res.Status {
	case ledger.BookConfirmed:
		r.setBooking(sessionID, types.Booking{Name: name, Date: date, Time: res.Slot})
		return say(
			fmt.Sprintf("Appointment confirmed for %s on %s at %s.", name, date, res.Slot),
			"Is there anything else I can help you with?",
		)
	case ledger.BookBadTime:
		return say(fmt.Sprintf("I couldn't understand the time %q.", timeStr))
	default:
		return Reply{Messages: append(r.unavailableWith(res), "What time would you prefer?")}
	}
}

// unavailableWith builds the rejection fallback chain: the requested slot
// is gone, then that date's remaining times, then the nearest open slot
// anywhere.
func (r *Reconciler) unavailableWith(res ledger.BookResult) []string {
	msgs := []string{fmt.Sprintf("%s on %s is no longer available.", res.Requested, res.Date)}
	if alt := r.ledger.HumanReadable(res.Date); alt != ledger.NoRemainingTimes {
		msgs = append(msgs, fmt.Sprintf("Available times that day: %s.", alt))
	}
	if d, t, ok := r.ledger.NextAvailable(); ok {
		msgs = append(msgs, fmt.Sprintf("The next available slot is %s at %s.", d, t))
	}
	return msgs
}

func (r *Reconciler) reschedule(sessionID string, prev types.Booking, hasPrev bool, date, timeStr string) Reply {
	if !hasPrev {
		metricClarifications.Inc()
		return say("I don't have an appointment on file. What would you like to schedule?")
	}
	if timeStr == "" {
		metricClarifications.Inc()
		return say("What time would you like for the new appointment?")
	}
	if date == "" {
		date = prev.Date
	}

	// Asking to move onto the slot already held is a no-op.
	if date == prev.Date {
		want, werr := ledger.ParseClock(timeStr)
		have, herr := ledger.ParseClock(prev.Time)
		if werr == nil && herr == nil && want == have {
			return say(
				fmt.Sprintf("You're already booked on %s at %s.", prev.Date, prev.Time),
				"Anything else I can help you with?",
			)
		}
	}

	// Book the new slot before releasing the old one, so a failed move
	// never leaves the caller without an appointment.
	res := r.ledger.Book(date, timeStr, prev.Name)
	switch res.Status {
	case ledger.BookBadTime:
		return say(fmt.Sprintf("I couldn't understand the time %q.", timeStr))
	case ledger.BookUnavailable:
		msgs := r.unavailableWith(res)
		msgs = append(msgs, fmt.Sprintf("You still have your appointment on %s at %s.", prev.Date, prev.Time))
		return Reply{Messages: msgs}
	}

	if c := r.ledger.Cancel(prev.Date, prev.Time, prev.Name); c.Status != ledger.CancelOK {
		log.Printf("[dialog] reschedule: old slot %s %s not released (%s)", prev.Date, prev.Time, c.Status)
	}
	r.setBooking(sessionID, types.Booking{Name: prev.Name, Date: date, Time: res.Slot})
	return say(
		fmt.Sprintf("Appointment confirmed for %s on %s at %s.", prev.Name, date, res.Slot),
		"Anything else I can help you with?",
	)
}

func (r *Reconciler) cancel(sessionID string, prev types.Booking, hasPrev bool) Reply {
	if !hasPrev {
		return say("I don't see an existing appointment to cancel.")
	}
	res := r.ledger.Cancel(prev.Date, prev.Time, prev.Name)
	if res.Status != ledger.CancelOK {
		// Memory and ledger disagree; keep the session state untouched.
		log.Printf("[dialog] cancel: booking %+v missing from ledger (%s)", prev, res.Status)
		return say("I couldn't find that appointment in our system.")
	}
	r.memory.ClearBooking(sessionID)
	metricStateTransitions.WithLabelValues(stateHasBooking, stateNoBooking).Inc()
	return Reply{
		Messages: []string{fmt.Sprintf("Your appointment on %s at %s has been cancelled. Good-bye.", res.Date, res.Slot)},
		End:      true,
	}
}

func (r *Reconciler) querySlots(date string) Reply {
	if date == "" {
		metricClarifications.Inc()
		return say("Which date would you like to check?")
	}
	slots := r.ledger.HumanReadable(date)
	if slots == ledger.NoRemainingTimes {
		return say(fmt.Sprintf("Unfortunately there are no open times on %s.", date))
	}
	return say(fmt.Sprintf("The available times on %s are: %s.", date, slots))
}

func (r *Reconciler) setBooking(sessionID string, b types.Booking) {
	from := stateNoBooking
	if _, ok := r.memory.Booking(sessionID); ok {
		from = stateHasBooking
	}
	metricStateTransitions.WithLabelValues(from, stateHasBooking).Inc()
	r.memory.SetBooking(sessionID, b)
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// consumesDate reports whether the intent's handler reads the date field.
func consumesDate(intent string) bool {
	switch intent {
	case types.IntentSchedule, types.IntentReschedule, types.IntentQuerySlots:
		return true
	}
	return false
}

// knownIntent bounds the metric label space to the recognized tags.
func knownIntent(intent string) string {
	switch intent {
	case types.IntentSchedule, types.IntentReschedule, types.IntentCancel, types.IntentQuerySlots:
		return intent
	}
	return types.IntentUnknown
}
