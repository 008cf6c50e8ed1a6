package types

import "time"

// Intent tags emitted by the classifier.
const (
	IntentSchedule   = "schedule"
	IntentReschedule = "reschedule"
	IntentCancel     = "cancel"
	IntentQuerySlots = "query_slots"
	IntentUnknown    = "unknown"
)

// ParsedIntent is one conversational turn as structured by the intent
// classifier. A nil field means the caller did not mention it this turn,
// which is distinct from an explicit empty value.
type ParsedIntent struct {
	Intent string  `json:"intent"`
	Name   *string `json:"name,omitempty"`
	Date   *string `json:"date,omitempty"`
	Time   *string `json:"time,omitempty"`
}

// Booking is the caller's one outstanding appointment, the only state
// carried across dialogue turns.
type Booking struct {
	Name string `json:"name"`
	Date string `json:"date"`
	Time string `json:"time"`
}

type Session struct {
	ID        string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}

type Event struct {
	Type    string         `json:"type"`
	Ts      time.Time      `json:"timestamp"`
	Payload map[string]any `json:"payload,omitempty"`
}
