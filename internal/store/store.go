package store

import (
	"errors"
	"sync"
	"time"

	"confido/agent/internal/types"
)

var ErrSessionExists = errors.New("session already exists")

// Store holds all per-session state for the process lifetime: the session
// records, their event logs, and the single current booking each session
// may carry across turns. Nothing is persisted.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*types.Session
	events   map[string][]types.Event
	bookings map[string]types.Booking
}

func New() *Store {
	return &Store{
		sessions: make(map[string]*types.Session),
		events:   make(map[string][]types.Event),
		bookings: make(map[string]types.Booking),
	}
}

func (s *Store) CreateSession(sess *types.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess.ID]; ok {
		return ErrSessionExists
	}
	s.sessions[sess.ID] = sess
	s.events[sess.ID] = []types.Event{}
	return nil
}

func (s *Store) GetSession(id string) *types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

func (s *Store) ListSessionIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		out = append(out, id)
	}
	return out
}

func (s *Store) AppendEvent(sessionID, typ string, payload map[string]any) types.Event {
	evt := types.Event{Type: typ, Ts: time.Now().UTC(), Payload: payload}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[sessionID] = append(s.events[sessionID], evt)
	// Cap per-session events to avoid unbounded growth over a long call.
	const maxEvents = 200
	if l := len(s.events[sessionID]); l > maxEvents {
		s.events[sessionID] = append([]types.Event(nil), s.events[sessionID][l-maxEvents:]...)
	}
	return evt
}

func (s *Store) ListEvents(sessionID string) []types.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.events[sessionID]
	out := make([]types.Event, len(src))
	copy(out, src)
	return out
}

// SetBooking records the session's confirmed appointment.
func (s *Store) SetBooking(sessionID string, b types.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[sessionID] = b
}

// Booking returns the session's current booking, if one exists.
func (s *Store) Booking(sessionID string) (types.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[sessionID]
	return b, ok
}

func (s *Store) ClearBooking(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bookings, sessionID)
}
