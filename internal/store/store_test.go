package store

import (
	"testing"
	"time"

	"confido/agent/internal/types"
)

func TestCreateAndGetSession(t *testing.T) {
	st := New()
	s := &types.Session{ID: "abc123", CreatedAt: time.Now()}
	if err := st.CreateSession(s); err != nil {
		t.Fatalf("create session: %v", err)
	}
	got := st.GetSession("abc123")
	if got == nil || got.ID != s.ID {
		t.Fatalf("expected session %q, got %#v", s.ID, got)
	}
	if err := st.CreateSession(s); err != ErrSessionExists {
		t.Fatalf("duplicate create should fail, got %v", err)
	}
}

func TestBookingMemory(t *testing.T) {
	st := New()
	if _, ok := st.Booking("s1"); ok {
		t.Fatal("fresh session should carry no booking")
	}
	b := types.Booking{Name: "Alice", Date: "2025-06-11", Time: "9:00 AM"}
	st.SetBooking("s1", b)
	got, ok := st.Booking("s1")
	if !ok || got != b {
		t.Fatalf("Booking = (%+v, %v)", got, ok)
	}
	// Per-session isolation.
	if _, ok := st.Booking("s2"); ok {
		t.Fatal("booking leaked across sessions")
	}
	st.ClearBooking("s1")
	if _, ok := st.Booking("s1"); ok {
		t.Fatal("booking survived clear")
	}
}

func TestAppendAndListEvents(t *testing.T) {
	st := New()
	st.AppendEvent("s1", "utterance", map[string]any{"text": "hi"})
	st.AppendEvent("s1", "reply", nil)
	evts := st.ListEvents("s1")
	if len(evts) != 2 || evts[0].Type != "utterance" || evts[1].Type != "reply" {
		t.Fatalf("unexpected events %+v", evts)
	}
}

func TestEventCap(t *testing.T) {
	st := New()
	for i := 0; i < 250; i++ {
		st.AppendEvent("s1", "turn", nil)
	}
	if n := len(st.ListEvents("s1")); n != 200 {
		t.Fatalf("expected cap at 200 events, got %d", n)
	}
}
