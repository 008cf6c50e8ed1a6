package dialog

import (
	"testing"
	"time"
)

var refToday = time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)

func TestRollExplicitYearNeverRolled(t *testing.T) {
	// 2025-06-11 is in the past relative to the reference today, but an
	// explicit year is taken literally.
	got, err := RollToFuture("2025-06-11", refToday)
	if err != nil {
		t.Fatalf("RollToFuture: %v", err)
	}
	if got != "2025-06-11" {
		t.Fatalf("explicit year was rolled: %q", got)
	}
}

func TestRollPastMonthDayAdvancesYear(t *testing.T) {
	for _, raw := range []string{"June 5", "5 June", "Jun 5", "5/6"} {
		got, err := RollToFuture(raw, refToday)
		if err != nil {
			t.Fatalf("RollToFuture(%q): %v", raw, err)
		}
		if got != "2026-06-05" {
			t.Fatalf("RollToFuture(%q) = %q, want 2026-06-05", raw, got)
		}
	}
}

func TestRollFutureMonthDayKeepsYear(t *testing.T) {
	got, err := RollToFuture("July 2", refToday)
	if err != nil {
		t.Fatalf("RollToFuture: %v", err)
	}
	if got != "2025-07-02" {
		t.Fatalf("got %q, want 2025-07-02", got)
	}
}

func TestRollTodayNotRolled(t *testing.T) {
	got, err := RollToFuture("June 20", refToday)
	if err != nil {
		t.Fatalf("RollToFuture: %v", err)
	}
	if got != "2025-06-20" {
		t.Fatalf("today should stay put, got %q", got)
	}
}

func TestRollSpelledOutYear(t *testing.T) {
	got, err := RollToFuture("June 11, 2025", refToday)
	if err != nil {
		t.Fatalf("RollToFuture: %v", err)
	}
	if got != "2025-06-11" {
		t.Fatalf("got %q", got)
	}
}

func TestRollRejectsNonexistentDay(t *testing.T) {
	// 2025 isn't a leap year; Feb 29 must not slide to March 1.
	if got, err := RollToFuture("February 29", refToday); err == nil {
		t.Fatalf("February 29 in a non-leap year resolved to %q, want error", got)
	}
}

func TestRollKeepsLeapDayInLeapYear(t *testing.T) {
	leapToday := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	got, err := RollToFuture("February 29", leapToday)
	if err != nil {
		t.Fatalf("RollToFuture: %v", err)
	}
	if got != "2024-02-29" {
		t.Fatalf("got %q, want 2024-02-29", got)
	}
}

func TestRollRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "someday", "13/13"} {
		if _, err := RollToFuture(raw, refToday); err == nil {
			t.Fatalf("RollToFuture(%q) should fail", raw)
		}
	}
}
