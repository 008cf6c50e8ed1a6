package config

import (
	"os"
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("PORT")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SCHEDULE_DAYS")
	os.Unsetenv("SCHEDULE_SLOT_TIMES")

	c := Load()

	if c.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", c.Server.Port)
	}
	if c.Server.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", c.Server.LogLevel)
	}
	if c.Schedule.Days != 5 {
		t.Fatalf("expected 5 schedule days, got %d", c.Schedule.Days)
	}
	want := []string{"9:00 AM", "10:30 AM", "12:00 PM", "2:00 PM", "3:30 PM"}
	if !reflect.DeepEqual(c.Schedule.SlotTimes, want) {
		t.Fatalf("slot times = %v", c.Schedule.SlotTimes)
	}
	if c.Speech.ListenSeconds != 15 {
		t.Fatalf("listen seconds = %d", c.Speech.ListenSeconds)
	}
}

func TestSlotTimesFromEnv(t *testing.T) {
	os.Setenv("SCHEDULE_SLOT_TIMES", " 9:30 AM , 11:00 AM ,")
	defer os.Unsetenv("SCHEDULE_SLOT_TIMES")

	c := Load()
	want := []string{"9:30 AM", "11:00 AM"}
	if !reflect.DeepEqual(c.Schedule.SlotTimes, want) {
		t.Fatalf("slot times = %v", c.Schedule.SlotTimes)
	}
}
