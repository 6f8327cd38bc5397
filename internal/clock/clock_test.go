package clock

import (
	"testing"
	"time"
)

func TestDateOf_ConvertsZoneBeforeTruncating(t *testing.T) {
	moscow, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	// 23:30 UTC on March 10 is already March 11 in Moscow.
	late := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	got := DateOf(late, moscow)
	want := time.Date(2025, 3, 11, 0, 0, 0, 0, moscow)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDateOf_EqualityIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 10, 20, 45, 0, 0, time.UTC)
	if !DateOf(morning, time.UTC).Equal(DateOf(evening, time.UTC)) {
		t.Errorf("same civil date must compare equal")
	}
}

func TestNewFixedZone_FallsBackToUTC(t *testing.T) {
	c := NewFixedZone("Mars/Olympus_Mons")
	if c.Location() != time.UTC {
		t.Errorf("unknown zone must fall back to UTC, got %v", c.Location())
	}
}
