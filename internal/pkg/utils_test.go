package pkg

import (
	"testing"
	"time"
)

func TestDayString(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		t.Fatal(err)
	}

	// 18:30 UTC is already the next day at UTC+7
	at := time.Date(2026, 1, 10, 18, 30, 0, 0, time.UTC)

	if got := DayString(at, time.UTC); got != "2026-01-10" {
		t.Fatalf("UTC day: got %q", got)
	}
	if got := DayString(at, loc); got != "2026-01-11" {
		t.Fatalf("local day: got %q", got)
	}
	if got := PreviousDayString(at, loc); got != "2026-01-10" {
		t.Fatalf("previous local day: got %q", got)
	}
}

func TestValidDayString(t *testing.T) {
	valid := []string{"2026-01-10", "1999-12-31"}
	for _, day := range valid {
		if !ValidDayString(day) {
			t.Errorf("%q should be valid", day)
		}
	}

	invalid := []string{"", "2026-1-10", "10-01-2026", "2026-13-01", "tomorrow"}
	for _, day := range invalid {
		if ValidDayString(day) {
			t.Errorf("%q should be invalid", day)
		}
	}
}
