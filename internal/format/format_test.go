package format

import (
	"testing"
	"time"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "$ 0"},
		{500, "$ 500"},
		{12500, "$ 12.500"},
		{1250000, "$ 1.250.000"},
	}

	for _, tt := range tests {
		if got := Money(tt.amount); got != tt.want {
			t.Fatalf("Money(%d): expected %q, got %q", tt.amount, tt.want, got)
		}
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if id == "" {
			t.Fatalf("expected non-empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestDateKeyTimezoneAware(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 2024-03-02 02:30 UTC is still 2024-03-01 in Bogotá (UTC-5).
	instant := time.Date(2024, 3, 2, 2, 30, 0, 0, time.UTC)
	if got := DateKey(instant, bogota); got != "2024-03-01" {
		t.Fatalf("expected 2024-03-01, got %s", got)
	}
	if got := MonthKey(instant, bogota); got != "2024-03" {
		t.Fatalf("expected 2024-03, got %s", got)
	}
}

func TestDateKeyStableAcrossCallerZone(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	instant := time.Date(2024, 7, 15, 23, 45, 0, 0, time.UTC)
	// The same instant expressed in different wall clocks must produce
	// the same key for a fixed target zone.
	if a, b := DateKey(instant, bogota), DateKey(instant.In(tokyo), bogota); a != b {
		t.Fatalf("expected stable key, got %s vs %s", a, b)
	}
}

func TestLastMonthKey(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2024, 3, 15, 10, 0, 0, 0, bogota), "2024-02"},
		{time.Date(2024, 1, 1, 0, 0, 0, 0, bogota), "2023-12"},
	}
	for _, tt := range tests {
		if got := LastMonthKey(tt.now, bogota); got != tt.want {
			t.Fatalf("LastMonthKey(%s): expected %s, got %s", tt.now, tt.want, got)
		}
	}
}

func TestShortDayLabel(t *testing.T) {
	// 2024-03-04 is a Monday.
	label, err := ShortDayLabel("2024-03-04")
	if err != nil {
		t.Fatalf("short day label: %v", err)
	}
	if label != "lun 4" {
		t.Fatalf("expected 'lun 4', got %q", label)
	}

	if _, err := ShortDayLabel("04/03/2024"); err == nil {
		t.Fatalf("expected error for malformed key")
	}
}
