package schedule

import (
	"testing"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

func TestTimeToMinutes(t *testing.T) {
	cases := []struct {
		time string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"09:30", 570},
		{"23:59", 1439},
	}

	for _, c := range cases {
		if got := TimeToMinutes(c.time); got != c.want {
			t.Fatalf("TimeToMinutes(%q) = %d, want %d", c.time, got, c.want)
		}
	}
}

func TestMinutesToTimeRoundTrip(t *testing.T) {
	for minutes := 0; minutes < 24*60; minutes += 7 {
		formatted := MinutesToTime(minutes)
		if got := TimeToMinutes(formatted); got != minutes {
			t.Fatalf("round trip of %d via %q gave %d", minutes, formatted, got)
		}
	}
}

func TestMinutesToTimeZeroPadded(t *testing.T) {
	if got := MinutesToTime(545); got != "09:05" {
		t.Fatalf("expected zero-padded 09:05, got %q", got)
	}
}

func TestAddMinutesToTime(t *testing.T) {
	if got := AddMinutesToTime("09:45", 30); got != "10:15" {
		t.Fatalf("expected 10:15, got %q", got)
	}
}

func TestCombineDateAndTimeZeroesSeconds(t *testing.T) {
	date := time.Date(2024, 6, 10, 13, 37, 42, 999, time.UTC)
	combined := CombineDateAndTime(date, "09:30")

	if combined.Hour() != 9 || combined.Minute() != 30 {
		t.Fatalf("expected 09:30, got %02d:%02d", combined.Hour(), combined.Minute())
	}
	if combined.Second() != 0 || combined.Nanosecond() != 0 {
		t.Fatalf("expected seconds and nanoseconds zeroed, got %d.%d", combined.Second(), combined.Nanosecond())
	}
	if combined.Year() != 2024 || combined.Month() != 6 || combined.Day() != 10 {
		t.Fatalf("date part changed: %v", combined)
	}
}

func TestCalculateSequentialEndTime(t *testing.T) {
	services := []*domain.Service{
		{ID: 1, Duration: 60},
		{ID: 2, Duration: 45},
		{ID: 3, Duration: 30},
	}

	if got := CalculateSequentialEndTime("09:00", services); got != "11:15" {
		t.Fatalf("expected 11:15, got %q", got)
	}
}
