package leave

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", date(2025, 6, 2), date(2025, 6, 2), 1},
		{"work week", date(2025, 6, 2), date(2025, 6, 6), 5},
		{"across month boundary", date(2025, 6, 28), date(2025, 7, 2), 5},
		{"across year boundary", date(2025, 12, 30), date(2026, 1, 2), 4},
		{"time of day ignored", date(2025, 6, 2).Add(23 * time.Hour), date(2025, 6, 3), 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DaysBetween(c.start, c.end); got != c.want {
				t.Errorf("DaysBetween(%v, %v) = %d, want %d", c.start, c.end, got, c.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical", date(2025, 6, 2), date(2025, 6, 6), date(2025, 6, 2), date(2025, 6, 6), true},
		{"shared edge day", date(2025, 6, 2), date(2025, 6, 6), date(2025, 6, 6), date(2025, 6, 9), true},
		{"contained", date(2025, 6, 1), date(2025, 6, 30), date(2025, 6, 10), date(2025, 6, 12), true},
		{"adjacent", date(2025, 6, 2), date(2025, 6, 6), date(2025, 6, 7), date(2025, 6, 9), false},
		{"disjoint", date(2025, 6, 2), date(2025, 6, 6), date(2025, 7, 1), date(2025, 7, 3), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Overlaps(c.aStart, c.aEnd, c.bStart, c.bEnd); got != c.want {
				t.Errorf("Overlaps(%v..%v, %v..%v) = %v, want %v", c.aStart, c.aEnd, c.bStart, c.bEnd, got, c.want)
			}
			// symmetry
			if got := Overlaps(c.bStart, c.bEnd, c.aStart, c.aEnd); got != c.want {
				t.Errorf("Overlaps symmetry broken for %s", c.name)
			}
		})
	}
}
