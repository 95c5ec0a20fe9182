package leave

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", date(2025, 9, 10), date(2025, 9, 10), 1},
		{"full week", date(2025, 9, 8), date(2025, 9, 14), 7},
		{"across month boundary", date(2025, 9, 29), date(2025, 10, 2), 4},
		{"end before start", date(2025, 9, 10), date(2025, 9, 9), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateDays(tt.start, tt.end); got != tt.want {
				t.Fatalf("CalculateDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	if !Overlaps(date(2025, 9, 1), date(2025, 9, 5), date(2025, 9, 5), date(2025, 9, 10)) {
		t.Fatal("ranges sharing one day should overlap")
	}
	if Overlaps(date(2025, 9, 1), date(2025, 9, 5), date(2025, 9, 6), date(2025, 9, 10)) {
		t.Fatal("adjacent ranges should not overlap")
	}
}

func TestCoversDate(t *testing.T) {
	if !CoversDate("2025-09-01", "2025-09-05", date(2025, 9, 3)) {
		t.Fatal("day inside range should be covered")
	}
	if CoversDate("2025-09-01", "2025-09-05", date(2025, 9, 6)) {
		t.Fatal("day after range should not be covered")
	}
	if CoversDate("bad", "2025-09-05", date(2025, 9, 3)) {
		t.Fatal("unparseable start should not cover")
	}
}
