package calendar

import (
	"testing"
	"time"

	"ActionCountdown/internal/domain"
)

func fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestCurrentDayBoundaries(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"start midnight", time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), 1},
		{"end of start day", time.Date(2025, time.October, 1, 23, 59, 59, 0, time.UTC), 1},
		{"second day", time.Date(2025, time.October, 2, 0, 0, 0, 0, time.UTC), 2},
		{"day before start", time.Date(2025, time.September, 30, 12, 0, 0, 0, time.UTC), 0},
		{"week before start", time.Date(2025, time.September, 24, 8, 0, 0, 0, time.UTC), -6},
		{"across month", time.Date(2025, time.November, 1, 9, 30, 0, 0, time.UTC), 32},
	}

	for _, tc := range cases {
		cal := New(start, time.UTC, fixed(tc.now))
		if got := cal.CurrentDay(); got != tc.want {
			t.Fatalf("%s: CurrentDay() = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestCurrentDayUsesCampaignLocation(t *testing.T) {
	t.Parallel()

	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	start := time.Date(2025, time.October, 1, 0, 0, 0, 0, ny)
	// 02:00 UTC on Oct 2 is still Oct 1 in New York
	now := time.Date(2025, time.October, 2, 2, 0, 0, 0, time.UTC)

	if got := New(start, ny, fixed(now)).CurrentDay(); got != 1 {
		t.Fatalf("expected day 1 in New York, got %d", got)
	}
	if got := New(start, time.UTC, fixed(now)).CurrentDay(); got != 2 {
		t.Fatalf("expected day 2 in UTC, got %d", got)
	}
}

func TestCurrentDayAcrossDaylightSaving(t *testing.T) {
	t.Parallel()

	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	start := time.Date(2025, time.November, 1, 0, 0, 0, 0, ny)
	// DST ends Nov 2; Nov 3 must still be day 3
	now := time.Date(2025, time.November, 3, 0, 30, 0, 0, ny)

	if got := New(start, ny, fixed(now)).CurrentDay(); got != 3 {
		t.Fatalf("expected day 3, got %d", got)
	}
}

func TestStartIsNormalizedToMidnight(t *testing.T) {
	t.Parallel()

	cal := New(time.Date(2025, time.October, 1, 15, 4, 5, 0, time.UTC), nil, nil)
	if !cal.Start().Equal(time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", cal.Start())
	}
	if got := cal.DateOf(3).Format("2006-01-02"); got != "2025-10-03" {
		t.Fatalf("DateOf(3) = %s", got)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	want := map[int]domain.DayStatus{
		1: domain.StatusPast,
		2: domain.StatusToday,
		3: domain.StatusFuture,
	}
	for date, status := range want {
		if got := Classify(date, 2); got != status {
			t.Fatalf("Classify(%d, 2) = %s, want %s", date, got, status)
		}
	}

	if !Classify(1, 2).IsPast() || Classify(3, 2).IsPast() || Classify(3, 2).IsToday() {
		t.Fatalf("unexpected predicate results")
	}
}
