package services

import (
	"testing"
	"time"
)

func TestDistributionTimestamp_Daylight(t *testing.T) {
	// June 1 is EDT: 9 AM Eastern is 4 hours behind UTC.
	got := DistributionTimestamp(2024, time.June, 1)
	want := time.Date(2024, time.June, 1, 13, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestDistributionTimestamp_Standard(t *testing.T) {
	// December 1 is EST: 9 AM Eastern is 5 hours behind UTC.
	got := DistributionTimestamp(2024, time.December, 1)
	want := time.Date(2024, time.December, 1, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestDistributionTimestamp_TransitionDays(t *testing.T) {
	// 2024 springs forward on March 10 and falls back on November 3.
	// The 2 AM changeover precedes the 9 AM stamp on both days.
	spring := DistributionTimestamp(2024, time.March, 10)
	if !spring.Equal(time.Date(2024, time.March, 10, 13, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected EDT on spring-forward day, got %s", spring)
	}
	fall := DistributionTimestamp(2024, time.November, 3)
	if !fall.Equal(time.Date(2024, time.November, 3, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected EST on fall-back day, got %s", fall)
	}
}

func TestDistributionTimestamp_Stable(t *testing.T) {
	a := DistributionTimestamp(2025, time.July, 1)
	b := DistributionTimestamp(2025, time.July, 1)
	if !a.Equal(b) {
		t.Fatalf("timestamp not stable: %s vs %s", a, b)
	}
}

func TestEasternDaylightFallback(t *testing.T) {
	cases := []struct {
		month time.Month
		day   int
		want  bool
	}{
		{time.January, 15, false},
		{time.March, 9, false},
		{time.March, 10, true},
		{time.July, 4, true},
		{time.November, 1, true},
		{time.November, 2, true},
		{time.November, 3, false},
		{time.December, 25, false},
	}
	for _, c := range cases {
		if got := easternDaylight(2024, c.month, c.day); got != c.want {
			t.Fatalf("easternDaylight(2024, %s, %d) = %v, want %v", c.month, c.day, got, c.want)
		}
	}
}

func TestNthSunday(t *testing.T) {
	if d := nthSunday(2024, time.March, 2); d != 10 {
		t.Fatalf("second Sunday of March 2024 should be the 10th, got %d", d)
	}
	if d := nthSunday(2024, time.November, 1); d != 3 {
		t.Fatalf("first Sunday of November 2024 should be the 3rd, got %d", d)
	}
}
