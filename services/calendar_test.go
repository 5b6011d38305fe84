package services

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildSegments_PartialFullPartial(t *testing.T) {
	segs := BuildSegments(date(2024, time.January, 15), date(2024, time.March, 20))
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}

	if segs[0].Full || segs[0].Days != 17 || segs[0].DaysInMonth != 31 {
		t.Fatalf("unexpected opening segment: %+v", segs[0])
	}
	if !segs[0].Start.Equal(date(2024, time.January, 15)) || !segs[0].End.Equal(date(2024, time.January, 31)) {
		t.Fatalf("unexpected opening segment range: %+v", segs[0])
	}

	if !segs[1].Full || segs[1].Days != 29 {
		t.Fatalf("expected full leap February, got %+v", segs[1])
	}

	if segs[2].Full || segs[2].Days != 20 || segs[2].DaysInMonth != 31 {
		t.Fatalf("unexpected closing segment: %+v", segs[2])
	}
	if !segs[2].End.Equal(date(2024, time.March, 20)) {
		t.Fatalf("unexpected closing segment end: %+v", segs[2])
	}
}

func TestBuildSegments_StartOnFirst(t *testing.T) {
	segs := BuildSegments(date(2024, time.February, 1), date(2024, time.April, 30))
	if len(segs) != 3 {
		t.Fatalf("expected 3 full months, got %d", len(segs))
	}
	for i, seg := range segs {
		if !seg.Full {
			t.Fatalf("segment %d should be full: %+v", i, seg)
		}
	}
}

func TestBuildSegments_WithinOneMonth(t *testing.T) {
	segs := BuildSegments(date(2024, time.April, 10), date(2024, time.April, 20))
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Full || segs[0].Days != 11 || segs[0].DaysInMonth != 30 {
		t.Fatalf("unexpected segment: %+v", segs[0])
	}
}

func TestBuildSegments_EndBeforeStart(t *testing.T) {
	segs := BuildSegments(date(2024, time.May, 10), date(2024, time.May, 9))
	if len(segs) != 0 {
		t.Fatalf("expected empty sequence, got %d segments", len(segs))
	}
}

func TestBuildSegments_SingleDay(t *testing.T) {
	segs := BuildSegments(date(2024, time.May, 10), date(2024, time.May, 10))
	if len(segs) != 1 || segs[0].Days != 1 {
		t.Fatalf("expected one 1-day segment, got %+v", segs)
	}
}

func TestLastCompletedMonthEnd(t *testing.T) {
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		{date(2024, time.March, 15), date(2024, time.February, 29)},
		{date(2024, time.March, 1), date(2024, time.February, 29)},
		{date(2024, time.January, 31), date(2023, time.December, 31)},
	}
	for _, c := range cases {
		got := LastCompletedMonthEnd(c.now)
		if !got.Equal(c.want) {
			t.Fatalf("LastCompletedMonthEnd(%s) = %s, want %s", c.now, got, c.want)
		}
	}
}
