package services

import "time"

// Segment is a contiguous date range aligned to calendar months, the unit
// of interest accrual. Start and End are inclusive UTC midnights. A full
// segment spans an entire calendar month; a partial one spans less and
// carries its day counts for proration.
type Segment struct {
	Start       time.Time
	End         time.Time
	Full        bool
	Days        int
	DaysInMonth int
}

// DateOnly truncates an instant to UTC midnight.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func monthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), daysInMonth(t.Year(), t.Month()), 0, 0, 0, 0, time.UTC)
}

func diffDaysInclusive(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// BuildSegments splits [start, end] (inclusive, UTC midnights) into an
// ordered run of segments: an opening partial when start is not the 1st,
// then whole months, then a closing partial for any remainder. An end
// before start yields an empty slice.
func BuildSegments(start, end time.Time) []Segment {
	start = DateOnly(start)
	end = DateOnly(end)
	if end.Before(start) {
		return nil
	}

	var segs []Segment
	cursor := start

	if cursor.Day() != 1 {
		segEnd := monthEnd(cursor)
		if end.Before(segEnd) {
			segEnd = end
		}
		dim := daysInMonth(cursor.Year(), cursor.Month())
		days := diffDaysInclusive(cursor, segEnd)
		segs = append(segs, Segment{
			Start:       cursor,
			End:         segEnd,
			Full:        false,
			Days:        days,
			DaysInMonth: dim,
		})
		cursor = segEnd.AddDate(0, 0, 1)
	}

	for !cursor.After(end) {
		segEnd := monthEnd(cursor)
		if segEnd.After(end) {
			break
		}
		dim := daysInMonth(cursor.Year(), cursor.Month())
		segs = append(segs, Segment{
			Start:       cursor,
			End:         segEnd,
			Full:        true,
			Days:        dim,
			DaysInMonth: dim,
		})
		cursor = segEnd.AddDate(0, 0, 1)
	}

	if !cursor.After(end) {
		dim := daysInMonth(cursor.Year(), cursor.Month())
		segs = append(segs, Segment{
			Start:       cursor,
			End:         end,
			Full:        false,
			Days:        diffDaysInclusive(cursor, end),
			DaysInMonth: dim,
		})
	}

	return segs
}

// LastCompletedMonthEnd returns the last day of the most recent calendar
// month that has fully elapsed as of the given instant, i.e. the last day
// of the previous month.
func LastCompletedMonthEnd(now time.Time) time.Time {
	d := DateOnly(now)
	return time.Date(d.Year(), d.Month(), 0, 0, 0, 0, 0, time.UTC)
}
