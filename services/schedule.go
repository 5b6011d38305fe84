package services

import (
	"sync"
	"time"
)

// Distribution events are stamped at 9:00 AM US Eastern on their scheduled
// day. The resulting UTC instant doubles as part of the event's
// deterministic key, so it must be bit-for-bit stable for a given
// (year, month, day).

var (
	easternOnce sync.Once
	easternLoc  *time.Location
)

func eastern() *time.Location {
	easternOnce.Do(func() {
		loc, err := time.LoadLocation("America/New_York")
		if err == nil {
			easternLoc = loc
		}
	})
	return easternLoc
}

// DistributionTimestamp returns the UTC instant of 09:00 America/New_York
// on the given calendar day. Zone data decides EST vs EDT; when zone data
// is unavailable the second-Sunday-of-March / first-Sunday-of-November
// rule is applied directly.
func DistributionTimestamp(year int, month time.Month, day int) time.Time {
	if loc := eastern(); loc != nil {
		return time.Date(year, month, day, 9, 0, 0, 0, loc).UTC()
	}
	offsetHours := -5 // EST
	if easternDaylight(year, month, day) {
		offsetHours = -4 // EDT
	}
	zone := time.FixedZone("", offsetHours*3600)
	return time.Date(year, month, day, 9, 0, 0, 0, zone).UTC()
}

// easternDaylight reports whether 9 AM on the given day falls in EDT under
// the post-2007 US rule. The 2 AM changeover is before 9 AM, so the
// transition days themselves count toward the new offset.
func easternDaylight(year int, month time.Month, day int) bool {
	switch {
	case month > time.March && month < time.November:
		return true
	case month < time.March || month > time.November:
		return false
	case month == time.March:
		return day >= nthSunday(year, time.March, 2)
	default:
		return day < nthSunday(year, time.November, 1)
	}
}

// nthSunday returns the day of month of the nth Sunday.
func nthSunday(year int, month time.Month, n int) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (7 - int(first.Weekday())) % 7
	return 1 + offset + (n-1)*7
}
