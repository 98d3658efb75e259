package service

import (
	"math"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// LocalTime is a wall-clock instant as observed in a user's timezone.
type LocalTime struct {
	Date    string // YYYY-MM-DD
	Weekday int    // 0=Sunday..6=Saturday
	Time    string // HH:mm, zero-padded
}

// LocalNow converts now to wall-clock values in the given IANA zone.
// Unknown zone names fall back to UTC; ok is false in that case so
// callers can log the bad zone. An empty name means the stored
// default and resolves to UTC without complaint.
func LocalNow(now time.Time, timezone string) (LocalTime, bool) {
	loc := time.UTC
	ok := true
	if timezone != "" {
		if parsed, err := time.LoadLocation(timezone); err == nil {
			loc = parsed
		} else {
			ok = false
		}
	}

	local := now.In(loc)
	return LocalTime{
		Date:    local.Format(dateLayout),
		Weekday: int(local.Weekday()),
		Time:    local.Format(timeLayout),
	}, ok
}

// DayDiff returns the whole-day difference b-a between two local
// calendar date strings. Both parse at UTC midnight, so the result
// does not depend on server timezone or DST transitions; rounding
// absorbs any residue. This is the only day-difference computation in
// the codebase. ok is false when either string is malformed.
func DayDiff(a, b string) (int, bool) {
	ta, err := time.Parse(dateLayout, a)
	if err != nil {
		return 0, false
	}
	tb, err := time.Parse(dateLayout, b)
	if err != nil {
		return 0, false
	}
	return int(math.Round(tb.Sub(ta).Hours() / 24)), true
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD string.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// ValidClock reports whether s is a well-formed zero-padded HH:mm
// string, the format alert times are matched against.
func ValidClock(s string) bool {
	t, err := time.Parse(timeLayout, s)
	return err == nil && t.Format(timeLayout) == s
}
