package model

import (
	"math"
	"time"
)

// YMD is the calendar-date layout used throughout the state document.
// Dates are always local: a habit checked off at 23:50 belongs to that day.
const YMD = "2006-01-02"

func DateOf(t time.Time) string {
	return t.In(time.Local).Format(YMD)
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(YMD, s, time.Local)
}

// PrevDate returns the calendar day before s. Invalid input is returned
// unchanged so a malformed log entry breaks a streak instead of a walk.
func PrevDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.AddDate(0, 0, -1).Format(YMD)
}

// DaysBetween returns to - from in whole calendar days (negative when to is
// earlier). Both must be YMD strings; invalid input counts as zero days.
func DaysBetween(from, to string) int {
	a, err := ParseDate(from)
	if err != nil {
		return 0
	}
	b, err := ParseDate(to)
	if err != nil {
		return 0
	}
	// Round so a DST-shortened or -lengthened day still counts as one day.
	return int(math.Round(b.Sub(a).Hours() / 24))
}
