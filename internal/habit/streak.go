// Package habit implements habit bookkeeping: the date-keyed completion log,
// toggle transitions and streak derivation.
package habit

import "levelup/internal/model"

func loggedOn(log map[string][]model.HabitID, date string, id model.HabitID) bool {
	for _, h := range log[date] {
		if h == id {
			return true
		}
	}
	return false
}

// RecomputeStreak walks backward day-by-day from date and counts consecutive
// days the habit was logged, stopping at the first gap. When the habit is not
// logged on date itself the walk starts one day earlier, so a streak "ending
// yesterday" survives until today's completion is missed for real.
//
// Streaks are always recomputed from the log, never adjusted incrementally;
// toggling any day on or off can therefore never drift the counter.
func RecomputeStreak(log map[string][]model.HabitID, id model.HabitID, date string) int {
	d := date
	if !loggedOn(log, d, id) {
		d = model.PrevDate(d)
	}
	n := 0
	for loggedOn(log, d, id) {
		n++
		prev := model.PrevDate(d)
		if prev == d {
			break // unparseable date, stop rather than loop
		}
		d = prev
	}
	return n
}
