// Package player implements profile-level transitions: the daily check-in
// claim, the lazy day-rollover with absence penalties, and full reset.
package player

import (
	"errors"
	"time"

	"levelup/internal/config"
	"levelup/internal/model"
)

var ErrAlreadyCheckedIn = errors.New("already checked in today")

type CheckInResult struct {
	Date      string `json:"date"`
	XPAwarded int    `json:"xp_awarded"`
}

// CheckIn claims the once-per-day login bonus.
func CheckIn(s *model.State, bal config.Balance, now time.Time) (CheckInResult, error) {
	today := model.DateOf(now)
	if s.Player.CheckedInToday && s.Player.LastLoginDate == today {
		return CheckInResult{}, ErrAlreadyCheckedIn
	}

	s.Player.AddXP(bal.LoginXP)
	s.Player.CheckedInToday = true
	s.Player.LastLoginDate = today

	return CheckInResult{Date: today, XPAwarded: bal.LoginXP}, nil
}

type RolloverResult struct {
	DayChanged     bool `json:"day_changed"`
	DaysMissed     int  `json:"days_missed"` // days beyond the grace window
	PenaltyApplied int  `json:"penalty_applied"`
}

// Rollover is the lazy day-change check, run whenever the document is loaded
// or the app ticks over midnight. When more days than the grace window have
// passed since the last recorded login, each missed day costs a fixed XP
// penalty (floored at zero). The check-in flag is cleared for the new day.
//
// LastLoginDate advances to today once the rollover is processed, so loading
// the document twice on the same day never penalizes twice.
func Rollover(s *model.State, bal config.Balance, now time.Time) RolloverResult {
	today := model.DateOf(now)
	last := s.Player.LastLoginDate
	if last == "" || last == today {
		return RolloverResult{}
	}

	gap := model.DaysBetween(last, today)
	if gap <= 0 {
		// Clock moved backwards (e.g. timezone change); leave the document alone.
		return RolloverResult{}
	}

	res := RolloverResult{DayChanged: true}

	missed := gap - bal.MissedDayGrace
	if missed > 0 {
		res.DaysMissed = missed
		penalty := missed * bal.MissedDayPenalty
		if penalty > s.Player.TotalXP {
			penalty = s.Player.TotalXP
		}
		s.Player.DeductXP(missed * bal.MissedDayPenalty)
		res.PenaltyApplied = penalty
	}

	s.Player.CheckedInToday = false
	s.Player.LastLoginDate = today
	return res
}

// Reset replaces the whole document with defaults. The only operation that
// may lower TotalXP outside a penalty.
func Reset(s *model.State, now time.Time) {
	*s = *model.NewState(now)
}
