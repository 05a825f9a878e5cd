package habit

import (
	"errors"
	"strings"

	"levelup/internal/config"
	"levelup/internal/model"
)

var ErrNotFound = errors.New("habit not found")

func Add(s *model.State, name, icon string) (model.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Habit{}, errors.New("habit name is required")
	}
	h := model.Habit{ID: model.NewHabitID(), Name: name, Icon: icon}
	s.Habits = append(s.Habits, h)
	return h, nil
}

// Delete removes the habit together with its streak entry and every
// completion-log occurrence.
func Delete(s *model.State, id model.HabitID) error {
	idx := -1
	for i := range s.Habits {
		if s.Habits[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	s.Habits = append(s.Habits[:idx], s.Habits[idx+1:]...)
	delete(s.Streaks, id)
	for date, ids := range s.HabitLog {
		kept := ids[:0]
		for _, h := range ids {
			if h != id {
				kept = append(kept, h)
			}
		}
		s.HabitLog[date] = kept
	}
	return nil
}

type ToggleResult struct {
	Habit        model.Habit `json:"habit"`
	CompletedNow bool        `json:"completed_now"` // false when the toggle un-completed the day
	Streak       int         `json:"streak"`
	XPAwarded    int         `json:"xp_awarded"`
	GoldAwarded  int         `json:"gold_awarded"`
	Milestone    bool        `json:"milestone"` // streak landed on a milestone multiple
}

// Toggle flips the habit's completion for the given local calendar day.
// Completing awards gold and XP and bumps counters; un-completing only
// removes the log entry and recomputes the streak (earlier awards stand, so
// total XP stays monotonic).
func Toggle(s *model.State, id model.HabitID, date string, bal config.Balance) (ToggleResult, error) {
	h := s.Habit(id)
	if h == nil {
		return ToggleResult{}, ErrNotFound
	}
	if _, err := model.ParseDate(date); err != nil {
		return ToggleResult{}, errors.New("invalid date")
	}

	res := ToggleResult{Habit: *h}

	if loggedOn(s.HabitLog, date, id) {
		ids := s.HabitLog[date]
		kept := ids[:0]
		for _, x := range ids {
			if x != id {
				kept = append(kept, x)
			}
		}
		s.HabitLog[date] = kept
	} else {
		s.HabitLog[date] = append(s.HabitLog[date], id)
		s.Player.TotalHabitsCompleted++
		s.Player.Gold += bal.HabitGold
		s.Player.AddXP(bal.HabitXP)
		res.CompletedNow = true
		res.XPAwarded = bal.HabitXP
		res.GoldAwarded = bal.HabitGold
	}

	streak := RecomputeStreak(s.HabitLog, id, date)
	s.Streaks[id] = streak
	res.Streak = streak

	if streak > s.Player.LongestStreak {
		s.Player.LongestStreak = streak
	}
	if res.CompletedNow && bal.StreakMilestone > 0 && streak > 0 && streak%bal.StreakMilestone == 0 {
		res.Milestone = true
	}

	return res, nil
}
