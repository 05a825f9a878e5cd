package state

import (
	"fmt"
	"time"

	"levelup/internal/habit"
	"levelup/internal/model"
)

// Migrate upgrades an older document to the current schema, once, at load
// time. Reducers always operate on the current shape.
//
// Version history:
//
//	1: no streaks map and no settings block; streaks were derived ad hoc
//	2: current, explicit streaks + settings persisted with the document
func Migrate(s *model.State, now time.Time) error {
	if s.Version > model.SchemaVersion {
		return fmt.Errorf("state document version %d is newer than supported %d", s.Version, model.SchemaVersion)
	}
	if s.Version <= 0 {
		s.Version = 1
	}

	if s.Version == 1 {
		if s.Streaks == nil {
			s.Streaks = map[model.HabitID]int{}
			today := model.DateOf(now)
			for _, h := range s.Habits {
				if n := habit.RecomputeStreak(s.HabitLog, h.ID, today); n > 0 {
					s.Streaks[h.ID] = n
				}
			}
		}
		if len(s.Settings.TabOrder) == 0 {
			s.Settings = model.DefaultSettings()
		}
		s.Version = 2
	}

	return nil
}

// Validate is the schema check at the load/import boundary. Reducers assume
// a valid document and never re-check these.
func Validate(s *model.State) error {
	seen := map[model.QuestID]bool{}
	for _, q := range s.Quests {
		if q.ID == "" {
			return fmt.Errorf("quest with empty id")
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate quest id %s", q.ID)
		}
		seen[q.ID] = true
		if !q.Threat.IsValid() {
			return fmt.Errorf("quest %s: invalid threat level %q", q.ID, q.Threat)
		}
		if q.Completed && q.Failed {
			return fmt.Errorf("quest %s: both completed and failed", q.ID)
		}
		if q.DueDate != nil {
			if _, err := model.ParseDate(*q.DueDate); err != nil {
				return fmt.Errorf("quest %s: bad due date %q", q.ID, *q.DueDate)
			}
		}
	}

	habits := map[model.HabitID]bool{}
	for _, h := range s.Habits {
		if h.ID == "" {
			return fmt.Errorf("habit with empty id")
		}
		if habits[h.ID] {
			return fmt.Errorf("duplicate habit id %s", h.ID)
		}
		habits[h.ID] = true
	}

	for date := range s.HabitLog {
		if _, err := model.ParseDate(date); err != nil {
			return fmt.Errorf("habit log: bad date key %q", date)
		}
	}

	for _, r := range s.Rewards {
		if r.ID == "" {
			return fmt.Errorf("reward with empty id")
		}
		if r.Cost <= 0 {
			return fmt.Errorf("reward %s: cost must be positive", r.ID)
		}
	}

	return nil
}
