package quest

import (
	"time"

	"levelup/internal/model"
)

type CompleteResult struct {
	Quest       model.Quest `json:"quest"`
	XPAwarded   int         `json:"xp_awarded"`
	GoldAwarded int         `json:"gold_awarded"`
}

// Complete moves an active quest to its completed terminal state, credits
// the player and appends a snapshot to the quest log.
func Complete(s *model.State, id model.QuestID, now time.Time) (CompleteResult, error) {
	q := s.Quest(id)
	if q == nil {
		return CompleteResult{}, ErrNotFound
	}
	if !q.Active() {
		return CompleteResult{}, ErrNotActive
	}

	completedAt := now
	q.Completed = true
	q.CompletedAt = &completedAt

	s.Player.AddXP(q.Reward)
	s.Player.Gold += q.GoldReward
	s.Player.TotalQuestsCompleted++

	s.QuestLog = append(s.QuestLog, *q)

	return CompleteResult{Quest: *q, XPAwarded: q.Reward, GoldAwarded: q.GoldReward}, nil
}

type FailResult struct {
	Quest  model.Quest `json:"quest"`
	XPLost int         `json:"xp_lost"` // actual deduction, after the zero floor
}

// Fail moves an active quest to its failed terminal state and deducts the
// penalty XP, floored at zero. Gold is untouched.
func Fail(s *model.State, id model.QuestID, reason model.FailReason, now time.Time) (FailResult, error) {
	q := s.Quest(id)
	if q == nil {
		return FailResult{}, ErrNotFound
	}
	if !q.Active() {
		return FailResult{}, ErrNotActive
	}
	if reason == "" {
		reason = model.FailManual
	}

	failedAt := now
	q.Failed = true
	q.CompletedAt = &failedAt
	q.FailReason = reason

	lost := q.Penalty
	if lost > s.Player.TotalXP {
		lost = s.Player.TotalXP
	}
	s.Player.DeductXP(q.Penalty)
	q.XPLost = lost

	s.QuestLog = append(s.QuestLog, *q)

	return FailResult{Quest: *q, XPLost: lost}, nil
}

// Delete removes the quest from the live collection regardless of lifecycle
// state. Historical log entries survive, and already-applied rewards or
// penalties are not reversed.
func Delete(s *model.State, id model.QuestID) error {
	for i := range s.Quests {
		if s.Quests[i].ID == id {
			s.Quests = append(s.Quests[:i], s.Quests[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type UndoResult struct {
	// QuestRestored is false when the live quest was deleted after logging;
	// the economy effects are still reversed.
	QuestRestored bool        `json:"quest_restored"`
	Entry         model.Quest `json:"entry"`
}

// Undo reverses a terminal quest-log entry: XP, gold and counters applied by
// the original completion or failure are compensated, the (id, completed_at)
// entry leaves the log, and the live quest (when still present) returns to
// the active state.
//
// Undo is refused once the quest's due date is strictly in the past,
// comparing calendar days.
func Undo(s *model.State, id model.QuestID, completedAt time.Time, now time.Time) (UndoResult, error) {
	idx := -1
	for i := range s.QuestLog {
		e := s.QuestLog[i]
		if e.ID == id && e.CompletedAt != nil && e.CompletedAt.Equal(completedAt) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return UndoResult{}, ErrEntryNotFound
	}
	entry := s.QuestLog[idx]

	if entry.DueDate != nil && *entry.DueDate < model.DateOf(now) {
		return UndoResult{}, ErrUndoLocked
	}

	if entry.Completed {
		s.Player.DeductXP(entry.Reward)
		s.Player.Gold -= entry.GoldReward
		if s.Player.Gold < 0 {
			s.Player.Gold = 0
		}
		if s.Player.TotalQuestsCompleted > 0 {
			s.Player.TotalQuestsCompleted--
		}
	} else if entry.Failed {
		// Refund what the failure actually took, which may be less than the
		// nominal penalty because of the zero floor.
		s.Player.AddXP(entry.XPLost)
	}

	s.QuestLog = append(s.QuestLog[:idx], s.QuestLog[idx+1:]...)

	res := UndoResult{Entry: entry}
	if q := s.Quest(id); q != nil {
		q.Completed = false
		q.Failed = false
		q.CompletedAt = nil
		q.FailReason = ""
		q.XPLost = 0
		res.QuestRestored = true
	}
	return res, nil
}
