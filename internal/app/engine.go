// Package app wires the pure transition functions to persistence, telemetry
// and notifications. Every operation follows the same shape: load a snapshot,
// run the day rollover, apply the transition, persist, then report.
package app

import (
	"time"

	"levelup/internal/config"
	"levelup/internal/events"
	"levelup/internal/habit"
	"levelup/internal/model"
	"levelup/internal/player"
	"levelup/internal/quest"
	"levelup/internal/reward"
	"levelup/internal/state"
	"levelup/internal/telemetry"
)

type Engine struct {
	States    *state.FileRepo
	Balance   config.Balance
	Telemetry telemetry.Repository
	Notifier  events.Notifier
	Clock     Clock
}

func (e *Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

// record is best-effort; a telemetry failure never fails the operation.
func (e *Engine) record(t telemetry.EventType, md telemetry.EventMetadata) {
	if e.Telemetry == nil {
		return
	}
	_ = e.Telemetry.RecordEvent(t, md)
}

func (e *Engine) notify(before, after *model.State) {
	evs := events.Diff(before, after, e.Balance)
	for _, ev := range evs {
		if ev.Type == events.TypeRankUp {
			e.record(telemetry.EventRankUp, telemetry.EventMetadata{"rank": ev.Rank.Name})
		}
	}
	if e.Notifier == nil {
		return
	}
	for _, ev := range evs {
		e.Notifier.Notify(ev)
	}
}

// tick applies the lazy day rollover to a loaded snapshot.
func (e *Engine) tick(s *model.State, now time.Time) player.RolloverResult {
	roll := player.Rollover(s, e.Balance, now)
	if roll.DayChanged {
		e.record(telemetry.EventDayRollover, telemetry.EventMetadata{
			"days_missed": roll.DaysMissed,
			"penalty":     roll.PenaltyApplied,
		})
	}
	return roll
}

// keepTick persists a snapshot that carries only rollover changes. Used on
// the error path: the transition failed validation and left the document
// untouched, but a day change still has to land on disk.
func (e *Engine) keepTick(s *model.State, roll player.RolloverResult) {
	if roll.DayChanged {
		_ = e.States.Put(s)
	}
}

// State returns the current document with the day rollover applied.
func (e *Engine) State() (*model.State, error) {
	now := e.now()
	s := e.States.Get()
	before := s.Clone()
	roll := e.tick(s, now)
	if roll.DayChanged {
		if err := e.States.Put(s); err != nil {
			return nil, err
		}
		e.notify(before, s)
	}
	return s, nil
}

func (e *Engine) AddQuest(d quest.Draft) (model.Quest, error) {
	now := e.now()
	s := e.States.Get()
	roll := e.tick(s, now)
	q, err := quest.Add(s, d, e.Balance, now)
	if err != nil {
		e.keepTick(s, roll)
		return model.Quest{}, err
	}
	if err := e.States.Put(s); err != nil {
		return model.Quest{}, err
	}
	e.record(telemetry.EventQuestCreated, telemetry.EventMetadata{
		"quest_id": string(q.ID),
		"threat":   string(q.Threat),
	})
	return q, nil
}

func (e *Engine) CompleteQuest(id model.QuestID) (quest.CompleteResult, error) {
	now := e.now()
	s := e.States.Get()
	before := s.Clone()
	roll := e.tick(s, now)
	res, err := quest.Complete(s, id, now)
	if err != nil {
		e.keepTick(s, roll)
		return quest.CompleteResult{}, err
	}
	if err := e.States.Put(s); err != nil {
		return quest.CompleteResult{}, err
	}
	e.record(telemetry.EventQuestCompleted, telemetry.EventMetadata{
		"quest_id": string(id),
		"xp":       res.XPAwarded,
		"gold":     res.GoldAwarded,
	})
	e.notify(before, s)
	return res, nil
}

func (e *Engine) FailQuest(id model.QuestID, reason model.FailReason) (quest.FailResult, error) {
	now := e.now()
	s := e.States.Get()
	before := s.Clone()
	roll := e.tick(s, now)
	res, err := quest.Fail(s, id, reason, now)
	if err != nil {
		e.keepTick(s, roll)
		return quest.FailResult{}, err
	}
	if err := e.States.Put(s); err != nil {
		return quest.FailResult{}, err
	}
	e.record(telemetry.EventQuestFailed, telemetry.EventMetadata{
		"quest_id": string(id),
		"xp_lost":  res.XPLost,
		"reason":   string(res.Quest.FailReason),
	})
	e.notify(before, s)
	return res, nil
}

func (e *Engine) DeleteQuest(id model.QuestID) error {
	now := e.now()
	s := e.States.Get()
	roll := e.tick(s, now)
	if err := quest.Delete(s, id); err != nil {
		e.keepTick(s, roll)
		return err
	}
	return e.States.Put(s)
}

func (e *Engine) UndoQuest(id model.QuestID, completedAt time.Time) (quest.UndoResult, error) {
	now := e.now()
	s := e.States.Get()
	before := s.Clone()
	roll := e.tick(s, now)
	res, err := quest.Undo(s, id, completedAt, now)
	if err != nil {
		e.keepTick(s, roll)
		return quest.UndoResult{}, err
	}
	if err := e.States.Put(s); err != nil {
		return quest.UndoResult{}, err
	}
	e.record(telemetry.EventQuestUndone, telemetry.EventMetadata{
		"quest_id": string(id),
		"restored": res.QuestRestored,
	})
	e.notify(before, s)
	return res, nil
}

// ActiveQuests lists pending quests in board order.
func (e *Engine) ActiveQuests() ([]model.Quest, error) {
	s, err := e.State()
	if err != nil {
		return nil, err
	}
	return quest.ActiveSorted(s), nil
}

func (e *Engine) AddHabit(name, icon string) (model.Habit, error) {
	now := e.now()
	s := e.States.Get()
	roll := e.tick(s, now)
	h, err := habit.Add(s, name, icon)
	if err != nil {
		e.keepTick(s, roll)
		return model.Habit{}, err
	}
	if err := e.States.Put(s); err != nil {
		return model.Habit{}, err
	}
	return h, nil
}

func (e *Engine) DeleteHabit(id model.HabitID) error {
	now := e.now()
	s := e.States.Get()
	roll := e.tick(s, now)
	if err := habit.Delete(s, id); err != nil {
		e.keepTick(s, roll)
		return err
	}
	return e.States.Put(s)
}

// ToggleHabit flips a habit's completion for the given local day. An empty
// date means today.
func (e *Engine) ToggleHabit(id model.HabitID, date string) (habit.ToggleResult, error) {
	now := e.now()
	if date == "" {
		date = model.DateOf(now)
	}
	s := e.States.Get()
	before := s.Clone()
	roll := e.tick(s, now)
	res, err := habit.Toggle(s, id, date, e.Balance)
	if err != nil {
		e.keepTick(s, roll)
		return habit.ToggleResult{}, err
	}
	if err := e.States.Put(s); err != nil {
		return habit.ToggleResult{}, err
	}
	e.record(telemetry.EventHabitToggled, telemetry.EventMetadata{
		"habit_id":  string(id),
		"completed": res.CompletedNow,
		"streak":    res.Streak,
		"xp":        res.XPAwarded,
	})
	e.notify(before, s)
	return res, nil
}

func (e *Engine) AddReward(d reward.Draft) (model.Reward, error) {
	now := e.now()
	s := e.States.Get()
	roll := e.tick(s, now)
	r, err := reward.Add(s, d)
	if err != nil {
		e.keepTick(s, roll)
		return model.Reward{}, err
	}
	if err := e.States.Put(s); err != nil {
		return model.Reward{}, err
	}
	return r, nil
}

func (e *Engine) DeleteReward(id model.RewardID) error {
	now := e.now()
	s := e.States.Get()
	roll := e.tick(s, now)
	if err := reward.Delete(s, id); err != nil {
		e.keepTick(s, roll)
		return err
	}
	return e.States.Put(s)
}

func (e *Engine) BuyReward(id model.RewardID) (reward.BuyResult, error) {
	now := e.now()
	s := e.States.Get()
	roll := e.tick(s, now)
	res, err := reward.Buy(s, id)
	if err != nil {
		e.keepTick(s, roll)
		return reward.BuyResult{}, err
	}
	if err := e.States.Put(s); err != nil {
		return reward.BuyResult{}, err
	}
	e.record(telemetry.EventRewardBought, telemetry.EventMetadata{
		"reward_id": string(id),
		"cost":      res.Reward.Cost,
	})
	return res, nil
}

func (e *Engine) CheckIn() (player.CheckInResult, error) {
	now := e.now()
	s := e.States.Get()
	before := s.Clone()
	roll := e.tick(s, now)
	res, err := player.CheckIn(s, e.Balance, now)
	if err != nil {
		e.keepTick(s, roll)
		return player.CheckInResult{}, err
	}
	if err := e.States.Put(s); err != nil {
		return player.CheckInResult{}, err
	}
	e.record(telemetry.EventCheckIn, telemetry.EventMetadata{
		"date": res.Date,
		"xp":   res.XPAwarded,
	})
	e.notify(before, s)
	return res, nil
}

// Rollover forces the day-change check; normally it runs lazily inside every
// other operation.
func (e *Engine) Rollover() (player.RolloverResult, error) {
	now := e.now()
	s := e.States.Get()
	before := s.Clone()
	roll := e.tick(s, now)
	if !roll.DayChanged {
		return roll, nil
	}
	if err := e.States.Put(s); err != nil {
		return player.RolloverResult{}, err
	}
	e.notify(before, s)
	return roll, nil
}

// Reset wipes the document back to defaults.
func (e *Engine) Reset() error {
	now := e.now()
	s := e.States.Get()
	player.Reset(s, now)
	if err := e.States.Put(s); err != nil {
		return err
	}
	e.record(telemetry.EventStateReset, nil)
	return nil
}

// Export renders the current document as a portable backup envelope.
func (e *Engine) Export() ([]byte, error) {
	now := e.now()
	return state.ExportJSON(e.States.Get(), now)
}

// Import replaces the document with a previously exported one.
func (e *Engine) Import(b []byte) error {
	now := e.now()
	s, err := state.Import(b, now)
	if err != nil {
		return err
	}
	if err := e.States.Put(s); err != nil {
		return err
	}
	e.record(telemetry.EventStateImported, telemetry.EventMetadata{
		"quests": len(s.Quests),
		"habits": len(s.Habits),
	})
	return nil
}

// Stats aggregates telemetry into balance numbers.
func (e *Engine) Stats(since time.Time) (telemetry.Stats, error) {
	if e.Telemetry == nil {
		return telemetry.Stats{}, nil
	}
	evs, err := e.Telemetry.GetEvents(since, nil)
	if err != nil {
		return telemetry.Stats{}, err
	}
	return telemetry.CalculateStats(evs, since)
}
