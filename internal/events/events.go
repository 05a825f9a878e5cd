// Package events derives celebration events from state deltas. The reducer
// core never talks to a notifier; callers diff the before/after documents
// and hand the result to whatever presentation layer is listening.
package events

import (
	"fmt"
	"log"

	"levelup/internal/config"
	"levelup/internal/model"
	"levelup/internal/rank"
)

type Type string

const (
	TypeRankUp          Type = "rank_up"
	TypeRankDown        Type = "rank_down"
	TypeStreakMilestone Type = "streak_milestone"
)

type Event struct {
	Type    Type          `json:"type"`
	Message string        `json:"message"`
	Rank    *rank.Rank    `json:"rank,omitempty"`
	HabitID model.HabitID `json:"habit_id,omitempty"`
	Streak  int           `json:"streak,omitempty"`
}

// Diff compares two document snapshots and returns the celebrations (or
// commiserations) the transition earned.
func Diff(before, after *model.State, bal config.Balance) []Event {
	var out []Event

	prev := rank.For(before.Player.TotalXP)
	cur := rank.For(after.Player.TotalXP)
	if cur.Level > prev.Level {
		r := cur
		out = append(out, Event{
			Type:    TypeRankUp,
			Message: fmt.Sprintf("Rank up! You are now %s, %s", r.Name, r.Title),
			Rank:    &r,
		})
	} else if cur.Level < prev.Level {
		r := cur
		out = append(out, Event{
			Type:    TypeRankDown,
			Message: fmt.Sprintf("Rank lost. You are back to %s", r.Name),
			Rank:    &r,
		})
	}

	if bal.StreakMilestone > 0 {
		for id, streak := range after.Streaks {
			if streak > 0 && streak%bal.StreakMilestone == 0 && streak > before.Streaks[id] {
				out = append(out, Event{
					Type:    TypeStreakMilestone,
					Message: fmt.Sprintf("%d-day streak!", streak),
					HabitID: id,
					Streak:  streak,
				})
			}
		}
	}

	return out
}

// Notifier receives derived events. Implementations live in the presentation
// layer (sound, haptics, toasts); the core only ever sees this interface.
type Notifier interface {
	Notify(Event)
}

type NopNotifier struct{}

func (NopNotifier) Notify(Event) {}

// LogNotifier writes events to a logger; the server's default.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) Notify(e Event) {
	if n.Logger == nil {
		return
	}
	n.Logger.Printf("event %s: %s", e.Type, e.Message)
}
