package model

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

func TestNormalize_RepairsDocument(t *testing.T) {
	done := testNow
	s := &State{
		Player: Player{TotalXP: -5, Gold: -2, Health: 300},
		QuestLog: []Quest{
			{ID: "quest_a", Completed: true, CompletedAt: &done},
			{ID: "quest_a", Completed: true, CompletedAt: &done},
		},
		HabitLog: map[string][]HabitID{
			"2026-03-09": {"habit_gone", "habit_live"},
		},
		Streaks: map[HabitID]int{"habit_gone": 4, "habit_live": 2},
		Habits:  []Habit{{ID: "habit_live", Name: "read"}},
	}

	s.Normalize()

	if s.Player.TotalXP != 0 || s.Player.Gold != 0 || s.Player.Health != MaxHealth {
		t.Fatalf("player not clamped: %+v", s.Player)
	}
	if len(s.QuestLog) != 1 {
		t.Fatalf("quest log not deduped: %d entries", len(s.QuestLog))
	}
	if got := s.HabitLog["2026-03-09"]; len(got) != 1 || got[0] != "habit_live" {
		t.Fatalf("habit log not pruned: %v", got)
	}
	if _, ok := s.Streaks["habit_gone"]; ok {
		t.Fatal("orphaned streak survived")
	}
	if s.Quests == nil || s.Rewards == nil {
		t.Fatal("nil collections not initialized")
	}
	if len(s.Settings.TabOrder) == 0 {
		t.Fatal("settings not defaulted")
	}
}

func TestClone_IsIndependent(t *testing.T) {
	s := NewState(testNow)
	s.Habits = append(s.Habits, Habit{ID: "habit_a", Name: "stretch"})
	s.HabitLog["2026-03-10"] = []HabitID{"habit_a"}
	s.Streaks["habit_a"] = 3

	c := s.Clone()
	c.Habits[0].Name = "changed"
	c.HabitLog["2026-03-10"][0] = "habit_b"
	c.Streaks["habit_a"] = 99
	c.Settings.TabOrder[0] = "changed"

	if s.Habits[0].Name != "stretch" {
		t.Fatal("habit slice aliased")
	}
	if s.HabitLog["2026-03-10"][0] != "habit_a" {
		t.Fatal("habit log aliased")
	}
	if s.Streaks["habit_a"] != 3 {
		t.Fatal("streaks aliased")
	}
	if s.Settings.TabOrder[0] == "changed" {
		t.Fatal("settings aliased")
	}
}

func TestDateHelpers(t *testing.T) {
	if got := DateOf(testNow); got != "2026-03-10" {
		t.Fatalf("DateOf = %s", got)
	}
	if got := PrevDate("2026-03-01"); got != "2026-02-28" {
		t.Fatalf("PrevDate = %s", got)
	}
	if got := DaysBetween("2026-03-07", "2026-03-10"); got != 3 {
		t.Fatalf("DaysBetween = %d", got)
	}
	if _, err := ParseDate("03/10/2026"); err == nil {
		t.Fatal("expected parse error for non-ISO date")
	}
}

func TestNewIDs_ArePrefixedAndUnique(t *testing.T) {
	a, b := NewQuestID(), NewQuestID()
	if a == b {
		t.Fatal("ids collide")
	}
	if len(a) < 7 || a[:6] != "quest_" {
		t.Fatalf("unexpected id shape: %s", a)
	}
}

func TestPlayerXPFloorsAndCeilings(t *testing.T) {
	p := DefaultPlayer("2026-03-10")
	p.AddXP(-10) // negative awards are ignored
	if p.TotalXP != 0 {
		t.Fatalf("TotalXP = %d after negative add", p.TotalXP)
	}
	p.AddXP(30)
	p.DeductXP(100)
	if p.TotalXP != 0 {
		t.Fatalf("TotalXP = %d, want floor at 0", p.TotalXP)
	}
}
