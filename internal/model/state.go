package model

import (
	"fmt"
	"time"
)

// SchemaVersion is the current shape of the persisted state document.
// internal/state runs migrations for older versions once at load time.
const SchemaVersion = 2

type Settings struct {
	TabOrder     []string `json:"tab_order"`
	SoundEnabled bool     `json:"sound_enabled"`
}

func DefaultSettings() Settings {
	return Settings{
		TabOrder:     []string{"quests", "habits", "rewards", "profile"},
		SoundEnabled: true,
	}
}

// State is the whole persisted document. Every reducer takes it, validates,
// and either applies its change completely or leaves it untouched.
type State struct {
	Version int    `json:"version"`
	Player  Player `json:"player"`

	Quests   []Quest `json:"quests"`
	QuestLog []Quest `json:"quest_log"` // terminal snapshots, deduped by (id, completed_at)

	Habits   []Habit              `json:"habits"`
	HabitLog map[string][]HabitID `json:"habit_log"` // YYYY-MM-DD -> habits completed that day
	Streaks  map[HabitID]int      `json:"streaks"`

	Rewards []Reward `json:"rewards"`

	Settings Settings `json:"settings"`
}

func NewState(now time.Time) *State {
	s := &State{
		Version:  SchemaVersion,
		Player:   DefaultPlayer(DateOf(now)),
		Settings: DefaultSettings(),
	}
	s.Normalize()
	return s
}

// Quest returns a pointer into the live quests collection, or nil.
func (s *State) Quest(id QuestID) *Quest {
	for i := range s.Quests {
		if s.Quests[i].ID == id {
			return &s.Quests[i]
		}
	}
	return nil
}

func (s *State) Habit(id HabitID) *Habit {
	for i := range s.Habits {
		if s.Habits[i].ID == id {
			return &s.Habits[i]
		}
	}
	return nil
}

func (s *State) Reward(id RewardID) *Reward {
	for i := range s.Rewards {
		if s.Rewards[i].ID == id {
			return &s.Rewards[i]
		}
	}
	return nil
}

func (s *State) HabitLoggedOn(date string, id HabitID) bool {
	for _, h := range s.HabitLog[date] {
		if h == id {
			return true
		}
	}
	return false
}

func logKey(q Quest) string {
	ts := int64(0)
	if q.CompletedAt != nil {
		ts = q.CompletedAt.UnixNano()
	}
	return fmt.Sprintf("%s|%d", q.ID, ts)
}

// Normalize repairs a freshly loaded or imported document: nil collections
// become empty, out-of-range values are clamped, the quest log is deduped by
// (id, completed_at), and habit log/streak entries pointing at deleted habits
// are dropped.
func (s *State) Normalize() {
	if s.Version <= 0 {
		s.Version = SchemaVersion
	}
	if s.Quests == nil {
		s.Quests = []Quest{}
	}
	if s.QuestLog == nil {
		s.QuestLog = []Quest{}
	}
	if s.Habits == nil {
		s.Habits = []Habit{}
	}
	if s.HabitLog == nil {
		s.HabitLog = map[string][]HabitID{}
	}
	if s.Streaks == nil {
		s.Streaks = map[HabitID]int{}
	}
	if s.Rewards == nil {
		s.Rewards = []Reward{}
	}
	if len(s.Settings.TabOrder) == 0 {
		s.Settings.TabOrder = DefaultSettings().TabOrder
	}

	if s.Player.Health < 0 {
		s.Player.Health = 0
	}
	if s.Player.Health > MaxHealth {
		s.Player.Health = MaxHealth
	}
	if s.Player.TotalXP < 0 {
		s.Player.TotalXP = 0
	}
	if s.Player.Gold < 0 {
		s.Player.Gold = 0
	}
	if s.Player.TotalQuestsCompleted < 0 {
		s.Player.TotalQuestsCompleted = 0
	}
	if s.Player.TotalHabitsCompleted < 0 {
		s.Player.TotalHabitsCompleted = 0
	}
	if s.Player.LongestStreak < 0 {
		s.Player.LongestStreak = 0
	}

	seen := make(map[string]bool, len(s.QuestLog))
	deduped := s.QuestLog[:0]
	for _, q := range s.QuestLog {
		k := logKey(q)
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, q)
	}
	s.QuestLog = deduped

	live := make(map[HabitID]bool, len(s.Habits))
	for _, h := range s.Habits {
		live[h.ID] = true
	}
	for date, ids := range s.HabitLog {
		kept := ids[:0]
		for _, id := range ids {
			if live[id] {
				kept = append(kept, id)
			}
		}
		s.HabitLog[date] = kept
	}
	for id := range s.Streaks {
		if !live[id] {
			delete(s.Streaks, id)
		}
	}
}

// Clone deep-copies the document. Reducer callers snapshot before applying so
// rejections and event diffs never observe a half-mutated state.
func (s *State) Clone() *State {
	out := *s

	out.Quests = append([]Quest(nil), s.Quests...)
	out.QuestLog = append([]Quest(nil), s.QuestLog...)
	out.Habits = append([]Habit(nil), s.Habits...)
	out.Rewards = append([]Reward(nil), s.Rewards...)

	out.HabitLog = make(map[string][]HabitID, len(s.HabitLog))
	for date, ids := range s.HabitLog {
		out.HabitLog[date] = append([]HabitID(nil), ids...)
	}
	out.Streaks = make(map[HabitID]int, len(s.Streaks))
	for id, n := range s.Streaks {
		out.Streaks[id] = n
	}
	out.Settings.TabOrder = append([]string(nil), s.Settings.TabOrder...)

	return &out
}
