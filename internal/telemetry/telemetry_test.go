package telemetry

import (
	"path/filepath"
	"testing"
	"time"
)

func TestMemoryRepository_RecordAndFilter(t *testing.T) {
	repo := NewMemoryRepository()

	if err := repo.RecordEvent(EventQuestCompleted, EventMetadata{"xp": 75}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := repo.RecordEvent(EventCheckIn, EventMetadata{"xp": 50}); err != nil {
		t.Fatalf("record: %v", err)
	}

	all, err := repo.GetEvents(time.Time{}, nil)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d events, want 2", len(all))
	}

	only, err := repo.GetEvents(time.Time{}, []EventType{EventCheckIn})
	if err != nil {
		t.Fatalf("get filtered: %v", err)
	}
	if len(only) != 1 || only[0].Type != EventCheckIn {
		t.Fatalf("filter returned %+v", only)
	}
}

func TestSQLiteRepository_RoundTrip(t *testing.T) {
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "telemetry.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()

	if err := repo.RecordEvent(EventRewardBought, EventMetadata{"cost": 120}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := repo.RecordEvent(EventDayRollover, nil); err != nil {
		t.Fatalf("record: %v", err)
	}

	events, err := repo.GetEvents(time.Time{}, nil)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Type != EventRewardBought {
		t.Fatalf("unexpected first event %q", events[0].Type)
	}

	if err := repo.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	events, err = repo.GetEvents(time.Time{}, nil)
	if err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected empty log after clear, got %d", len(events))
	}
}

func TestCalculateStats(t *testing.T) {
	events := []Event{
		{Type: EventQuestCompleted, Metadata: `{"xp":75}`},
		{Type: EventQuestCompleted, Metadata: `{"xp":50}`},
		{Type: EventQuestFailed, Metadata: `{}`},
		{Type: EventHabitToggled, Metadata: `{"xp":10,"completed":true}`},
		{Type: EventRewardBought, Metadata: `{"cost":120}`},
		{Type: EventCheckIn, Metadata: `{"xp":50}`},
		{Type: EventDayRollover, Metadata: `{}`},
		{Type: EventDayRollover, Metadata: `{}`},
	}

	stats, err := CalculateStats(events, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	if stats.QuestsCompleted != 2 || stats.QuestsFailed != 1 {
		t.Fatalf("quest counts: %+v", stats)
	}
	if stats.XPAwarded != 185 {
		t.Fatalf("xp awarded = %d, want 185", stats.XPAwarded)
	}
	if stats.GoldSpent != 120 {
		t.Fatalf("gold spent = %d, want 120", stats.GoldSpent)
	}
	if stats.QuestsPerDay != 1.0 {
		t.Fatalf("quests per day = %v, want 1", stats.QuestsPerDay)
	}
	if stats.EventCounts[EventDayRollover] != 2 {
		t.Fatalf("event counts: %+v", stats.EventCounts)
	}
}
