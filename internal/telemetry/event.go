package telemetry

import "time"

type EventType string

const (
	EventQuestCreated   EventType = "quest_created"
	EventQuestCompleted EventType = "quest_completed"
	EventQuestFailed    EventType = "quest_failed"
	EventQuestUndone    EventType = "quest_undone"
	EventHabitToggled   EventType = "habit_toggled"
	EventRewardBought   EventType = "reward_bought"
	EventCheckIn        EventType = "check_in"
	EventDayRollover    EventType = "day_rollover"
	EventRankUp         EventType = "rank_up"
	EventStateImported  EventType = "state_imported"
	EventStateReset     EventType = "state_reset"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
