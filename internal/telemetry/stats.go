package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period          string            `json:"period"`
	EventCounts     map[EventType]int `json:"event_counts"`
	QuestsPerDay    float64           `json:"quests_per_day"`
	QuestsCompleted int               `json:"quests_completed"`
	QuestsFailed    int               `json:"quests_failed"`
	HabitToggles    int               `json:"habit_toggles"`
	RewardsBought   int               `json:"rewards_bought"`
	GoldSpent       int               `json:"gold_spent"`
	XPAwarded       int               `json:"xp_awarded"`
	CheckIns        int               `json:"check_ins"`
	DayRollovers    int               `json:"day_rollovers"`
}

// CalculateStats computes balance stats from events
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:      since.Format("2006-01-02"),
		EventCounts: make(map[EventType]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventQuestCompleted:
			stats.QuestsCompleted++
			if xp, ok := metadata["xp"].(float64); ok {
				stats.XPAwarded += int(xp)
			}
		case EventQuestFailed:
			stats.QuestsFailed++
		case EventHabitToggled:
			stats.HabitToggles++
			if xp, ok := metadata["xp"].(float64); ok {
				stats.XPAwarded += int(xp)
			}
		case EventRewardBought:
			stats.RewardsBought++
			if cost, ok := metadata["cost"].(float64); ok {
				stats.GoldSpent += int(cost)
			}
		case EventCheckIn:
			stats.CheckIns++
			if xp, ok := metadata["xp"].(float64); ok {
				stats.XPAwarded += int(xp)
			}
		case EventDayRollover:
			stats.DayRollovers++
		}
	}

	// Per-day rate needs at least one rollover to anchor a day count.
	if stats.DayRollovers > 0 {
		stats.QuestsPerDay = float64(stats.QuestsCompleted) / float64(stats.DayRollovers)
	}

	return stats, nil
}
