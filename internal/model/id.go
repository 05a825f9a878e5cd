package model

import (
	"crypto/rand"
	"encoding/hex"
)

func newID(prefix string) string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return prefix + "_" + hex.EncodeToString(b[:])
}

func NewQuestID() QuestID   { return QuestID(newID("quest")) }
func NewHabitID() HabitID   { return HabitID(newID("habit")) }
func NewRewardID() RewardID { return RewardID(newID("reward")) }
