// Package quest implements the quest lifecycle: creation, completion,
// failure, deletion and undo. Transition functions validate first and mutate
// the state document only when the whole change can be applied.
package quest

import (
	"errors"
	"math"
	"strings"
	"time"

	"levelup/internal/config"
	"levelup/internal/model"
)

var (
	ErrNotFound      = errors.New("quest not found")
	ErrNotActive     = errors.New("quest is not active")
	ErrEntryNotFound = errors.New("quest log entry not found")
	ErrUndoLocked    = errors.New("quest due date has passed; undo locked")
)

// Threat multipliers are fixed at compile time. A quest's amounts are
// computed once at creation and stored on the quest, so changing these
// constants only affects quests created afterwards.
const (
	MultiplierS = 2.0
	MultiplierA = 1.5
	MultiplierB = 1.0
	MultiplierC = 0.75
)

func Multiplier(t model.ThreatLevel) float64 {
	switch t {
	case model.ThreatS:
		return MultiplierS
	case model.ThreatA:
		return MultiplierA
	case model.ThreatB:
		return MultiplierB
	case model.ThreatC:
		return MultiplierC
	default:
		return MultiplierB
	}
}

func scale(base int, mult float64) int {
	return int(math.Round(float64(base) * mult))
}

// Draft is the caller-supplied part of a new quest.
type Draft struct {
	Name    string            `json:"name"`
	Threat  model.ThreatLevel `json:"threat"`
	DueDate *string           `json:"due_date,omitempty"` // YYYY-MM-DD, local
}

// New builds a quest from a draft, freezing reward/penalty amounts from the
// current balance.
func New(d Draft, bal config.Balance, now time.Time) (model.Quest, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return model.Quest{}, errors.New("quest name is required")
	}
	if !d.Threat.IsValid() {
		return model.Quest{}, errors.New("invalid threat level")
	}
	if d.DueDate != nil {
		if _, err := model.ParseDate(*d.DueDate); err != nil {
			return model.Quest{}, errors.New("invalid due date")
		}
	}

	mult := Multiplier(d.Threat)
	return model.Quest{
		ID:         model.NewQuestID(),
		Name:       name,
		Threat:     d.Threat,
		Reward:     scale(bal.QuestBaseReward, mult),
		GoldReward: scale(bal.QuestBaseGold, mult),
		Penalty:    scale(bal.QuestBasePenalty, mult),
		DueDate:    d.DueDate,
		CreatedAt:  now,
	}, nil
}

// Add appends a new active quest to the document.
func Add(s *model.State, d Draft, bal config.Balance, now time.Time) (model.Quest, error) {
	q, err := New(d, bal, now)
	if err != nil {
		return model.Quest{}, err
	}
	s.Quests = append(s.Quests, q)
	return q, nil
}
