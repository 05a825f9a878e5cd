package model

import "time"

type QuestID string

// ThreatLevel classifies a quest's priority, independent of player rank.
// It drives the reward/penalty multipliers frozen onto the quest at creation.
type ThreatLevel string

const (
	ThreatS ThreatLevel = "S"
	ThreatA ThreatLevel = "A"
	ThreatB ThreatLevel = "B"
	ThreatC ThreatLevel = "C"
)

func (t ThreatLevel) IsValid() bool {
	switch t {
	case ThreatS, ThreatA, ThreatB, ThreatC:
		return true
	default:
		return false
	}
}

// Order returns sort precedence: S before A before B before C.
func (t ThreatLevel) Order() int {
	switch t {
	case ThreatS:
		return 0
	case ThreatA:
		return 1
	case ThreatB:
		return 2
	case ThreatC:
		return 3
	default:
		return 4
	}
}

type FailReason string

const (
	FailManual  FailReason = "manual"
	FailOverdue FailReason = "overdue"
)

// Quest is a one-shot objective. Exactly one of active (!Completed && !Failed),
// completed, or failed holds at any time; a terminal quest only re-enters the
// active state via an explicit undo.
//
// Reward, GoldReward and Penalty are computed once at creation from the threat
// multiplier table and stored here, so later balance edits never retroactively
// change an outstanding quest.
type Quest struct {
	ID         QuestID     `json:"id"`
	Name       string      `json:"name"`
	Threat     ThreatLevel `json:"threat"`
	Reward     int         `json:"reward"`
	GoldReward int         `json:"gold_reward"`
	Penalty    int         `json:"penalty"`
	DueDate    *string     `json:"due_date,omitempty"` // YYYY-MM-DD, local
	CreatedAt  time.Time   `json:"created_at"`

	Completed   bool       `json:"completed"`
	Failed      bool       `json:"failed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FailReason  FailReason `json:"fail_reason,omitempty"`

	// XPLost is the XP actually deducted when the quest failed. It can be
	// less than Penalty because TotalXP floors at zero; undo refunds this
	// amount, not the nominal penalty.
	XPLost int `json:"xp_lost,omitempty"`
}

func (q Quest) Active() bool {
	return !q.Completed && !q.Failed
}
