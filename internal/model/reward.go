package model

type RewardID string

type RewardTier string

const (
	TierMicro     RewardTier = "micro"
	TierMedium    RewardTier = "medium"
	TierPremium   RewardTier = "premium"
	TierLegendary RewardTier = "legendary"
)

func (t RewardTier) IsValid() bool {
	switch t {
	case TierMicro, TierMedium, TierPremium, TierLegendary:
		return true
	default:
		return false
	}
}

// Reward is a shop item purchasable against the player's gold. Buying is a
// momentary action; the reward is never consumed or marked and can be bought
// again.
type Reward struct {
	ID   RewardID   `json:"id"`
	Name string     `json:"name"`
	Cost int        `json:"cost"`
	Icon string     `json:"icon,omitempty"`
	Tier RewardTier `json:"tier,omitempty"`
}
