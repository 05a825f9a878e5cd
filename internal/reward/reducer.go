// Package reward implements the gold-economy shop: reward definitions and
// purchases against the player's balance.
package reward

import (
	"errors"
	"strings"

	"levelup/internal/model"
)

var (
	ErrNotFound         = errors.New("reward not found")
	ErrInsufficientGold = errors.New("not enough gold")
)

type Draft struct {
	Name string           `json:"name"`
	Cost int              `json:"cost"`
	Icon string           `json:"icon,omitempty"`
	Tier model.RewardTier `json:"tier,omitempty"`
}

func Add(s *model.State, d Draft) (model.Reward, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return model.Reward{}, errors.New("reward name is required")
	}
	if d.Cost <= 0 {
		return model.Reward{}, errors.New("reward cost must be positive")
	}
	if d.Tier != "" && !d.Tier.IsValid() {
		return model.Reward{}, errors.New("invalid reward tier")
	}
	r := model.Reward{ID: model.NewRewardID(), Name: name, Cost: d.Cost, Icon: d.Icon, Tier: d.Tier}
	s.Rewards = append(s.Rewards, r)
	return r, nil
}

func Delete(s *model.State, id model.RewardID) error {
	for i := range s.Rewards {
		if s.Rewards[i].ID == id {
			s.Rewards = append(s.Rewards[:i], s.Rewards[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type BuyResult struct {
	Reward        model.Reward `json:"reward"`
	GoldRemaining int          `json:"gold_remaining"`
}

// Buy deducts the reward's cost from the player's gold. The purchase is
// rejected outright when gold < cost; the reward itself is never consumed
// and stays available for repeat purchases.
func Buy(s *model.State, id model.RewardID) (BuyResult, error) {
	r := s.Reward(id)
	if r == nil {
		return BuyResult{}, ErrNotFound
	}
	if s.Player.Gold < r.Cost {
		return BuyResult{}, ErrInsufficientGold
	}
	s.Player.Gold -= r.Cost
	return BuyResult{Reward: *r, GoldRemaining: s.Player.Gold}, nil
}
