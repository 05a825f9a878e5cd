package reward

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"levelup/internal/model"
)

func newState(gold int) *model.State {
	s := model.NewState(time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local))
	s.Player.Gold = gold
	return s
}

func TestAdd_Validates(t *testing.T) {
	s := newState(0)

	_, err := Add(s, Draft{Name: " ", Cost: 10})
	assert.Error(t, err)

	_, err = Add(s, Draft{Name: "coffee", Cost: 0})
	assert.Error(t, err)

	_, err = Add(s, Draft{Name: "coffee", Cost: 10, Tier: "mythic"})
	assert.Error(t, err)

	r, err := Add(s, Draft{Name: "coffee", Cost: 10, Tier: model.TierMicro})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
}

func TestBuy_ExactGoldSucceeds(t *testing.T) {
	s := newState(25)
	r, err := Add(s, Draft{Name: "movie night", Cost: 25, Tier: model.TierMedium})
	require.NoError(t, err)

	res, err := Buy(s, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.GoldRemaining)
	assert.Equal(t, 0, s.Player.Gold)

	// Not consumed: with more gold it can be bought again.
	s.Player.Gold = 30
	_, err = Buy(s, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Player.Gold)
}

func TestBuy_OneShortIsRejected(t *testing.T) {
	s := newState(24)
	r, err := Add(s, Draft{Name: "movie night", Cost: 25})
	require.NoError(t, err)

	_, err = Buy(s, r.ID)
	assert.ErrorIs(t, err, ErrInsufficientGold)
	assert.Equal(t, 24, s.Player.Gold, "rejected purchase must not touch gold")
}

func TestBuy_UnknownReward(t *testing.T) {
	s := newState(100)
	_, err := Buy(s, "reward_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newState(0)
	r, err := Add(s, Draft{Name: "nap", Cost: 5})
	require.NoError(t, err)

	require.NoError(t, Delete(s, r.ID))
	assert.Nil(t, s.Reward(r.ID))
	assert.ErrorIs(t, Delete(s, r.ID), ErrNotFound)
}
