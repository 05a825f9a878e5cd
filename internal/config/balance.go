package config

// Balance holds gameplay balance configuration. These values feed reward and
// penalty computation at the moment an action happens; quests freeze their
// amounts at creation, so editing balance never rewrites an outstanding quest.
type Balance struct {
	// Quest base amounts, scaled by the threat-level multiplier table
	QuestBaseReward  int `yaml:"quest_base_reward" json:"quest_base_reward" env:"LEVELUP_QUEST_BASE_REWARD"`
	QuestBaseGold    int `yaml:"quest_base_gold" json:"quest_base_gold" env:"LEVELUP_QUEST_BASE_GOLD"`
	QuestBasePenalty int `yaml:"quest_base_penalty" json:"quest_base_penalty" env:"LEVELUP_QUEST_BASE_PENALTY"`

	// Habit completion awards
	HabitGold       int `yaml:"habit_gold" json:"habit_gold" env:"LEVELUP_HABIT_GOLD"`
	HabitXP         int `yaml:"habit_xp" json:"habit_xp" env:"LEVELUP_HABIT_XP"`
	StreakMilestone int `yaml:"streak_milestone" json:"streak_milestone" env:"LEVELUP_STREAK_MILESTONE"`

	// Daily check-in and absence
	LoginXP          int `yaml:"login_xp" json:"login_xp" env:"LEVELUP_LOGIN_XP"`
	MissedDayPenalty int `yaml:"missed_day_penalty" json:"missed_day_penalty" env:"LEVELUP_MISSED_DAY_PENALTY"`
	MissedDayGrace   int `yaml:"missed_day_grace" json:"missed_day_grace" env:"LEVELUP_MISSED_DAY_GRACE"`
}

// DefaultBalance returns the default balance configuration.
func DefaultBalance() Balance {
	return Balance{
		QuestBaseReward:  50,
		QuestBaseGold:    50,
		QuestBasePenalty: 25,
		HabitGold:        5,
		HabitXP:          10,
		StreakMilestone:  7,
		LoginXP:          50,
		MissedDayPenalty: 100,
		MissedDayGrace:   1,
	}
}

// CasualBalance returns easier balance: softer penalties, same rewards.
func CasualBalance() Balance {
	cfg := DefaultBalance()
	cfg.QuestBasePenalty = 10
	cfg.MissedDayPenalty = 50
	cfg.MissedDayGrace = 2
	return cfg
}

// HardBalance returns harder balance for experienced players.
func HardBalance() Balance {
	cfg := DefaultBalance()
	cfg.QuestBaseReward = 40
	cfg.QuestBasePenalty = 40
	cfg.MissedDayPenalty = 150
	return cfg
}

func (b *Balance) applyDefaults() {
	d := DefaultBalance()
	if b.QuestBaseReward <= 0 {
		b.QuestBaseReward = d.QuestBaseReward
	}
	if b.QuestBaseGold < 0 {
		b.QuestBaseGold = d.QuestBaseGold
	}
	if b.QuestBasePenalty < 0 {
		b.QuestBasePenalty = d.QuestBasePenalty
	}
	if b.HabitGold <= 0 {
		b.HabitGold = d.HabitGold
	}
	if b.HabitXP <= 0 {
		b.HabitXP = d.HabitXP
	}
	if b.StreakMilestone <= 0 {
		b.StreakMilestone = d.StreakMilestone
	}
	if b.LoginXP <= 0 {
		b.LoginXP = d.LoginXP
	}
	if b.MissedDayPenalty <= 0 {
		b.MissedDayPenalty = d.MissedDayPenalty
	}
	if b.MissedDayGrace < 0 {
		b.MissedDayGrace = d.MissedDayGrace
	}
}
