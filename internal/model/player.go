package model

const (
	MaxHealth = 100

	DefaultPlayerName = "Hunter"
)

// Player is the single profile the whole document revolves around. It is
// never deleted; a full reset replaces it with DefaultPlayer().
type Player struct {
	Name    string `json:"name"`
	TotalXP int    `json:"total_xp"`
	Gold    int    `json:"gold"`
	Health  int    `json:"health"` // 0..100

	LastLoginDate  string `json:"last_login_date,omitempty"` // YYYY-MM-DD, local; empty = never
	CheckedInToday bool   `json:"checked_in_today"`
	CreatedAt      string `json:"created_at"` // YYYY-MM-DD, local

	TotalQuestsCompleted int `json:"total_quests_completed"`
	TotalHabitsCompleted int `json:"total_habits_completed"`
	LongestStreak        int `json:"longest_streak"`
}

func DefaultPlayer(createdAt string) Player {
	return Player{
		Name:      DefaultPlayerName,
		Health:    MaxHealth,
		CreatedAt: createdAt,
	}
}

// AddXP raises TotalXP; it never takes XP away.
func (p *Player) AddXP(xp int) {
	if xp > 0 {
		p.TotalXP += xp
	}
}

// DeductXP lowers TotalXP, floored at zero.
func (p *Player) DeductXP(xp int) {
	if xp <= 0 {
		return
	}
	p.TotalXP -= xp
	if p.TotalXP < 0 {
		p.TotalXP = 0
	}
}
