// Package rank holds the static XP tier table and the progression
// calculator derived from it. Everything here is a pure function of
// total XP; nothing mutates the table.
package rank

// Rank is one named XP tier.
type Rank struct {
	Name  string `json:"name"`
	Level int    `json:"level"` // 1..6
	MinXP int    `json:"min_xp"`
	Color string `json:"color"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// Table is the ordered tier list. MinXP is strictly increasing and starts at
// zero, so every non-negative XP value maps to exactly one rank.
var Table = []Rank{
	{Name: "Silver", Level: 1, MinXP: 0, Color: "#a8b2bd", Title: "Awakened", Icon: "🛡️"},
	{Name: "Gold", Level: 2, MinXP: 500, Color: "#e8b84b", Title: "Rising Hunter", Icon: "⚔️"},
	{Name: "Platinum", Level: 3, MinXP: 1500, Color: "#4bc8e8", Title: "Elite Hunter", Icon: "🏹"},
	{Name: "Diamond", Level: 4, MinXP: 3000, Color: "#b84be8", Title: "Shadow Adept", Icon: "💎"},
	{Name: "Immortal", Level: 5, MinXP: 5000, Color: "#e84b6f", Title: "Nation-Level", Icon: "🔥"},
	{Name: "Radiant", Level: 6, MinXP: 8000, Color: "#f5f0dc", Title: "Monarch", Icon: "👑"},
}

// For returns the highest rank whose threshold totalXP has reached.
func For(totalXP int) Rank {
	for i := len(Table) - 1; i >= 0; i-- {
		if Table[i].MinXP <= totalXP {
			return Table[i]
		}
	}
	return Table[0]
}

// Next returns the first rank still above totalXP, or false when the player
// is at or beyond the top threshold.
func Next(totalXP int) (Rank, bool) {
	for _, r := range Table {
		if r.MinXP > totalXP {
			return r, true
		}
	}
	return Rank{}, false
}

// Progress is the fractional position between the current rank's threshold
// and the next one.
type Progress struct {
	Current int     `json:"current"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

func ProgressFor(totalXP int) Progress {
	cur := For(totalXP)
	next, ok := Next(totalXP)
	if !ok {
		return Progress{Current: totalXP - cur.MinXP, Total: 0, Percent: 100}
	}
	p := Progress{
		Current: totalXP - cur.MinXP,
		Total:   next.MinXP - cur.MinXP,
	}
	// Total > 0 because thresholds are strictly increasing.
	p.Percent = float64(p.Current) / float64(p.Total) * 100
	return p
}
