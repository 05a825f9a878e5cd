package quest

import (
	"sort"

	"levelup/internal/model"
)

// ActiveSorted returns the active quests in presentation order: dated quests
// before undated, then ascending due date, then threat (S first). Undated
// quests tie-break on threat alone.
func ActiveSorted(s *model.State) []model.Quest {
	out := make([]model.Quest, 0, len(s.Quests))
	for _, q := range s.Quests {
		if q.Active() {
			out = append(out, q)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].DueDate, out[j].DueDate
		switch {
		case di == nil && dj == nil:
			return out[i].Threat.Order() < out[j].Threat.Order()
		case di == nil:
			return false
		case dj == nil:
			return true
		case *di != *dj:
			// YYYY-MM-DD compares lexicographically
			return *di < *dj
		default:
			return out[i].Threat.Order() < out[j].Threat.Order()
		}
	})

	return out
}
