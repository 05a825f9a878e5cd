package model

type HabitID string

// Habit is a long-lived recurring practice. Completion history lives in the
// state's HabitLog, keyed by local calendar date, not on the habit itself.
type Habit struct {
	ID   HabitID `json:"id"`
	Name string  `json:"name"`
	Icon string  `json:"icon,omitempty"`
}
