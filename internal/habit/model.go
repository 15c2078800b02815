// Package habit implements habit tracking: a named habit with a numeric
// daily goal, owned by exactly one user. Habits are created and listed only.
package habit

import "time"

// Habit is a single tracked habit.
type Habit struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Name      string `json:"habitName"`
	DailyGoal int    `json:"habitDailyGoal"`
	// Streak is persisted with a zero default. No exposed operation
	// increments it yet; the field is kept so existing client code that
	// reads it keeps working.
	Streak    int       `json:"streak"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateHabitRequest holds the data submitted when creating a habit.
type CreateHabitRequest struct {
	HabitName      string `json:"habitName"`
	HabitDailyGoal int    `json:"habitDailyGoal"`
	UserEmail      string `json:"userEmail"`
}
