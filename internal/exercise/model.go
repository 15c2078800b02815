// Package exercise implements exercise tracking and weight progression.
// Each exercise is owned by one user and carries exactly one progression:
// an ordered sequence of per-day weight samples. The progression keeps at
// most one sample per calendar day — a second weight change on the same day
// overwrites that day's sample instead of appending.
package exercise

import "time"

// dateLayout is the calendar-day key format for progression samples.
// Day granularity in the server's local time zone, no time-of-day.
const dateLayout = "2006-01-02"

// Exercise is a single tracked exercise with its current working weight
// and repetition scheme.
type Exercise struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"exerciseName"`
	Weight      float64   `json:"exerciseWeight"`
	Repetition1 int       `json:"repetition1"`
	Repetition2 int       `json:"repetition2"`
	Repetition3 int       `json:"repetition3"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Progression ties a sample sequence to one exercise and its owner.
type Progression struct {
	ID         string `json:"id"`
	ExerciseID string `json:"exerciseId"`
	UserID     string `json:"userId"`
}

// Sample is one per-day weight measurement within a progression.
type Sample struct {
	Weight float64 `json:"weight"`
	Date   string  `json:"date"`
}

// CreateExerciseRequest holds the data submitted when creating an exercise.
type CreateExerciseRequest struct {
	ExerciseName   string  `json:"exerciseName"`
	ExerciseWeight float64 `json:"exerciseWeight"`
	Repetition1    int     `json:"repetition1"`
	Repetition2    int     `json:"repetition2"`
	Repetition3    int     `json:"repetition3"`
	UserEmail      string  `json:"userEmail"`
}

// UpdateExerciseRequest holds the data submitted when updating an exercise.
// The update is a full replace of name, weight, and repetitions.
type UpdateExerciseRequest struct {
	ExerciseID     string  `json:"exerciseId"`
	ExerciseName   string  `json:"exerciseName"`
	ExerciseWeight float64 `json:"exerciseWeight"`
	Repetition1    int     `json:"repetition1"`
	Repetition2    int     `json:"repetition2"`
	Repetition3    int     `json:"repetition3"`
}
