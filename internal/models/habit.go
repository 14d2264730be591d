package models

import "time"

// Habit represents a daily practice to track
type Habit struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// HabitLog is a single day's completion record of a habit.
// At most one log exists per (HabitID, Date); an uncompleted day has no log.
type HabitLog struct {
	HabitID   string `json:"habit_id" yaml:"habit_id"`
	Date      string `json:"date" yaml:"date"` // YYYY-MM-DD format
	Completed bool   `json:"completed" yaml:"completed"`
}
