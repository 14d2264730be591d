package postgres

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

func (s *Store) AddHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (id, name, created_at)
		VALUES ($1, $2, $3)`,
		habit.ID, habit.Name, habit.CreatedAt.UTC())
	if isUniqueViolation(err) {
		return fmt.Errorf("habit %q: %w", habit.Name, storage.ErrAlreadyExists)
	}
	return err
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	var h models.Habit
	err := s.db.QueryRow("SELECT id, name, created_at FROM habits WHERE id = $1", id).
		Scan(&h.ID, &h.Name, &h.CreatedAt)
	if err != nil {
		return models.Habit{}, notFound(err, "habit "+id)
	}
	return h, nil
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	var h models.Habit
	err := s.db.QueryRow("SELECT id, name, created_at FROM habits WHERE name = $1", name).
		Scan(&h.ID, &h.Name, &h.CreatedAt)
	if err != nil {
		return models.Habit{}, notFound(err, fmt.Sprintf("habit %q", name))
	}
	return h, nil
}

func (s *Store) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query("SELECT id, name, created_at FROM habits ORDER BY created_at, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		var h models.Habit
		if err := rows.Scan(&h.ID, &h.Name, &h.CreatedAt); err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// DeleteHabit relies on ON DELETE CASCADE to remove the habit's logs.
func (s *Store) DeleteHabit(id string) error {
	res, err := s.db.Exec("DELETE FROM habits WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectAffected(res, "habit "+id)
}
