package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

func (s *Store) AddHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (id, name, created_at)
		VALUES (?, ?, ?)`,
		habit.ID, habit.Name, habit.CreatedAt.UTC().Format(time.RFC3339Nano))
	if isUniqueViolation(err) {
		return fmt.Errorf("habit %q: %w", habit.Name, storage.ErrAlreadyExists)
	}
	return err
}

func scanHabit(scan func(dest ...any) error) (models.Habit, error) {
	var h models.Habit
	var createdAt string
	if err := scan(&h.ID, &h.Name, &createdAt); err != nil {
		return models.Habit{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	h.CreatedAt = t
	return h, nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow("SELECT id, name, created_at FROM habits WHERE id = ?", id)
	h, err := scanHabit(row.Scan)
	if err != nil {
		return models.Habit{}, notFound(err, "habit "+id)
	}
	return h, nil
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow("SELECT id, name, created_at FROM habits WHERE name = ?", name)
	h, err := scanHabit(row.Scan)
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
		h, err := scanHabit(rows.Scan)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// DeleteHabit removes a habit and its logs in one transaction. The explicit
// log delete keeps the cascade working on databases opened without foreign keys.
func (s *Store) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM habit_logs WHERE habit_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete habit logs: %w", err)
	}
	res, err := tx.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return err
	}
	if err := expectAffected(res, "habit "+id); err != nil {
		return err
	}
	return tx.Commit()
}
