package sqlite

import (
	"github.com/julianstephens/studylit/internal/models"
)

func (s *Store) GetHabitLog(habitID, day string) (models.HabitLog, error) {
	var l models.HabitLog
	err := s.db.QueryRow(`
		SELECT habit_id, date, completed
		FROM habit_logs WHERE habit_id = ? AND date = ?`, habitID, day).
		Scan(&l.HabitID, &l.Date, &l.Completed)
	if err != nil {
		return models.HabitLog{}, notFound(err, "habit log "+habitID+"/"+day)
	}
	return l, nil
}

func (s *Store) GetAllHabitLogs() ([]models.HabitLog, error) {
	rows, err := s.db.Query("SELECT habit_id, date, completed FROM habit_logs ORDER BY date, habit_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.HabitLog{}
	for rows.Next() {
		var l models.HabitLog
		if err := rows.Scan(&l.HabitID, &l.Date, &l.Completed); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *Store) SaveHabitLog(log models.HabitLog) error {
	_, err := s.db.Exec(`
		INSERT INTO habit_logs (habit_id, date, completed)
		VALUES (?, ?, ?)
		ON CONFLICT(habit_id, date) DO UPDATE SET completed = excluded.completed`,
		log.HabitID, log.Date, log.Completed)
	return err
}

func (s *Store) DeleteHabitLog(habitID, day string) error {
	res, err := s.db.Exec("DELETE FROM habit_logs WHERE habit_id = ? AND date = ?", habitID, day)
	if err != nil {
		return err
	}
	return expectAffected(res, "habit log "+habitID+"/"+day)
}
