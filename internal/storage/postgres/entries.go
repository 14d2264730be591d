package postgres

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

func (s *Store) AddStudyEntry(entry models.StudyEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO study_entries (id, date, subject, hours, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.Date, entry.Subject, entry.Hours, entry.CreatedAt.UTC())
	if isUniqueViolation(err) {
		return fmt.Errorf("study entry %s: %w", entry.ID, storage.ErrAlreadyExists)
	}
	return err
}

func (s *Store) GetStudyEntry(id string) (models.StudyEntry, error) {
	var e models.StudyEntry
	err := s.db.QueryRow(`
		SELECT id, date, subject, hours, created_at
		FROM study_entries WHERE id = $1`, id).
		Scan(&e.ID, &e.Date, &e.Subject, &e.Hours, &e.CreatedAt)
	if err != nil {
		return models.StudyEntry{}, notFound(err, "study entry "+id)
	}
	return e, nil
}

func (s *Store) GetAllStudyEntries() ([]models.StudyEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, date, subject, hours, created_at
		FROM study_entries
		ORDER BY date, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.StudyEntry{}
	for rows.Next() {
		var e models.StudyEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Subject, &e.Hours, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteStudyEntry(id string) error {
	res, err := s.db.Exec("DELETE FROM study_entries WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectAffected(res, "study entry "+id)
}
