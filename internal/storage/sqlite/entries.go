package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

func (s *Store) AddStudyEntry(entry models.StudyEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO study_entries (id, date, subject, hours, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.Date, entry.Subject, entry.Hours, entry.CreatedAt.UTC().Format(time.RFC3339Nano))
	if isUniqueViolation(err) {
		return fmt.Errorf("study entry %s: %w", entry.ID, storage.ErrAlreadyExists)
	}
	return err
}

func scanEntry(scan func(dest ...any) error) (models.StudyEntry, error) {
	var e models.StudyEntry
	var createdAt string
	if err := scan(&e.ID, &e.Date, &e.Subject, &e.Hours, &createdAt); err != nil {
		return models.StudyEntry{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return models.StudyEntry{}, fmt.Errorf("failed to parse created_at for entry %s: %w", e.ID, err)
	}
	e.CreatedAt = t
	return e, nil
}

func (s *Store) GetStudyEntry(id string) (models.StudyEntry, error) {
	row := s.db.QueryRow(`
		SELECT id, date, subject, hours, created_at
		FROM study_entries WHERE id = ?`, id)

	e, err := scanEntry(row.Scan)
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
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteStudyEntry(id string) error {
	res, err := s.db.Exec("DELETE FROM study_entries WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectAffected(res, "study entry "+id)
}

func expectAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, storage.ErrNotFound)
	}
	return nil
}
