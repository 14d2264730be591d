package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/studylit/internal/models"
)

func (s *Store) GetBadges() ([]models.Badge, error) {
	rows, err := s.db.Query("SELECT id, unlocked_at FROM badges ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Badge{}
	for rows.Next() {
		var b models.Badge
		var unlockedAt sql.NullString
		if err := rows.Scan(&b.ID, &unlockedAt); err != nil {
			return nil, err
		}
		if unlockedAt.Valid {
			t, err := time.Parse(time.RFC3339Nano, unlockedAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse unlocked_at for badge %s: %w", b.ID, err)
			}
			b.UnlockedAt = &t
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// SaveBadges upserts unlock times. COALESCE keeps an existing unlock, so a
// badge can never go back to locked.
func (s *Store) SaveBadges(list []models.Badge) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO badges (id, unlocked_at) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET unlocked_at = COALESCE(badges.unlocked_at, excluded.unlocked_at)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range list {
		var unlockedAt sql.NullString
		if b.UnlockedAt != nil {
			unlockedAt = sql.NullString{String: b.UnlockedAt.UTC().Format(time.RFC3339Nano), Valid: true}
		}
		if _, err := stmt.Exec(b.ID, unlockedAt); err != nil {
			return fmt.Errorf("failed to save badge %s: %w", b.ID, err)
		}
	}

	return tx.Commit()
}
