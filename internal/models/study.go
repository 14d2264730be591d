package models

import "time"

// StudyEntry is one logged study session. Entries are never edited, only deleted.
type StudyEntry struct {
	ID        string    `json:"id" yaml:"id"`
	Date      string    `json:"date" yaml:"date"` // YYYY-MM-DD format
	Subject   string    `json:"subject" yaml:"subject"`
	Hours     float64   `json:"hours" yaml:"hours"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
