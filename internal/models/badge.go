package models

import "time"

// Badge is an achievement that unlocks once and stays unlocked.
type Badge struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Icon        string     `json:"icon" yaml:"icon"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty" yaml:"unlocked_at,omitempty"`
}

func (b Badge) Unlocked() bool {
	return b.UnlockedAt != nil
}
