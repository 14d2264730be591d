// Package export writes the whole store as a portable JSON or YAML document.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/stats"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (use json or yaml)", s)
	}
}

// Bundle is the exported document. The summary is derived data included for
// readers that do not want to recompute streaks.
type Bundle struct {
	App        string              `json:"app" yaml:"app"`
	Version    string              `json:"version" yaml:"version"`
	ExportedAt time.Time           `json:"exported_at" yaml:"exported_at"`
	Settings   models.Settings     `json:"settings" yaml:"settings"`
	Entries    []models.StudyEntry `json:"entries" yaml:"entries"`
	Habits     []models.Habit      `json:"habits" yaml:"habits"`
	HabitLogs  []models.HabitLog   `json:"habit_logs" yaml:"habit_logs"`
	Badges     []models.Badge      `json:"badges" yaml:"badges"`
	Summary    stats.Summary       `json:"summary" yaml:"summary"`
}

// Build assembles a bundle from a snapshot.
func Build(snap stats.Snapshot, now time.Time) Bundle {
	return Bundle{
		App:        constants.AppName,
		Version:    constants.Version,
		ExportedAt: now,
		Settings:   snap.Settings,
		Entries:    nonNil(snap.Entries),
		Habits:     nonNil(snap.Habits),
		HabitLogs:  nonNil(snap.Logs),
		Badges:     nonNil(snap.Badges),
		Summary:    snap.Summary(),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Write encodes the bundle to w.
func Write(w io.Writer, b Bundle, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
