package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
)

// Document is the on-disk layout of a JSON store: one file holding every
// collection.
type Document struct {
	Version   int                 `json:"version"`
	Settings  models.Settings     `json:"settings"`
	Entries   []models.StudyEntry `json:"entries"`
	Habits    []models.Habit      `json:"habits"`
	HabitLogs []models.HabitLog   `json:"habit_logs"`
	Badges    []models.Badge      `json:"badges"`
}

var errNotLoaded = errors.New("storage not loaded")

// JSONStore keeps all data in a single JSON file, rewritten on every change.
type JSONStore struct {
	path string
	doc  *Document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &Document{
		Version:  1,
		Settings: models.DefaultSettings(),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write to a sibling file first so a crash never leaves a torn document.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.doc == nil {
		return models.Settings{}, errNotLoaded
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.doc == nil {
		return errNotLoaded
	}
	s.doc.Settings = settings
	return s.save()
}

func (s *JSONStore) AddStudyEntry(entry models.StudyEntry) error {
	if s.doc == nil {
		return errNotLoaded
	}
	for _, e := range s.doc.Entries {
		if e.ID == entry.ID {
			return fmt.Errorf("study entry %s: %w", entry.ID, ErrAlreadyExists)
		}
	}
	s.doc.Entries = append(s.doc.Entries, entry)
	return s.save()
}

func (s *JSONStore) GetStudyEntry(id string) (models.StudyEntry, error) {
	if s.doc == nil {
		return models.StudyEntry{}, errNotLoaded
	}
	for _, e := range s.doc.Entries {
		if e.ID == id {
			return e, nil
		}
	}
	return models.StudyEntry{}, fmt.Errorf("study entry %s: %w", id, ErrNotFound)
}

// GetAllStudyEntries returns entries ordered by date, then creation time.
func (s *JSONStore) GetAllStudyEntries() ([]models.StudyEntry, error) {
	if s.doc == nil {
		return nil, errNotLoaded
	}
	entries := make([]models.StudyEntry, len(s.doc.Entries))
	copy(entries, s.doc.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *JSONStore) DeleteStudyEntry(id string) error {
	if s.doc == nil {
		return errNotLoaded
	}
	for i, e := range s.doc.Entries {
		if e.ID == id {
			s.doc.Entries = append(s.doc.Entries[:i], s.doc.Entries[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("study entry %s: %w", id, ErrNotFound)
}

func (s *JSONStore) AddHabit(habit models.Habit) error {
	if s.doc == nil {
		return errNotLoaded
	}
	for _, h := range s.doc.Habits {
		if h.ID == habit.ID || h.Name == habit.Name {
			return fmt.Errorf("habit %q: %w", habit.Name, ErrAlreadyExists)
		}
	}
	s.doc.Habits = append(s.doc.Habits, habit)
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if s.doc == nil {
		return models.Habit{}, errNotLoaded
	}
	for _, h := range s.doc.Habits {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %s: %w", id, ErrNotFound)
}

func (s *JSONStore) GetHabitByName(name string) (models.Habit, error) {
	if s.doc == nil {
		return models.Habit{}, errNotLoaded
	}
	for _, h := range s.doc.Habits {
		if h.Name == name {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q: %w", name, ErrNotFound)
}

func (s *JSONStore) GetAllHabits() ([]models.Habit, error) {
	if s.doc == nil {
		return nil, errNotLoaded
	}
	habits := make([]models.Habit, len(s.doc.Habits))
	copy(habits, s.doc.Habits)
	sort.SliceStable(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
	return habits, nil
}

// DeleteHabit removes the habit and all of its logs.
func (s *JSONStore) DeleteHabit(id string) error {
	if s.doc == nil {
		return errNotLoaded
	}
	idx := -1
	for i, h := range s.doc.Habits {
		if h.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	s.doc.Habits = append(s.doc.Habits[:idx], s.doc.Habits[idx+1:]...)

	kept := s.doc.HabitLogs[:0]
	for _, l := range s.doc.HabitLogs {
		if l.HabitID != id {
			kept = append(kept, l)
		}
	}
	s.doc.HabitLogs = kept
	return s.save()
}

func (s *JSONStore) GetHabitLog(habitID, day string) (models.HabitLog, error) {
	if s.doc == nil {
		return models.HabitLog{}, errNotLoaded
	}
	for _, l := range s.doc.HabitLogs {
		if l.HabitID == habitID && l.Date == day {
			return l, nil
		}
	}
	return models.HabitLog{}, fmt.Errorf("habit log %s/%s: %w", habitID, day, ErrNotFound)
}

func (s *JSONStore) GetAllHabitLogs() ([]models.HabitLog, error) {
	if s.doc == nil {
		return nil, errNotLoaded
	}
	logs := make([]models.HabitLog, len(s.doc.HabitLogs))
	copy(logs, s.doc.HabitLogs)
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date < logs[j].Date
	})
	return logs, nil
}

// SaveHabitLog inserts the log or replaces the one for the same habit and day.
func (s *JSONStore) SaveHabitLog(log models.HabitLog) error {
	if s.doc == nil {
		return errNotLoaded
	}
	for i, l := range s.doc.HabitLogs {
		if l.HabitID == log.HabitID && l.Date == log.Date {
			s.doc.HabitLogs[i] = log
			return s.save()
		}
	}
	s.doc.HabitLogs = append(s.doc.HabitLogs, log)
	return s.save()
}

func (s *JSONStore) DeleteHabitLog(habitID, day string) error {
	if s.doc == nil {
		return errNotLoaded
	}
	for i, l := range s.doc.HabitLogs {
		if l.HabitID == habitID && l.Date == day {
			s.doc.HabitLogs = append(s.doc.HabitLogs[:i], s.doc.HabitLogs[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("habit log %s/%s: %w", habitID, day, ErrNotFound)
}

func (s *JSONStore) GetBadges() ([]models.Badge, error) {
	if s.doc == nil {
		return nil, errNotLoaded
	}
	out := make([]models.Badge, len(s.doc.Badges))
	copy(out, s.doc.Badges)
	return out, nil
}

// SaveBadges stores unlock times. A badge already unlocked keeps its first timestamp.
func (s *JSONStore) SaveBadges(list []models.Badge) error {
	if s.doc == nil {
		return errNotLoaded
	}
	index := make(map[string]int, len(s.doc.Badges))
	for i, b := range s.doc.Badges {
		index[b.ID] = i
	}
	for _, b := range list {
		i, ok := index[b.ID]
		if !ok {
			s.doc.Badges = append(s.doc.Badges, b)
			index[b.ID] = len(s.doc.Badges) - 1
			continue
		}
		if !s.doc.Badges[i].Unlocked() {
			s.doc.Badges[i] = b
		}
	}
	return s.save()
}
