package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"daydash/internal/models"
)

// DefaultPath is where checklist and schedule data is persisted.
const DefaultPath = "dashboard_data.json"

// Store holds the checklist categories and the manual schedule, persisted
// together in one JSON file. Single-user, single-process: no locking beyond
// what the dashboard session already guarantees.
type Store struct {
	logger *slog.Logger
	path   string

	Checklist map[string][]models.ChecklistItem
	Schedule  []models.ScheduleEntry
}

type fileData struct {
	Checklist map[string][]models.ChecklistItem `json:"checklist"`
	Schedule  []models.ScheduleEntry            `json:"schedule"`
	LastSaved string                            `json:"last_saved"`
}

// Open loads the store, seeding the default checklist when the file is
// missing or corrupt.
func Open(logger *slog.Logger, path string) *Store {
	s := &Store{
		logger:    logger,
		path:      path,
		Checklist: defaultChecklist(),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Could not read dashboard data, starting fresh", "error", err)
		}
		return s
	}
	var fd fileData
	if err := json.Unmarshal(data, &fd); err != nil {
		logger.Warn("Dashboard data file is corrupt, starting fresh", "error", err)
		return s
	}
	if len(fd.Checklist) > 0 {
		s.Checklist = fd.Checklist
	}
	s.Schedule = fd.Schedule
	return s
}

// Save persists the current state with a last-saved stamp.
func (s *Store) Save() error {
	fd := fileData{
		Checklist: s.Checklist,
		Schedule:  s.Schedule,
		LastSaved: time.Now().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(fd, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dashboard data: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write dashboard data: %w", err)
	}
	return nil
}

// AddItem appends a task to a category, creating the category if needed.
func (s *Store) AddItem(category, task string) {
	s.Checklist[category] = append(s.Checklist[category], models.ChecklistItem{Task: task})
}

// ToggleItem flips the done flag on one item. Out-of-range indexes are a
// no-op.
func (s *Store) ToggleItem(category string, index int) {
	items := s.Checklist[category]
	if index < 0 || index >= len(items) {
		return
	}
	items[index].Done = !items[index].Done
}

// DeleteItem removes one item. Out-of-range indexes are a no-op.
func (s *Store) DeleteItem(category string, index int) {
	items := s.Checklist[category]
	if index < 0 || index >= len(items) {
		return
	}
	s.Checklist[category] = append(items[:index], items[index+1:]...)
}

// ResetDay unchecks every item and drops the manual schedule.
func (s *Store) ResetDay() {
	for category := range s.Checklist {
		for i := range s.Checklist[category] {
			s.Checklist[category][i].Done = false
		}
	}
	s.Schedule = nil
}

// AddScheduleEntry records a manual event and returns it with its new ID.
func (s *Store) AddScheduleEntry(timeText, title, location string) models.ScheduleEntry {
	entry := models.ScheduleEntry{
		ID:       uuid.New().String(),
		Time:     timeText,
		Title:    title,
		Location: location,
		Manual:   true,
	}
	s.Schedule = append(s.Schedule, entry)
	return entry
}

// DeleteScheduleEntry removes the entry with the given ID, if present.
func (s *Store) DeleteScheduleEntry(id string) {
	for i, entry := range s.Schedule {
		if entry.ID == id {
			s.Schedule = append(s.Schedule[:i], s.Schedule[i+1:]...)
			return
		}
	}
}

// Progress reports completed and total counts for one category.
func (s *Store) Progress(category string) (done, total int) {
	for _, item := range s.Checklist[category] {
		if item.Done {
			done++
		}
	}
	return done, len(s.Checklist[category])
}

func defaultChecklist() map[string][]models.ChecklistItem {
	return map[string][]models.ChecklistItem{
		"Medical": {
			{Task: "Take morning medications"},
			{Task: "Check if prescription refills are needed"},
			{Task: "Drink 8 glasses of water"},
		},
		"Financial": {
			{Task: "Check bank account balance"},
			{Task: "Review any pending bills"},
			{Task: "Update expense tracking"},
		},
		"Personal": {
			{Task: "Call family/friends"},
			{Task: "Practice gratitude - write 3 things"},
			{Task: "Tidy up living space"},
		},
		"Work": {
			{Task: "Review today's priorities"},
			{Task: "Check and respond to important emails"},
			{Task: "Plan tomorrow's schedule"},
		},
	}
}
