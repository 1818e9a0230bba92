// ABOUTME: Export and import of every record for backup and restore.
// ABOUTME: Supports JSON, YAML, and Markdown export; JSON and YAML import.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/treino/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format.
type ExportData struct {
	Version        string                   `json:"version" yaml:"version"`
	ExportedAt     time.Time                `json:"exported_at" yaml:"exported_at"`
	Tool           string                   `json:"tool" yaml:"tool"`
	CurrentWorkout *models.Workout          `json:"current_workout,omitempty" yaml:"current_workout,omitempty"`
	History        models.History           `json:"history" yaml:"history"`
	Sheets         []models.WorkoutSheet    `json:"sheets" yaml:"sheets"`
	Cycles         []models.MesoCycle       `json:"cycles" yaml:"cycles"`
	Measurements   []models.BodyMeasurement `json:"measurements" yaml:"measurements"`
	Users          []models.User            `json:"users" yaml:"users"`
}

// ImportSummary counts records added by an import.
type ImportSummary struct {
	Workouts     int
	Sheets       int
	Cycles       int
	Measurements int
	Users        int
}

// GetAllData retrieves all data for export.
func (s *Store) GetAllData() (*ExportData, error) {
	current, err := s.CurrentWorkout()
	if err != nil {
		return nil, fmt.Errorf("get current workout: %w", err)
	}
	history, err := s.History()
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	sheets, err := s.Sheets()
	if err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	cycles, err := s.Cycles()
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	measurements, err := s.Measurements()
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	users, err := s.Users()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return &ExportData{
		Version:        "1.0",
		ExportedAt:     time.Now(),
		Tool:           "treino",
		CurrentWorkout: current,
		History:        history,
		Sheets:         sheets,
		Cycles:         cycles,
		Measurements:   measurements,
		Users:          users,
	}, nil
}

// ImportData merges an export into the store. Records whose id already exists are replaced;
// history snapshots already present are skipped.
func (s *Store) ImportData(data *ExportData) error {
	_, err := s.importData(data)
	return err
}

func (s *Store) importData(data *ExportData) (*ImportSummary, error) {
	summary := &ImportSummary{}

	if data.CurrentWorkout != nil {
		if err := validateWorkout(data.CurrentWorkout); err != nil {
			return nil, fmt.Errorf("import current workout: %w", err)
		}
		if err := s.SaveCurrentWorkout(data.CurrentWorkout); err != nil {
			return nil, fmt.Errorf("import current workout: %w", err)
		}
	}

	if len(data.History) > 0 {
		history, err := s.History()
		if err != nil {
			return nil, err
		}
		seen := make(map[uuid.UUID]bool)
		for _, w := range history.All() {
			seen[w.ID] = true
		}
		buckets := make([]string, 0, len(data.History))
		for b := range data.History {
			buckets = append(buckets, b)
		}
		sort.Strings(buckets)
		for _, bucket := range buckets {
			for _, w := range data.History[bucket] {
				if seen[w.ID] {
					continue
				}
				if err := validateWorkout(&w); err != nil {
					return nil, fmt.Errorf("import history: %w", err)
				}
				history[bucket] = append(history[bucket], w)
				seen[w.ID] = true
				summary.Workouts++
			}
		}
		if err := s.SaveHistory(history); err != nil {
			return nil, fmt.Errorf("import history: %w", err)
		}
	}

	if len(data.Sheets) > 0 {
		sheets, err := s.Sheets()
		if err != nil {
			return nil, err
		}
		sheets = upsert(sheets, data.Sheets, func(x models.WorkoutSheet) uuid.UUID { return x.ID })
		if err := s.SaveSheets(sheets); err != nil {
			return nil, fmt.Errorf("import sheets: %w", err)
		}
		summary.Sheets = len(data.Sheets)
	}

	if len(data.Cycles) > 0 {
		cycles, err := s.Cycles()
		if err != nil {
			return nil, err
		}
		cycles = upsert(cycles, data.Cycles, func(x models.MesoCycle) uuid.UUID { return x.ID })
		if err := s.SaveCycles(cycles); err != nil {
			return nil, fmt.Errorf("import cycles: %w", err)
		}
		summary.Cycles = len(data.Cycles)
	}

	if len(data.Measurements) > 0 {
		ms, err := s.Measurements()
		if err != nil {
			return nil, err
		}
		ms = upsert(ms, data.Measurements, func(x models.BodyMeasurement) uuid.UUID { return x.ID })
		if err := s.SaveMeasurements(ms); err != nil {
			return nil, fmt.Errorf("import measurements: %w", err)
		}
		summary.Measurements = len(data.Measurements)
	}

	if len(data.Users) > 0 {
		users, err := s.Users()
		if err != nil {
			return nil, err
		}
		users = upsert(users, data.Users, func(x models.User) uuid.UUID { return x.ID })
		if err := s.SaveUsers(users); err != nil {
			return nil, fmt.Errorf("import users: %w", err)
		}
		summary.Users = len(data.Users)
	}

	return summary, nil
}

// upsert replaces items in dst that share an id with src and appends the rest.
func upsert[T any](dst, src []T, id func(T) uuid.UUID) []T {
	index := make(map[uuid.UUID]int, len(dst))
	for i, x := range dst {
		index[id(x)] = i
	}
	for _, x := range src {
		if i, ok := index[id(x)]; ok {
			dst[i] = x
			continue
		}
		index[id(x)] = len(dst)
		dst = append(dst, x)
	}
	return dst
}

// ExportJSON exports all data as JSON.
func (s *Store) ExportJSON() ([]byte, error) {
	data, err := s.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func (s *Store) ExportYAML() ([]byte, error) {
	data, err := s.GetAllData()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ImportJSON imports data from JSON bytes.
func (s *Store) ImportJSON(data []byte) (*ImportSummary, error) {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return s.importData(&exportData)
}

// ImportYAML imports data from YAML bytes.
func (s *Store) ImportYAML(data []byte) (*ImportSummary, error) {
	var exportData ExportData
	if err := yaml.Unmarshal(data, &exportData); err != nil {
		return nil, fmt.Errorf("unmarshal YAML: %w", err)
	}
	return s.importData(&exportData)
}

// ExportMarkdown renders workout history as Markdown tables, newest first.
func (s *Store) ExportMarkdown(since *time.Time) (string, error) {
	history, err := s.History()
	if err != nil {
		return "", err
	}

	workouts := history.All()
	if since != nil {
		var filtered []models.Workout
		for _, w := range workouts {
			if !w.Date.Before(*since) {
				filtered = append(filtered, w)
			}
		}
		workouts = filtered
	}
	sort.SliceStable(workouts, func(i, j int) bool {
		return workouts[i].Date.After(workouts[j].Date)
	})

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Treino Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(workouts) == 0 {
		sb.WriteString("No workouts recorded.\n")
		return sb.String(), nil
	}

	for _, w := range workouts {
		title := w.Name
		if title == "" {
			title = "Treino"
		}
		sb.WriteString(fmt.Sprintf("## %s - %s (%s)\n\n", w.Date.Format("2006-01-02 15:04"), title, w.Weekday.Bucket()))
		sb.WriteString("| Exercise | Set | Reps | Weight | Done |\n")
		sb.WriteString("|----------|-----|------|--------|------|\n")
		for _, e := range w.Exercises {
			for i, set := range e.Sets {
				done := ""
				if set.Completed {
					done = "x"
				}
				sb.WriteString(fmt.Sprintf("| %s | %d | %d | %.1f kg | %s |\n",
					e.Name, i+1, set.Reps, set.WeightValue(), done))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
