// ABOUTME: WorkoutSheet templates and MesoCycle groupings of sheets.
// ABOUTME: Cycles reference sheets by id only and never own them.
package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutSheet is a reusable workout template.
type WorkoutSheet struct {
	ID          uuid.UUID  `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Weekday     Weekday    `json:"weekday,omitempty" yaml:"weekday,omitempty"`
	Exercises   []Exercise `json:"exercises" yaml:"exercises"`
	IsPublic    bool       `json:"isPublic" yaml:"isPublic"`
	ShareID     string     `json:"shareId,omitempty" yaml:"shareId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	CreatedBy   string     `json:"createdBy,omitempty" yaml:"createdBy,omitempty"`
	SharedWith  []string   `json:"sharedWith,omitempty" yaml:"sharedWith,omitempty"`
}

// NewWorkoutSheet creates an empty private sheet.
func NewWorkoutSheet(name string) *WorkoutSheet {
	return &WorkoutSheet{
		ID:        uuid.New(),
		Name:      name,
		Exercises: []Exercise{},
		CreatedAt: time.Now(),
	}
}

// WithDescription sets the description.
func (s *WorkoutSheet) WithDescription(desc string) *WorkoutSheet {
	s.Description = desc
	return s
}

// WithWeekday sets the weekday the sheet is planned for.
func (s *WorkoutSheet) WithWeekday(day Weekday) *WorkoutSheet {
	s.Weekday = day
	return s
}

// WithExercises appends exercises.
func (s *WorkoutSheet) WithExercises(exercises ...Exercise) *WorkoutSheet {
	s.Exercises = append(s.Exercises, exercises...)
	return s
}

// WithCreatedBy records the owning user id.
func (s *WorkoutSheet) WithCreatedBy(userID string) *WorkoutSheet {
	s.CreatedBy = userID
	return s
}

// IsSharedWith reports whether userID was granted access to the sheet.
func (s *WorkoutSheet) IsSharedWith(userID string) bool {
	for _, id := range s.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// MesoCycle groups sheets over a training period.
type MesoCycle struct {
	ID              uuid.UUID   `json:"id" yaml:"id"`
	Name            string      `json:"name" yaml:"name"`
	Description     string      `json:"description,omitempty" yaml:"description,omitempty"`
	StartDate       time.Time   `json:"startDate" yaml:"startDate"`
	EndDate         time.Time   `json:"endDate" yaml:"endDate"`
	WorkoutSheetIDs []uuid.UUID `json:"workoutSheetIds" yaml:"workoutSheetIds"`
	CreatedAt       time.Time   `json:"createdAt" yaml:"createdAt"`
	CreatedBy       string      `json:"createdBy,omitempty" yaml:"createdBy,omitempty"`
}

// NewMesoCycle creates a cycle starting at start and lasting one calendar month.
func NewMesoCycle(name string, start time.Time) *MesoCycle {
	return &MesoCycle{
		ID:              uuid.New(),
		Name:            name,
		StartDate:       start,
		EndDate:         AddMonths(start, 1),
		WorkoutSheetIDs: []uuid.UUID{},
		CreatedAt:       time.Now(),
	}
}

// WithEndDate sets the end of the cycle.
func (c *MesoCycle) WithEndDate(end time.Time) *MesoCycle {
	c.EndDate = end
	return c
}

// WithSheets adds sheet references.
func (c *MesoCycle) WithSheets(ids ...uuid.UUID) *MesoCycle {
	c.WorkoutSheetIDs = append(c.WorkoutSheetIDs, ids...)
	return c
}

// WithDescription sets the description.
func (c *MesoCycle) WithDescription(desc string) *MesoCycle {
	c.Description = desc
	return c
}

// IsActive reports whether now falls within [StartDate, EndDate].
func (c *MesoCycle) IsActive(now time.Time) bool {
	return !now.Before(c.StartDate) && !now.After(c.EndDate)
}

// References reports whether the cycle points at the sheet.
func (c *MesoCycle) References(sheetID uuid.UUID) bool {
	for _, id := range c.WorkoutSheetIDs {
		if id == sheetID {
			return true
		}
	}
	return false
}

// AddMonths adds calendar months, clamping the day to the last day of the target month.
// Jan 31 + 1 month is Feb 28 (or 29), and Mar 31 - 1 month is likewise Feb 28 (or 29).
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
