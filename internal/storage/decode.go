// ABOUTME: Per-entity decoding with required-field validation.
// ABOUTME: A decode error marks the whole record as corrupt.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/treino/internal/models"
)

// ErrInvalidRecord is returned when a stored record is missing required fields.
var ErrInvalidRecord = errors.New("invalid record")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecord, fmt.Sprintf(format, args...))
}

func requireID(kind string, id uuid.UUID) error {
	if id == uuid.Nil {
		return invalid("%s missing id", kind)
	}
	return nil
}

func validateSets(sets []models.Set) error {
	for i, s := range sets {
		if err := requireID("set", s.ID); err != nil {
			return err
		}
		if s.Reps < 0 {
			return invalid("set %d has negative reps", i)
		}
		if s.Weight != nil && *s.Weight < 0 {
			return invalid("set %d has negative weight", i)
		}
	}
	return nil
}

func validateExercises(exercises []models.Exercise) error {
	for _, e := range exercises {
		if err := requireID("exercise", e.ID); err != nil {
			return err
		}
		if strings.TrimSpace(e.Name) == "" {
			return invalid("exercise %s missing name", e.ID)
		}
		if err := validateSets(e.Sets); err != nil {
			return fmt.Errorf("exercise %s: %w", e.Name, err)
		}
		for _, h := range e.History {
			if err := validateSets(h.Sets); err != nil {
				return fmt.Errorf("exercise %s history: %w", e.Name, err)
			}
		}
	}
	return nil
}

func validateWorkout(w *models.Workout) error {
	if err := requireID("workout", w.ID); err != nil {
		return err
	}
	if w.Date.IsZero() {
		return invalid("workout %s missing date", w.ID)
	}
	if w.Exercises == nil {
		w.Exercises = []models.Exercise{}
	}
	return validateExercises(w.Exercises)
}

// DecodeWorkout parses and validates a single workout.
func DecodeWorkout(data []byte) (models.Workout, error) {
	var w models.Workout
	if err := json.Unmarshal(data, &w); err != nil {
		return models.Workout{}, fmt.Errorf("unmarshal workout: %w", err)
	}
	if err := validateWorkout(&w); err != nil {
		return models.Workout{}, err
	}
	return w, nil
}

func decodeWorkoutPtr(data []byte) (*models.Workout, error) {
	if isNull(data) {
		return nil, nil
	}
	w, err := DecodeWorkout(data)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func decodeHistory(data []byte) (models.History, error) {
	var h models.History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}
	if h == nil {
		return models.History{}, nil
	}
	for bucket, list := range h {
		for i := range list {
			if err := validateWorkout(&list[i]); err != nil {
				return nil, fmt.Errorf("bucket %s: %w", bucket, err)
			}
		}
	}
	return h, nil
}

func decodeSheets(data []byte) ([]models.WorkoutSheet, error) {
	var sheets []models.WorkoutSheet
	if err := json.Unmarshal(data, &sheets); err != nil {
		return nil, fmt.Errorf("unmarshal sheets: %w", err)
	}
	for i := range sheets {
		s := &sheets[i]
		if err := requireID("sheet", s.ID); err != nil {
			return nil, err
		}
		if strings.TrimSpace(s.Name) == "" {
			return nil, invalid("sheet %s missing name", s.ID)
		}
		if s.Exercises == nil {
			s.Exercises = []models.Exercise{}
		}
		if err := validateExercises(s.Exercises); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", s.Name, err)
		}
	}
	if sheets == nil {
		sheets = []models.WorkoutSheet{}
	}
	return sheets, nil
}

func decodeCycles(data []byte) ([]models.MesoCycle, error) {
	var cycles []models.MesoCycle
	if err := json.Unmarshal(data, &cycles); err != nil {
		return nil, fmt.Errorf("unmarshal cycles: %w", err)
	}
	for i := range cycles {
		c := &cycles[i]
		if err := requireID("cycle", c.ID); err != nil {
			return nil, err
		}
		if strings.TrimSpace(c.Name) == "" {
			return nil, invalid("cycle %s missing name", c.ID)
		}
		if c.WorkoutSheetIDs == nil {
			c.WorkoutSheetIDs = []uuid.UUID{}
		}
	}
	if cycles == nil {
		cycles = []models.MesoCycle{}
	}
	return cycles, nil
}

func decodeMeasurements(data []byte) ([]models.BodyMeasurement, error) {
	var ms []models.BodyMeasurement
	if err := json.Unmarshal(data, &ms); err != nil {
		return nil, fmt.Errorf("unmarshal measurements: %w", err)
	}
	for _, m := range ms {
		if err := requireID("measurement", m.ID); err != nil {
			return nil, err
		}
		if m.Date.IsZero() {
			return nil, invalid("measurement %s missing date", m.ID)
		}
	}
	if ms == nil {
		ms = []models.BodyMeasurement{}
	}
	return ms, nil
}

func validateUser(u *models.User) error {
	if err := requireID("user", u.ID); err != nil {
		return err
	}
	if strings.TrimSpace(u.Email) == "" {
		return invalid("user %s missing email", u.ID)
	}
	return nil
}

func decodeUserPtr(data []byte) (*models.User, error) {
	if isNull(data) {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	if err := validateUser(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

func decodeUsers(data []byte) ([]models.User, error) {
	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("unmarshal users: %w", err)
	}
	for i := range users {
		if err := validateUser(&users[i]); err != nil {
			return nil, err
		}
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func isNull(data []byte) bool {
	return strings.TrimSpace(string(data)) == "null"
}
