// ABOUTME: Repository over the fixed record keys of the workout tracker.
// ABOUTME: Corrupt records degrade to empty defaults; every write re-serializes the whole record.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/treino/internal/kv"
	"github.com/harperreed/treino/internal/models"
	"github.com/sirupsen/logrus"
)

// Record keys.
const (
	KeyCurrentWorkout   = "currentWorkout"
	KeyWorkoutHistory   = "workoutHistory"
	KeyWorkoutSheets    = "workoutSheets"
	KeyMesoCycles       = "mesoCycles"
	KeyBodyMeasurements = "bodyMeasurements"
	KeyUser             = "user"
	KeyUsers            = "users"
)

// Repository defines the storage interface for workout data.
type Repository interface {
	// Session
	CurrentWorkout() (*models.Workout, error)
	SaveCurrentWorkout(w *models.Workout) error
	ClearCurrentWorkout() error

	// History
	History() (models.History, error)
	SaveHistory(h models.History) error

	// Sheets and cycles
	Sheets() ([]models.WorkoutSheet, error)
	SaveSheets(sheets []models.WorkoutSheet) error
	Cycles() ([]models.MesoCycle, error)
	SaveCycles(cycles []models.MesoCycle) error

	// Measurements
	Measurements() ([]models.BodyMeasurement, error)
	SaveMeasurements(m []models.BodyMeasurement) error

	// Users
	CurrentUser() (*models.User, error)
	SaveCurrentUser(u *models.User) error
	ClearCurrentUser() error
	Users() ([]models.User, error)
	SaveUsers(users []models.User) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// Store implements Repository on a kv.Store.
type Store struct {
	kv  kv.Store
	log logrus.FieldLogger
}

// New wraps a kv.Store.
func New(store kv.Store) *Store {
	return &Store{kv: store, log: logrus.StandardLogger()}
}

// KV returns the underlying key-value store.
func (s *Store) KV() kv.Store {
	return s.kv
}

// WithLogger overrides the logger used for corrupt-record warnings.
func (s *Store) WithLogger(log logrus.FieldLogger) *Store {
	s.log = log
	return s
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.kv.Close()
}

// load reads a record and decodes it. A missing record yields empty with no error.
// A record that fails to decode is logged and also yields empty.
func load[T any](s *Store, key string, decode func([]byte) (T, error), empty T) (T, error) {
	data, err := s.kv.Get(key)
	if errors.Is(err, kv.ErrNotFound) {
		return empty, nil
	}
	if err != nil {
		return empty, fmt.Errorf("read %s: %w", key, err)
	}
	v, err := decode(data)
	if err != nil {
		s.log.WithFields(logrus.Fields{"key": key, "error": err}).Warn("discarding corrupt record")
		return empty, nil
	}
	return v, nil
}

func (s *Store) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) clear(key string) error {
	if err := s.kv.Delete(key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// CurrentWorkout returns the saved session, or nil if there is none.
func (s *Store) CurrentWorkout() (*models.Workout, error) {
	return load[*models.Workout](s, KeyCurrentWorkout, decodeWorkoutPtr, nil)
}

// SaveCurrentWorkout replaces the saved session.
func (s *Store) SaveCurrentWorkout(w *models.Workout) error {
	return s.save(KeyCurrentWorkout, w)
}

// ClearCurrentWorkout removes the saved session.
func (s *Store) ClearCurrentWorkout() error {
	return s.clear(KeyCurrentWorkout)
}

// History returns the weekday-bucketed workout history.
func (s *Store) History() (models.History, error) {
	return load(s, KeyWorkoutHistory, decodeHistory, models.History{})
}

// SaveHistory replaces the workout history.
func (s *Store) SaveHistory(h models.History) error {
	return s.save(KeyWorkoutHistory, h)
}

// Sheets returns every workout sheet.
func (s *Store) Sheets() ([]models.WorkoutSheet, error) {
	return load(s, KeyWorkoutSheets, decodeSheets, []models.WorkoutSheet{})
}

// SaveSheets replaces the sheet collection.
func (s *Store) SaveSheets(sheets []models.WorkoutSheet) error {
	return s.save(KeyWorkoutSheets, sheets)
}

// Cycles returns every meso-cycle.
func (s *Store) Cycles() ([]models.MesoCycle, error) {
	return load(s, KeyMesoCycles, decodeCycles, []models.MesoCycle{})
}

// SaveCycles replaces the cycle collection.
func (s *Store) SaveCycles(cycles []models.MesoCycle) error {
	return s.save(KeyMesoCycles, cycles)
}

// Measurements returns every body measurement.
func (s *Store) Measurements() ([]models.BodyMeasurement, error) {
	return load(s, KeyBodyMeasurements, decodeMeasurements, []models.BodyMeasurement{})
}

// SaveMeasurements replaces the measurement collection.
func (s *Store) SaveMeasurements(m []models.BodyMeasurement) error {
	return s.save(KeyBodyMeasurements, m)
}

// CurrentUser returns the signed-in user, or nil.
func (s *Store) CurrentUser() (*models.User, error) {
	return load[*models.User](s, KeyUser, decodeUserPtr, nil)
}

// SaveCurrentUser records the signed-in user.
func (s *Store) SaveCurrentUser(u *models.User) error {
	return s.save(KeyUser, u)
}

// ClearCurrentUser signs the user out.
func (s *Store) ClearCurrentUser() error {
	return s.clear(KeyUser)
}

// Users returns the local user registry.
func (s *Store) Users() ([]models.User, error) {
	return load(s, KeyUsers, decodeUsers, []models.User{})
}

// SaveUsers replaces the user registry.
func (s *Store) SaveUsers(users []models.User) error {
	return s.save(KeyUsers, users)
}
