// ABOUTME: Body measurement CRUD over the bodyMeasurements record.
// ABOUTME: Supports add, get (with prefix matching), list, and delete.
package measure

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/treino/internal/models"
	"github.com/harperreed/treino/internal/storage"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("measurement not found")
)

// Service manages body measurements.
type Service struct {
	repo storage.Repository
}

// NewService creates a measurement service over the repository.
func NewService(repo storage.Repository) *Service {
	return &Service{repo: repo}
}

// Add stores a measurement. At least one field must be set and none may be negative.
func (s *Service) Add(m *models.BodyMeasurement) error {
	if m.IsEmpty() {
		return fmt.Errorf("%w: record at least one measurement", ErrValidation)
	}
	for _, f := range models.AllMeasurementFields() {
		if v, ok := m.Field(f); ok && v < 0 {
			return fmt.Errorf("%w: %s cannot be negative", ErrValidation, f)
		}
	}
	if v, ok := m.Field(models.FieldBodyFat); ok && v > 100 {
		return fmt.Errorf("%w: body_fat is a percentage", ErrValidation)
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Date.IsZero() {
		m.Date = time.Now()
	}

	all, err := s.repo.Measurements()
	if err != nil {
		return err
	}
	all = append(all, *m)
	if err := s.repo.SaveMeasurements(all); err != nil {
		return fmt.Errorf("failed to add measurement: %w", err)
	}
	return nil
}

// Get retrieves a measurement by ID or unique ID prefix.
func (s *Service) Get(idOrPrefix string) (*models.BodyMeasurement, error) {
	all, err := s.repo.Measurements()
	if err != nil {
		return nil, err
	}
	i, err := find(all, idOrPrefix)
	if err != nil {
		return nil, err
	}
	return &all[i], nil
}

// List returns recent measurements newest first, optionally only those that recorded field.
// A limit of zero or less returns all of them.
func (s *Service) List(field *models.MeasurementField, limit int) ([]models.BodyMeasurement, error) {
	all, err := s.repo.Measurements()
	if err != nil {
		return nil, err
	}
	out := make([]models.BodyMeasurement, 0, len(all))
	for _, m := range all {
		if field != nil {
			if _, ok := m.Field(*field); !ok {
				continue
			}
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Latest returns the most recent value recorded for each field.
func (s *Service) Latest() (map[models.MeasurementField]models.BodyMeasurement, error) {
	all, err := s.List(nil, 0)
	if err != nil {
		return nil, err
	}
	latest := make(map[models.MeasurementField]models.BodyMeasurement)
	for _, m := range all {
		for _, f := range models.AllMeasurementFields() {
			if _, seen := latest[f]; seen {
				continue
			}
			if _, ok := m.Field(f); ok {
				latest[f] = m
			}
		}
	}
	return latest, nil
}

// Delete removes a measurement by ID or unique ID prefix.
func (s *Service) Delete(idOrPrefix string) error {
	all, err := s.repo.Measurements()
	if err != nil {
		return err
	}
	i, err := find(all, idOrPrefix)
	if err != nil {
		return err
	}
	all = append(all[:i], all[i+1:]...)
	if err := s.repo.SaveMeasurements(all); err != nil {
		return fmt.Errorf("failed to delete measurement: %w", err)
	}
	return nil
}

func find(all []models.BodyMeasurement, idOrPrefix string) (int, error) {
	prefix := strings.ToLower(strings.TrimSpace(idOrPrefix))
	if prefix == "" {
		return -1, ErrNotFound
	}
	match := -1
	for i := range all {
		if strings.HasPrefix(all[i].ID.String(), prefix) {
			if match >= 0 {
				return -1, fmt.Errorf("ambiguous id prefix %q", idOrPrefix)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return match, nil
}
