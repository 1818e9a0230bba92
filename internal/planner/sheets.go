// ABOUTME: Workout sheet CRUD, sharing, and favourites.
// ABOUTME: Sheets referenced by a meso-cycle cannot be deleted.
package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/treino/internal/auth"
	"github.com/harperreed/treino/internal/models"
	"github.com/harperreed/treino/internal/storage"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrAmbiguous         = errors.New("ambiguous id prefix")
	ErrReferencedByCycle = errors.New("sheet is referenced by a meso-cycle")
	ErrNotPublic         = errors.New("sheet is not public")
)

// UserStore persists changes to a user profile.
type UserStore interface {
	Update(u *models.User) error
}

// Manager owns sheets and cycles and enforces their integrity rules.
type Manager struct {
	repo  storage.Repository
	users UserStore
	now   func() time.Time
}

// NewManager creates a manager over the repository.
func NewManager(repo storage.Repository) *Manager {
	return &Manager{repo: repo, now: time.Now}
}

// WithClock overrides the time source.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// WithUsers sets where favourite changes are persisted.
func (m *Manager) WithUsers(users UserStore) *Manager {
	m.users = users
	return m
}

// findByPrefix returns the index of the single item whose id starts with prefix.
func findByPrefix[T any](items []T, id func(T) uuid.UUID, prefix string) (int, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return -1, ErrNotFound
	}
	match := -1
	for i, x := range items {
		if strings.HasPrefix(id(x).String(), prefix) {
			if match >= 0 {
				return -1, fmt.Errorf("%w: %s", ErrAmbiguous, prefix)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: %s", ErrNotFound, prefix)
	}
	return match, nil
}

func sheetID(s models.WorkoutSheet) uuid.UUID { return s.ID }

// ListSheets returns every sheet.
func (m *Manager) ListSheets() ([]models.WorkoutSheet, error) {
	return m.repo.Sheets()
}

// GetSheet finds a sheet by id or unique id prefix.
func (m *Manager) GetSheet(idOrPrefix string) (*models.WorkoutSheet, error) {
	sheets, err := m.repo.Sheets()
	if err != nil {
		return nil, err
	}
	i, err := findByPrefix(sheets, sheetID, idOrPrefix)
	if err != nil {
		return nil, err
	}
	return &sheets[i], nil
}

func validateExercises(exercises []models.Exercise) error {
	for _, e := range exercises {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("%w: exercise name is required", ErrValidation)
		}
		if e.RestTimeMinutes <= 0 {
			return fmt.Errorf("%w: rest time for %s must be positive", ErrValidation, e.Name)
		}
		for _, s := range e.Sets {
			if s.Reps < 0 {
				return fmt.Errorf("%w: reps for %s cannot be negative", ErrValidation, e.Name)
			}
			if s.WeightValue() < 0 {
				return fmt.Errorf("%w: weight for %s cannot be negative", ErrValidation, e.Name)
			}
		}
	}
	return nil
}

// SaveSheet inserts or replaces a sheet by id.
// Public sheets always carry a share id.
func (m *Manager) SaveSheet(sheet *models.WorkoutSheet) error {
	sheet.Name = strings.TrimSpace(sheet.Name)
	if sheet.Name == "" {
		return fmt.Errorf("%w: sheet name is required", ErrValidation)
	}
	if sheet.Weekday != "" && !models.IsValidWeekday(string(sheet.Weekday)) {
		return fmt.Errorf("%w: unknown weekday %q", ErrValidation, sheet.Weekday)
	}
	if err := validateExercises(sheet.Exercises); err != nil {
		return err
	}

	if sheet.ID == uuid.Nil {
		sheet.ID = uuid.New()
	}
	if sheet.CreatedAt.IsZero() {
		sheet.CreatedAt = m.now()
	}
	if sheet.Exercises == nil {
		sheet.Exercises = []models.Exercise{}
	}
	if sheet.IsPublic && sheet.ShareID == "" {
		sheet.ShareID = uuid.NewString()
	}

	sheets, err := m.repo.Sheets()
	if err != nil {
		return err
	}
	replaced := false
	for i := range sheets {
		if sheets[i].ID == sheet.ID {
			sheets[i] = *sheet
			replaced = true
			break
		}
	}
	if !replaced {
		sheets = append(sheets, *sheet)
	}
	if err := m.repo.SaveSheets(sheets); err != nil {
		return fmt.Errorf("save sheets: %w", err)
	}
	return nil
}

// DeleteSheet removes a sheet unless a cycle still references it.
func (m *Manager) DeleteSheet(id uuid.UUID) error {
	cycles, err := m.repo.Cycles()
	if err != nil {
		return err
	}
	var refs []string
	for _, c := range cycles {
		if c.References(id) {
			refs = append(refs, c.Name)
		}
	}
	if len(refs) > 0 {
		return fmt.Errorf("%w: remove it from %s first", ErrReferencedByCycle, strings.Join(refs, ", "))
	}

	sheets, err := m.repo.Sheets()
	if err != nil {
		return err
	}
	kept := make([]models.WorkoutSheet, 0, len(sheets))
	for _, s := range sheets {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(sheets) {
		return fmt.Errorf("%w: sheet %s", ErrNotFound, id)
	}
	if err := m.repo.SaveSheets(kept); err != nil {
		return fmt.Errorf("save sheets: %w", err)
	}
	return nil
}

// SetPublic publishes or unpublishes a sheet.
func (m *Manager) SetPublic(id uuid.UUID, public bool) (*models.WorkoutSheet, error) {
	sheet, err := m.GetSheet(id.String())
	if err != nil {
		return nil, err
	}
	sheet.IsPublic = public
	if err := m.SaveSheet(sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

// ShareWith grants a user access to a sheet.
func (m *Manager) ShareWith(id uuid.UUID, userID string) (*models.WorkoutSheet, error) {
	sheet, err := m.GetSheet(id.String())
	if err != nil {
		return nil, err
	}
	if !sheet.IsSharedWith(userID) {
		sheet.SharedWith = append(sheet.SharedWith, userID)
	}
	if err := m.SaveSheet(sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

// ShareLink returns {origin}/workout/{shareId} for a public sheet.
func ShareLink(origin string, sheet *models.WorkoutSheet) (string, error) {
	if !sheet.IsPublic || sheet.ShareID == "" {
		return "", ErrNotPublic
	}
	return strings.TrimRight(origin, "/") + "/workout/" + sheet.ShareID, nil
}

// FindShared returns the public sheet with the given share id.
func (m *Manager) FindShared(shareID string) (*models.WorkoutSheet, error) {
	if shareID == "" {
		return nil, ErrNotFound
	}
	sheets, err := m.repo.Sheets()
	if err != nil {
		return nil, err
	}
	for i := range sheets {
		if sheets[i].ShareID == shareID && sheets[i].IsPublic {
			return &sheets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: share %s", ErrNotFound, shareID)
}

// SheetFromWorkout saves a new private sheet built from the workout's exercises.
func (m *Manager) SheetFromWorkout(w *models.Workout, owner auth.Identity) (*models.WorkoutSheet, error) {
	if len(w.Exercises) == 0 {
		return nil, fmt.Errorf("%w: add exercises before creating a sheet", ErrValidation)
	}

	exercises := make([]models.Exercise, len(w.Exercises))
	for i, e := range w.Exercises {
		c := e.Copy()
		for j := range c.Sets {
			c.Sets[j].Completed = false
		}
		exercises[i] = c
	}

	sheet := &models.WorkoutSheet{
		ID:        uuid.New(),
		Name:      w.Name,
		Weekday:   w.Weekday,
		Exercises: exercises,
		ShareID:   uuid.NewString(),
		CreatedAt: m.now(),
		CreatedBy: owner.UserID,
	}
	if err := m.SaveSheet(sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

// OwnedBy returns the sheets created by a user.
func (m *Manager) OwnedBy(userID string) ([]models.WorkoutSheet, error) {
	return m.filterSheets(func(s *models.WorkoutSheet) bool { return s.CreatedBy == userID })
}

// SharedWith returns the sheets other users shared with a user.
func (m *Manager) SharedWith(userID string) ([]models.WorkoutSheet, error) {
	return m.filterSheets(func(s *models.WorkoutSheet) bool { return s.IsSharedWith(userID) })
}

// PublicSheets returns every public sheet.
func (m *Manager) PublicSheets() ([]models.WorkoutSheet, error) {
	return m.filterSheets(func(s *models.WorkoutSheet) bool { return s.IsPublic })
}

func (m *Manager) filterSheets(keep func(*models.WorkoutSheet) bool) ([]models.WorkoutSheet, error) {
	sheets, err := m.repo.Sheets()
	if err != nil {
		return nil, err
	}
	out := []models.WorkoutSheet{}
	for i := range sheets {
		if keep(&sheets[i]) {
			out = append(out, sheets[i])
		}
	}
	return out, nil
}

// SaveFavourite adds a sheet to the user's saved list.
func (m *Manager) SaveFavourite(u *models.User, id uuid.UUID) error {
	if _, err := m.GetSheet(id.String()); err != nil {
		return err
	}
	if u.HasSaved(id) {
		return nil
	}
	saved := make([]uuid.UUID, 0, len(u.SavedWorkouts)+1)
	saved = append(saved, u.SavedWorkouts...)
	return m.setFavourites(u, append(saved, id))
}

// RemoveFavourite drops a sheet from the user's saved list.
func (m *Manager) RemoveFavourite(u *models.User, id uuid.UUID) error {
	kept := make([]uuid.UUID, 0, len(u.SavedWorkouts))
	for _, s := range u.SavedWorkouts {
		if s != id {
			kept = append(kept, s)
		}
	}
	return m.setFavourites(u, kept)
}

// setFavourites writes the new saved list and updates u only once the write succeeds.
func (m *Manager) setFavourites(u *models.User, saved []uuid.UUID) error {
	next := *u
	next.SavedWorkouts = saved
	if err := m.updateUser(&next); err != nil {
		return err
	}
	*u = next
	return nil
}

// SavedSheets returns the user's saved sheets that still exist.
func (m *Manager) SavedSheets(u *models.User) ([]models.WorkoutSheet, error) {
	return m.filterSheets(func(s *models.WorkoutSheet) bool { return u.HasSaved(s.ID) })
}

func (m *Manager) updateUser(u *models.User) error {
	if m.users == nil {
		return errors.New("no user store configured")
	}
	return m.users.Update(u)
}
