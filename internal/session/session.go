// ABOUTME: The in-progress workout and the edits a user makes to it.
// ABOUTME: Saving always keeps the current workout and logs history only when a set was done.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/treino/internal/auth"
	"github.com/harperreed/treino/internal/history"
	"github.com/harperreed/treino/internal/models"
	"github.com/harperreed/treino/internal/notify"
	"github.com/harperreed/treino/internal/planner"
	"github.com/harperreed/treino/internal/storage"
	"github.com/sirupsen/logrus"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("only the author can delete this comment")
)

// State is where the session is in its edit/save lifecycle.
type State int

const (
	Empty State = iota
	Editing
	Saved
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Editing:
		return "editing"
	case Saved:
		return "saved"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session owns the current workout.
type Session struct {
	repo     storage.Repository
	notes    *notify.Manager
	identity auth.Provider
	now      func() time.Time
	log      logrus.FieldLogger

	workout *models.Workout
	state   State
}

// New creates a session with a fresh default workout.
func New(repo storage.Repository, notes *notify.Manager) *Session {
	s := &Session{
		repo:     repo,
		notes:    notes,
		identity: auth.Static{},
		now:      time.Now,
		log:      logrus.StandardLogger(),
	}
	s.Reset()
	return s
}

// WithClock overrides the time source.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	s.workout.Date = now()
	return s
}

// WithIdentity sets who comments are attributed to.
func (s *Session) WithIdentity(p auth.Provider) *Session {
	s.identity = p
	return s
}

// WithLogger overrides the logger.
func (s *Session) WithLogger(log logrus.FieldLogger) *Session {
	s.log = log
	return s
}

// Workout returns a deep copy of the current workout.
func (s *Session) Workout() models.Workout {
	return s.workout.Copy()
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Reset replaces the current workout with an empty default one.
func (s *Session) Reset() {
	s.workout = models.NewWorkout(models.DefaultWorkoutName)
	if s.now != nil {
		s.workout.Date = s.now()
	}
	s.state = Empty
}

// Load hydrates the session from the stored current workout.
// A missing record leaves a fresh default workout in place.
func (s *Session) Load() error {
	w, err := s.repo.CurrentWorkout()
	if err != nil {
		return fmt.Errorf("load current workout: %w", err)
	}
	if w == nil {
		s.Reset()
		return nil
	}
	s.workout = w
	switch {
	case w.SavedAt != nil:
		s.state = Saved
	case len(w.Exercises) == 0:
		s.state = Empty
	default:
		s.state = Editing
	}
	return nil
}

// Persist writes the current workout without touching history.
func (s *Session) Persist() error {
	if err := s.repo.SaveCurrentWorkout(s.workout); err != nil {
		return fmt.Errorf("save current workout: %w", err)
	}
	return nil
}

func (s *Session) touch() {
	s.state = Editing
	s.workout.SavedAt = nil
}

// Rename changes the workout name.
func (s *Session) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: workout name is required", ErrValidation)
	}
	s.workout.Name = name
	s.touch()
	return nil
}

// ExerciseForm holds the fields used to add an exercise.
type ExerciseForm struct {
	Name            string
	Sets            int
	Reps            int
	Weight          float64
	RestTimeMinutes float64
	MuscleGroups    []models.MuscleGroup
}

// DefaultExerciseForm returns three sets of twelve reps at zero weight with one minute rest.
func DefaultExerciseForm(name string) ExerciseForm {
	return ExerciseForm{
		Name:            name,
		Sets:            models.DefaultSetCount,
		Reps:            models.DefaultReps,
		RestTimeMinutes: models.DefaultRestTimeMinutes,
	}
}

func (f ExerciseForm) validate() error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return fmt.Errorf("%w: exercise name is required", ErrValidation)
	case f.Sets < 1:
		return fmt.Errorf("%w: at least one set is required", ErrValidation)
	case f.Reps < 0:
		return fmt.Errorf("%w: reps cannot be negative", ErrValidation)
	case f.Weight < 0:
		return fmt.Errorf("%w: weight cannot be negative", ErrValidation)
	case f.RestTimeMinutes <= 0:
		return fmt.Errorf("%w: rest time must be positive", ErrValidation)
	}
	for _, g := range f.MuscleGroups {
		if !models.IsValidMuscleGroup(string(g)) {
			return fmt.Errorf("%w: unknown muscle group %q", ErrValidation, g)
		}
	}
	return nil
}

// AddExercise appends an exercise built from the form.
// Past completed occurrences of the same name are attached as its history.
func (s *Session) AddExercise(f ExerciseForm) (*models.Exercise, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	e := models.NewExercise(strings.TrimSpace(f.Name)).
		WithSets(f.Sets, f.Reps).
		WithRestTime(f.RestTimeMinutes).
		WithMuscleGroups(f.MuscleGroups...)
	for i := range e.Sets {
		e.Sets[i] = e.Sets[i].WithWeight(f.Weight)
	}

	h, err := s.repo.History()
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if past := history.ExerciseHistoryFor(h, e.Name); len(past) > 0 {
		e.History = past
	}

	s.workout.Exercises = append(s.workout.Exercises, *e)
	s.touch()
	return &s.workout.Exercises[len(s.workout.Exercises)-1], nil
}

// ExercisePatch lists the exercise fields to change. Nil fields are kept.
type ExercisePatch struct {
	Name            *string
	RestTimeMinutes *float64
	MuscleGroups    []models.MuscleGroup
}

// UpdateExercise applies a patch to the exercise with the given id.
// An unknown id is a no-op.
func (s *Session) UpdateExercise(id uuid.UUID, p ExercisePatch) error {
	e, ok := s.workout.FindExercise(id)
	if !ok {
		return nil
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: exercise name is required", ErrValidation)
	}
	if p.RestTimeMinutes != nil && *p.RestTimeMinutes <= 0 {
		return fmt.Errorf("%w: rest time must be positive", ErrValidation)
	}
	for _, g := range p.MuscleGroups {
		if !models.IsValidMuscleGroup(string(g)) {
			return fmt.Errorf("%w: unknown muscle group %q", ErrValidation, g)
		}
	}

	if p.Name != nil {
		e.Name = strings.TrimSpace(*p.Name)
	}
	if p.RestTimeMinutes != nil {
		e.RestTimeMinutes = *p.RestTimeMinutes
	}
	if p.MuscleGroups != nil {
		e.MuscleGroups = models.UniqueMuscleGroups(p.MuscleGroups)
	}
	s.touch()
	return nil
}

// SetRestTime changes an exercise's rest between sets.
func (s *Session) SetRestTime(id uuid.UUID, minutes float64) error {
	if _, ok := s.workout.FindExercise(id); !ok {
		return fmt.Errorf("%w: exercise %s", ErrNotFound, id)
	}
	return s.UpdateExercise(id, ExercisePatch{RestTimeMinutes: &minutes})
}

// RemoveExercise deletes an exercise and reports whether it existed.
func (s *Session) RemoveExercise(id uuid.UUID) bool {
	for i := range s.workout.Exercises {
		if s.workout.Exercises[i].ID == id {
			s.workout.Exercises = append(s.workout.Exercises[:i], s.workout.Exercises[i+1:]...)
			s.touch()
			return true
		}
	}
	return false
}

func (s *Session) exercise(id uuid.UUID) (*models.Exercise, error) {
	e, ok := s.workout.FindExercise(id)
	if !ok {
		return nil, fmt.Errorf("%w: exercise %s", ErrNotFound, id)
	}
	return e, nil
}

func findSet(e *models.Exercise, id uuid.UUID) (int, error) {
	for i := range e.Sets {
		if e.Sets[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: set %s", ErrNotFound, id)
}

// AddSet appends an empty set with zero reps and zero weight.
func (s *Session) AddSet(exerciseID uuid.UUID) (*models.Set, error) {
	e, err := s.exercise(exerciseID)
	if err != nil {
		return nil, err
	}
	e.Sets = append(e.Sets, models.NewSet(0))
	s.touch()
	return &e.Sets[len(e.Sets)-1], nil
}

// RemoveSet deletes one set from an exercise.
func (s *Session) RemoveSet(exerciseID, setID uuid.UUID) error {
	e, err := s.exercise(exerciseID)
	if err != nil {
		return err
	}
	i, err := findSet(e, setID)
	if err != nil {
		return err
	}
	e.Sets = append(e.Sets[:i], e.Sets[i+1:]...)
	s.touch()
	return nil
}

// SetPatch lists the set fields to change. Nil fields are kept.
type SetPatch struct {
	Reps      *int
	Weight    *float64
	Completed *bool
}

// UpdateSet applies a patch to one set.
func (s *Session) UpdateSet(exerciseID, setID uuid.UUID, p SetPatch) error {
	e, err := s.exercise(exerciseID)
	if err != nil {
		return err
	}
	i, err := findSet(e, setID)
	if err != nil {
		return err
	}
	if p.Reps != nil && *p.Reps < 0 {
		return fmt.Errorf("%w: reps cannot be negative", ErrValidation)
	}
	if p.Weight != nil && *p.Weight < 0 {
		return fmt.Errorf("%w: weight cannot be negative", ErrValidation)
	}

	set := &e.Sets[i]
	if p.Reps != nil {
		set.Reps = *p.Reps
	}
	if p.Weight != nil {
		w := *p.Weight
		set.Weight = &w
	}
	if p.Completed != nil {
		set.Completed = *p.Completed
	}
	s.touch()
	return nil
}

// ToggleSet flips a set's completion flag and returns the new value.
func (s *Session) ToggleSet(exerciseID, setID uuid.UUID) (bool, error) {
	e, err := s.exercise(exerciseID)
	if err != nil {
		return false, err
	}
	i, err := findSet(e, setID)
	if err != nil {
		return false, err
	}
	e.Sets[i].Completed = !e.Sets[i].Completed
	s.touch()
	return e.Sets[i].Completed, nil
}

// AddComment attaches a comment by the current identity to an exercise.
func (s *Session) AddComment(exerciseID uuid.UUID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}
	id, err := s.identity.Identity()
	if err != nil {
		return nil, err
	}
	if id.IsZero() {
		return nil, auth.ErrNotSignedIn
	}
	e, err := s.exercise(exerciseID)
	if err != nil {
		return nil, err
	}

	c := models.NewComment(id.UserID, id.Name, text)
	c.CreatedAt = s.now()
	e.Comments = append(e.Comments, c)
	s.touch()
	return &e.Comments[len(e.Comments)-1], nil
}

// DeleteComment removes a comment written by the current identity.
func (s *Session) DeleteComment(exerciseID, commentID uuid.UUID) error {
	id, err := s.identity.Identity()
	if err != nil {
		return err
	}
	e, err := s.exercise(exerciseID)
	if err != nil {
		return err
	}
	for i, c := range e.Comments {
		if c.ID != commentID {
			continue
		}
		if id.IsZero() || c.UserID != id.UserID {
			return ErrForbidden
		}
		e.Comments = append(e.Comments[:i], e.Comments[i+1:]...)
		s.touch()
		return nil
	}
	return fmt.Errorf("%w: comment %s", ErrNotFound, commentID)
}

// SelectWeekday tags the workout and, when that weekday has history, loads
// its latest workout in place of the current exercises. It reports whether
// history was loaded. An empty day clears the tag.
func (s *Session) SelectWeekday(day models.Weekday) (bool, error) {
	if day != "" && !models.IsValidWeekday(string(day)) {
		return false, fmt.Errorf("%w: unknown weekday %q", ErrValidation, day)
	}
	s.workout.Weekday = day
	s.touch()
	if day == "" {
		return false, nil
	}

	h, err := s.repo.History()
	if err != nil {
		return false, fmt.Errorf("load history: %w", err)
	}
	if !planner.ApplyWeekdayHistory(s.workout, h, day) {
		return false, nil
	}
	s.notes.Success("Treino carregado", fmt.Sprintf("Treino de %s carregado com base no histórico.", day))
	return true, nil
}

// ApplySheet replaces the current exercises with a fresh copy of the sheet's.
func (s *Session) ApplySheet(sheet *models.WorkoutSheet) {
	planner.ApplySheet(s.workout, sheet)
	s.touch()
	s.notes.Success("Ficha aplicada", fmt.Sprintf("A ficha %s foi aplicada ao seu treino.", sheet.Name))
}

// Save persists the current workout. When any set is completed it also
// appends a snapshot dated now to the weekday history bucket. It reports
// whether history was written.
func (s *Session) Save() (bool, error) {
	prev := s.workout.SavedAt
	at := s.now()
	s.workout.SavedAt = &at
	if err := s.Persist(); err != nil {
		s.workout.SavedAt = prev
		s.notes.Reject("Erro ao salvar", err.Error())
		return false, err
	}

	if !s.workout.HasCompletedSets() {
		s.state = Saved
		s.notes.Success("Treino salvo", "Seu treino foi salvo, mas não foi adicionado ao histórico porque nenhum exercício foi completado.")
		return false, nil
	}

	h, err := s.repo.History()
	if err != nil {
		s.unmarkSaved(prev)
		s.notes.Reject("Erro ao salvar", err.Error())
		return false, fmt.Errorf("load history: %w", err)
	}
	snap := s.workout.Snapshot(at)
	h.Append(snap)
	if err := s.repo.SaveHistory(h); err != nil {
		s.unmarkSaved(prev)
		s.notes.Reject("Erro ao salvar", err.Error())
		return false, fmt.Errorf("save history: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"workout": snap.ID,
		"bucket":  snap.Weekday.Bucket(),
		"sets":    snap.CompletedSets(),
	}).Debug("workout added to history")

	s.state = Saved
	s.notes.Success("Treino salvo", "Seu treino foi salvo e adicionado ao histórico.")
	return true, nil
}

// unmarkSaved restores the saved marker after a failed history write.
func (s *Session) unmarkSaved(prev *time.Time) {
	s.workout.SavedAt = prev
	if err := s.Persist(); err != nil {
		s.log.WithError(err).Warn("could not restore current workout after failed save")
	}
}
