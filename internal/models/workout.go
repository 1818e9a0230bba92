// ABOUTME: Workout, Exercise, Set, ExerciseHistory and Comment models.
// ABOUTME: Exercises are owned by their workout; clones get fresh ids and reset completion.
package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultWorkoutName     = "Meu Treino"
	DefaultSetCount        = 3
	DefaultReps            = 12
	DefaultRestTimeMinutes = 1
)

// Set is one series of an exercise.
type Set struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Reps      int       `json:"reps" yaml:"reps"`
	Weight    *float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
	Completed bool      `json:"completed" yaml:"completed"`
}

// NewSet creates an incomplete set with the given reps and zero weight.
func NewSet(reps int) Set {
	weight := 0.0
	return Set{
		ID:     uuid.New(),
		Reps:   reps,
		Weight: &weight,
	}
}

// WithWeight sets the weight in kg.
func (s Set) WithWeight(kg float64) Set {
	s.Weight = &kg
	return s
}

// WeightValue returns the weight, treating a missing weight as zero.
func (s Set) WeightValue() float64 {
	if s.Weight == nil {
		return 0
	}
	return *s.Weight
}

// ExerciseHistory is a snapshot of an exercise's sets on a past date.
type ExerciseHistory struct {
	Date time.Time `json:"date" yaml:"date"`
	Sets []Set     `json:"sets" yaml:"sets"`
}

// Comment is a note left on an exercise.
type Comment struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	UserID    string    `json:"userId" yaml:"userId"`
	UserName  string    `json:"userName" yaml:"userName"`
	Text      string    `json:"text" yaml:"text"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// NewComment creates a comment authored by userID.
func NewComment(userID, userName, text string) Comment {
	return Comment{
		ID:        uuid.New(),
		UserID:    userID,
		UserName:  userName,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// Exercise is a named movement with its sets.
type Exercise struct {
	ID              uuid.UUID         `json:"id" yaml:"id"`
	Name            string            `json:"name" yaml:"name"`
	Sets            []Set             `json:"sets" yaml:"sets"`
	RestTimeMinutes float64           `json:"restTimeMinutes" yaml:"restTimeMinutes"`
	History         []ExerciseHistory `json:"history,omitempty" yaml:"history,omitempty"`
	MuscleGroups    []MuscleGroup     `json:"muscleGroups,omitempty" yaml:"muscleGroups,omitempty"`
	Comments        []Comment         `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// NewExercise creates an exercise with the default three sets of twelve reps.
func NewExercise(name string) *Exercise {
	e := &Exercise{
		ID:              uuid.New(),
		Name:            name,
		RestTimeMinutes: DefaultRestTimeMinutes,
	}
	return e.WithSets(DefaultSetCount, DefaultReps)
}

// WithSets replaces the sets with count incomplete sets of reps each.
func (e *Exercise) WithSets(count, reps int) *Exercise {
	e.Sets = make([]Set, 0, count)
	for i := 0; i < count; i++ {
		e.Sets = append(e.Sets, NewSet(reps))
	}
	return e
}

// WithRestTime sets the rest between sets in minutes.
func (e *Exercise) WithRestTime(minutes float64) *Exercise {
	e.RestTimeMinutes = minutes
	return e
}

// WithMuscleGroups tags the exercise. Repeated groups are kept once.
func (e *Exercise) WithMuscleGroups(groups ...MuscleGroup) *Exercise {
	e.MuscleGroups = UniqueMuscleGroups(groups)
	return e
}

// CompletedSets returns the number of completed sets.
func (e *Exercise) CompletedSets() int {
	n := 0
	for _, s := range e.Sets {
		if s.Completed {
			n++
		}
	}
	return n
}

// Clone returns a deep copy with fresh exercise and set ids and every set incomplete.
// History and comments are copied as-is.
func (e Exercise) Clone() Exercise {
	out := e
	out.ID = uuid.New()
	out.Sets = make([]Set, len(e.Sets))
	for i, s := range e.Sets {
		out.Sets[i] = s.copy()
		out.Sets[i].ID = uuid.New()
		out.Sets[i].Completed = false
	}
	out.History = CopyHistory(e.History)
	out.MuscleGroups = append([]MuscleGroup(nil), e.MuscleGroups...)
	out.Comments = append([]Comment(nil), e.Comments...)
	return out
}

// Copy returns a deep copy that keeps every id and completion flag.
func (e Exercise) Copy() Exercise {
	out := e
	out.Sets = CopySets(e.Sets)
	out.History = CopyHistory(e.History)
	out.MuscleGroups = append([]MuscleGroup(nil), e.MuscleGroups...)
	out.Comments = append([]Comment(nil), e.Comments...)
	return out
}

func (s Set) copy() Set {
	if s.Weight != nil {
		w := *s.Weight
		s.Weight = &w
	}
	return s
}

// CopySets deep-copies a set slice.
func CopySets(sets []Set) []Set {
	if sets == nil {
		return nil
	}
	out := make([]Set, len(sets))
	for i, s := range sets {
		out[i] = s.copy()
	}
	return out
}

// CopyHistory deep-copies history snapshots.
func CopyHistory(h []ExerciseHistory) []ExerciseHistory {
	if h == nil {
		return nil
	}
	out := make([]ExerciseHistory, len(h))
	for i, entry := range h {
		out[i] = ExerciseHistory{Date: entry.Date, Sets: CopySets(entry.Sets)}
	}
	return out
}

// CloneExercises clones each exercise with fresh ids and reset completion.
func CloneExercises(exercises []Exercise) []Exercise {
	out := make([]Exercise, len(exercises))
	for i, e := range exercises {
		out[i] = e.Clone()
	}
	return out
}

// Workout is one training session.
type Workout struct {
	ID          uuid.UUID  `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Exercises   []Exercise `json:"exercises" yaml:"exercises"`
	Date        time.Time  `json:"date" yaml:"date"`
	Weekday     Weekday    `json:"weekday,omitempty" yaml:"weekday,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	IsPublic    bool       `json:"isPublic,omitempty" yaml:"isPublic,omitempty"`
	ShareID     string     `json:"shareId,omitempty" yaml:"shareId,omitempty"`
	CreatedBy   string     `json:"createdBy,omitempty" yaml:"createdBy,omitempty"`
	SharedWith  []string   `json:"sharedWith,omitempty" yaml:"sharedWith,omitempty"`
	// SavedAt is set when the current workout was saved and cleared by the next edit.
	SavedAt     *time.Time `json:"savedAt,omitempty" yaml:"savedAt,omitempty"`
}

// NewWorkout creates an empty workout dated now.
func NewWorkout(name string) *Workout {
	return &Workout{
		ID:        uuid.New(),
		Name:      name,
		Exercises: []Exercise{},
		Date:      time.Now(),
	}
}

// WithWeekday sets the weekday tag.
func (w *Workout) WithWeekday(day Weekday) *Workout {
	w.Weekday = day
	return w
}

// WithDate sets a custom date.
func (w *Workout) WithDate(t time.Time) *Workout {
	w.Date = t
	return w
}

// WithExercises appends exercises.
func (w *Workout) WithExercises(exercises ...Exercise) *Workout {
	w.Exercises = append(w.Exercises, exercises...)
	return w
}

// HasCompletedSets reports whether any set in the workout is completed.
func (w *Workout) HasCompletedSets() bool {
	for i := range w.Exercises {
		if w.Exercises[i].CompletedSets() > 0 {
			return true
		}
	}
	return false
}

// CompletedSets returns the number of completed sets across all exercises.
func (w *Workout) CompletedSets() int {
	n := 0
	for i := range w.Exercises {
		n += w.Exercises[i].CompletedSets()
	}
	return n
}

// FindExercise returns the exercise with the given id.
func (w *Workout) FindExercise(id uuid.UUID) (*Exercise, bool) {
	for i := range w.Exercises {
		if w.Exercises[i].ID == id {
			return &w.Exercises[i], true
		}
	}
	return nil, false
}

// Copy returns a deep copy that keeps every id.
func (w Workout) Copy() Workout {
	out := w
	out.Exercises = make([]Exercise, len(w.Exercises))
	for i, e := range w.Exercises {
		out.Exercises[i] = e.Copy()
	}
	out.SharedWith = append([]string(nil), w.SharedWith...)
	return out
}

// Snapshot copies the workout for history with a new id and the given date.
func (w Workout) Snapshot(at time.Time) Workout {
	out := w.Copy()
	out.ID = uuid.New()
	out.Date = at
	out.SavedAt = nil
	return out
}

// History maps a weekday bucket to its saved workouts in append order.
type History map[string][]Workout

// Append adds a snapshot to the workout's weekday bucket.
func (h History) Append(w Workout) {
	bucket := w.Weekday.Bucket()
	h[bucket] = append(h[bucket], w)
}

// Latest returns the most recently appended workout in a bucket.
func (h History) Latest(bucket string) (Workout, bool) {
	list := h[bucket]
	if len(list) == 0 {
		return Workout{}, false
	}
	return list[len(list)-1], true
}

// All returns every workout across all buckets, ordered by bucket key then append order.
func (h History) All() []Workout {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []Workout
	for _, k := range keys {
		out = append(out, h[k]...)
	}
	return out
}

// Len returns the number of workouts across all buckets.
func (h History) Len() int {
	n := 0
	for _, list := range h {
		n += len(list)
	}
	return n
}
