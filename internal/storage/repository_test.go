// ABOUTME: Tests for the record repository.
// ABOUTME: Covers round-trips, missing records, and corrupt-record fallback on every backend.
package storage

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/treino/internal/kv"
	"github.com/harperreed/treino/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixed = time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)

// setupTestStore creates a repository over an in-memory store.
func setupTestStore(t *testing.T) (*Store, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	return New(mem), mem
}

func sampleWorkout() *models.Workout {
	e := models.NewExercise("Supino").WithMuscleGroups(models.MuscleChest, models.MuscleTriceps)
	e.Sets[0] = e.Sets[0].WithWeight(60)
	e.Sets[0].Completed = true
	e.Comments = []models.Comment{{
		ID: uuid.New(), UserID: "u1", UserName: "ana", Text: "ombro ok", CreatedAt: fixed,
	}}
	e.History = []models.ExerciseHistory{{Date: fixed.AddDate(0, 0, -7), Sets: models.CopySets(e.Sets)}}
	return models.NewWorkout("Treino A").WithDate(fixed).WithWeekday(models.Monday).WithExercises(*e)
}

func TestCurrentWorkoutRoundTrip(t *testing.T) {
	s, _ := setupTestStore(t)

	got, err := s.CurrentWorkout()
	require.NoError(t, err)
	assert.Nil(t, got, "missing record should be nil")

	w := sampleWorkout()
	require.NoError(t, s.SaveCurrentWorkout(w))

	got, err = s.CurrentWorkout()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *w, *got)

	require.NoError(t, s.ClearCurrentWorkout())
	got, err = s.CurrentWorkout()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCollectionsRoundTrip(t *testing.T) {
	s, _ := setupTestStore(t)

	h := models.History{}
	h.Append(*sampleWorkout())
	require.NoError(t, s.SaveHistory(h))

	sheet := models.NewWorkoutSheet("Peito e tríceps").WithWeekday(models.Monday)
	sheet.CreatedAt = fixed
	sheet.WithExercises(*models.NewExercise("Crucifixo"))
	require.NoError(t, s.SaveSheets([]models.WorkoutSheet{*sheet}))

	cycle := models.NewMesoCycle("Base", fixed).WithSheets(sheet.ID)
	cycle.CreatedAt = fixed
	require.NoError(t, s.SaveCycles([]models.MesoCycle{*cycle}))

	m := models.NewBodyMeasurement().WithDate(fixed).WithField(models.FieldWaist, 80).WithNotes("jejum")
	require.NoError(t, s.SaveMeasurements([]models.BodyMeasurement{*m}))

	u := models.NewUser("ana", "ana@example.com")
	u.CreatedAt = fixed
	require.NoError(t, s.SaveUsers([]models.User{*u}))
	require.NoError(t, s.SaveCurrentUser(u))

	gotH, err := s.History()
	require.NoError(t, err)
	assert.Equal(t, h, gotH)

	gotSheets, err := s.Sheets()
	require.NoError(t, err)
	assert.Equal(t, []models.WorkoutSheet{*sheet}, gotSheets)

	gotCycles, err := s.Cycles()
	require.NoError(t, err)
	assert.Equal(t, []models.MesoCycle{*cycle}, gotCycles)

	gotMs, err := s.Measurements()
	require.NoError(t, err)
	assert.Equal(t, []models.BodyMeasurement{*m}, gotMs)

	gotUsers, err := s.Users()
	require.NoError(t, err)
	assert.Equal(t, []models.User{*u}, gotUsers)

	gotUser, err := s.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, u, gotUser)
}

func TestMissingRecordsAreEmpty(t *testing.T) {
	s, _ := setupTestStore(t)

	h, err := s.History()
	require.NoError(t, err)
	assert.NotNil(t, h)
	assert.Empty(t, h)

	sheets, err := s.Sheets()
	require.NoError(t, err)
	assert.NotNil(t, sheets)
	assert.Empty(t, sheets)

	cycles, err := s.Cycles()
	require.NoError(t, err)
	assert.Empty(t, cycles)

	users, err := s.Users()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCorruptRecordsFallBackToEmpty(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, s *Store)
	}{
		{
			name:  "history not json",
			key:   KeyWorkoutHistory,
			value: `{"Segunda": [`,
			check: func(t *testing.T, s *Store) {
				h, err := s.History()
				require.NoError(t, err)
				assert.Empty(t, h)
			},
		},
		{
			name:  "current workout missing id",
			key:   KeyCurrentWorkout,
			value: `{"name":"x","date":"2025-03-10T18:30:00Z","exercises":[]}`,
			check: func(t *testing.T, s *Store) {
				w, err := s.CurrentWorkout()
				require.NoError(t, err)
				assert.Nil(t, w)
			},
		},
		{
			name:  "sheet with unnamed exercise",
			key:   KeyWorkoutSheets,
			value: `[{"id":"` + uuid.NewString() + `","name":"A","exercises":[{"id":"` + uuid.NewString() + `","name":"","sets":[]}]}]`,
			check: func(t *testing.T, s *Store) {
				sheets, err := s.Sheets()
				require.NoError(t, err)
				assert.Empty(t, sheets)
			},
		},
		{
			name:  "cycles wrong shape",
			key:   KeyMesoCycles,
			value: `{"not":"an array"}`,
			check: func(t *testing.T, s *Store) {
				cycles, err := s.Cycles()
				require.NoError(t, err)
				assert.Empty(t, cycles)
			},
		},
		{
			name:  "measurement bad date",
			key:   KeyBodyMeasurements,
			value: `[{"id":"` + uuid.NewString() + `","date":"yesterday"}]`,
			check: func(t *testing.T, s *Store) {
				ms, err := s.Measurements()
				require.NoError(t, err)
				assert.Empty(t, ms)
			},
		},
		{
			name:  "user without email",
			key:   KeyUser,
			value: `{"id":"` + uuid.NewString() + `","username":"ana"}`,
			check: func(t *testing.T, s *Store) {
				u, err := s.CurrentUser()
				require.NoError(t, err)
				assert.Nil(t, u)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mem := setupTestStore(t)
			var buf bytes.Buffer
			logger := logrus.New()
			logger.SetOutput(&buf)
			s.WithLogger(logger)

			require.NoError(t, mem.Set(tt.key, []byte(tt.value)))
			tt.check(t, s)
			assert.Contains(t, buf.String(), "discarding corrupt record")
			assert.Contains(t, buf.String(), tt.key)
		})
	}
}

func TestJavaScriptDatesDecode(t *testing.T) {
	s, mem := setupTestStore(t)
	id := uuid.NewString()
	require.NoError(t, mem.Set(KeyBodyMeasurements, []byte(`[{"id":"`+id+`","date":"2025-03-10T18:30:00.000Z","weight":82.4}]`)))

	ms, err := s.Measurements()
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.True(t, ms[0].Date.Equal(fixed))
	v, ok := ms[0].Field(models.FieldWeight)
	assert.True(t, ok)
	assert.Equal(t, 82.4, v)
}

func TestRepositoryOnDiskBackends(t *testing.T) {
	b, err := kv.OpenBadger(filepath.Join(t.TempDir(), "badger"))
	require.NoError(t, err)
	sq, err := kv.OpenSQLite(filepath.Join(t.TempDir(), "treino.db"))
	require.NoError(t, err)

	for name, backend := range map[string]kv.Store{"badger": b, "sqlite": sq} {
		t.Run(name, func(t *testing.T) {
			s := New(backend)
			defer s.Close()

			w := sampleWorkout()
			require.NoError(t, s.SaveCurrentWorkout(w))
			got, err := s.CurrentWorkout()
			require.NoError(t, err)
			assert.Equal(t, w.ID, got.ID)
			assert.Equal(t, w.Exercises[0].Sets, got.Exercises[0].Sets)
		})
	}
}
