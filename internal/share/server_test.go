// ABOUTME: Tests for the share link server.
// ABOUTME: Public sheets resolve; private or unknown share ids return 404.
package share

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harperreed/treino/internal/kv"
	"github.com/harperreed/treino/internal/models"
	"github.com/harperreed/treino/internal/planner"
	"github.com/harperreed/treino/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) (*Server, *planner.Manager, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)
	m := planner.NewManager(storage.New(kv.NewMemory()))
	return New(m, logger), m, hook
}

func TestSharedSheetResolves(t *testing.T) {
	s, m, hook := setupServer(t)
	sheet := models.NewWorkoutSheet("Costas").WithExercises(*models.NewExercise("Remada"))
	sheet.IsPublic = true
	require.NoError(t, m.SaveSheet(sheet))

	req := httptest.NewRequest(http.MethodGet, "/workout/"+sheet.ShareID, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var got models.WorkoutSheet
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, sheet.ID, got.ID)
	assert.Equal(t, "Remada", got.Exercises[0].Name)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "request", entry.Message)
	assert.Equal(t, http.StatusOK, entry.Data["status"])
}

func TestSharedSheetNotFound(t *testing.T) {
	s, m, _ := setupServer(t)
	private := models.NewWorkoutSheet("Privada")
	private.ShareID = "hidden"
	require.NoError(t, m.SaveSheet(private))

	for _, path := range []string{"/workout/hidden", "/workout/nope", "/elsewhere"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
		})
	}
}

type failingFinder struct{}

func (failingFinder) FindShared(string) (*models.WorkoutSheet, error) {
	return nil, errors.New("disk on fire")
}

func TestSharedSheetLookupError(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s := New(failingFinder{}, logger)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/workout/x", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var sawError bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			sawError = true
		}
	}
	assert.True(t, sawError)
}

func TestCORSPreflight(t *testing.T) {
	s, _, _ := setupServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/workout/x", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
