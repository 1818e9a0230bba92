// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies JSON, YAML, and Markdown export formats and merge-on-import.
package storage

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/harperreed/treino/internal/models"
	"gopkg.in/yaml.v3"
)

func seedStore(t *testing.T, s *Store) {
	t.Helper()

	h := models.History{}
	h.Append(*sampleWorkout())
	if err := s.SaveHistory(h); err != nil {
		t.Fatalf("SaveHistory failed: %v", err)
	}

	sheet := models.NewWorkoutSheet("Costas")
	sheet.CreatedAt = fixed
	if err := s.SaveSheets([]models.WorkoutSheet{*sheet}); err != nil {
		t.Fatalf("SaveSheets failed: %v", err)
	}

	m := models.NewBodyMeasurement().WithDate(fixed).WithField(models.FieldWeight, 82.5)
	if err := s.SaveMeasurements([]models.BodyMeasurement{*m}); err != nil {
		t.Fatalf("SaveMeasurements failed: %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	s, _ := setupTestStore(t)
	seedStore(t, s)

	data, err := s.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if export.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", export.Version)
	}
	if export.Tool != "treino" {
		t.Errorf("Expected tool treino, got %s", export.Tool)
	}
	if export.History.Len() != 1 {
		t.Errorf("Expected 1 workout, got %d", export.History.Len())
	}
	if len(export.Sheets) != 1 {
		t.Errorf("Expected 1 sheet, got %d", len(export.Sheets))
	}
	if len(export.Measurements) != 1 {
		t.Errorf("Expected 1 measurement, got %d", len(export.Measurements))
	}
}

func TestExportYAMLRoundTrip(t *testing.T) {
	src, _ := setupTestStore(t)
	seedStore(t, src)

	data, err := src.ExportYAML()
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	if raw["tool"] != "treino" {
		t.Errorf("Expected tool treino, got %v", raw["tool"])
	}

	dst, _ := setupTestStore(t)
	summary, err := dst.ImportYAML(data)
	if err != nil {
		t.Fatalf("ImportYAML failed: %v", err)
	}
	if summary.Workouts != 1 || summary.Sheets != 1 || summary.Measurements != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	want, _ := src.History()
	got, _ := dst.History()
	wantW := want[string(models.Monday)][0]
	gotW := got[string(models.Monday)][0]
	if gotW.ID != wantW.ID || !gotW.Date.Equal(wantW.Date) {
		t.Errorf("history mismatch: got %v at %v, want %v at %v", gotW.ID, gotW.Date, wantW.ID, wantW.Date)
	}
	if gotW.Exercises[0].Sets[0].WeightValue() != 60 {
		t.Errorf("weight = %v, want 60", gotW.Exercises[0].Sets[0].WeightValue())
	}
}

func TestImportJSONSkipsKnownHistory(t *testing.T) {
	s, _ := setupTestStore(t)
	seedStore(t, s)

	data, err := s.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	// Importing our own export must not duplicate anything.
	summary, err := s.ImportJSON(data)
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if summary.Workouts != 0 {
		t.Errorf("Expected 0 new workouts, got %d", summary.Workouts)
	}

	h, _ := s.History()
	if h.Len() != 1 {
		t.Errorf("Expected 1 workout after re-import, got %d", h.Len())
	}
	sheets, _ := s.Sheets()
	if len(sheets) != 1 {
		t.Errorf("Expected 1 sheet after re-import, got %d", len(sheets))
	}
}

func TestImportJSONInvalid(t *testing.T) {
	s, _ := setupTestStore(t)

	if _, err := s.ImportJSON([]byte("{not json")); err == nil {
		t.Error("Expected error for malformed JSON")
	}

	bad := `{"history":{"Segunda":[{"name":"sem id","date":"2025-03-10T18:30:00Z"}]}}`
	if _, err := s.ImportJSON([]byte(bad)); err == nil {
		t.Error("Expected error for workout without id")
	}
}

func TestExportMarkdown(t *testing.T) {
	s, _ := setupTestStore(t)
	seedStore(t, s)

	md, err := s.ExportMarkdown(nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	if !strings.Contains(md, "# Treino Export") {
		t.Error("Expected markdown header")
	}
	if !strings.Contains(md, "Treino A (Segunda)") {
		t.Error("Expected workout heading with weekday")
	}
	if !strings.Contains(md, "| Supino | 1 | 12 | 60.0 kg | x |") {
		t.Errorf("Expected completed set row, got:\n%s", md)
	}

	later := fixed.AddDate(0, 0, 1)
	md, err = s.ExportMarkdown(&later)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if !strings.Contains(md, "No workouts recorded.") {
		t.Error("Expected since filter to exclude the workout")
	}
}
