// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands end to end against a temporary SQLite store.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/treino/internal/config"
	"github.com/harperreed/treino/internal/kv"
	"github.com/harperreed/treino/internal/models"
	"github.com/harperreed/treino/internal/notify"
	"github.com/harperreed/treino/internal/planner"
	"github.com/harperreed/treino/internal/session"
	"github.com/harperreed/treino/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// setupCLI points the CLI at a fresh SQLite store and returns its directory.
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("TREINO_BACKEND", kv.BackendSQLite)
	t.Setenv("TREINO_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("TREINO_LOG_LEVEL", "error")
	return dir
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if repo != nil {
		_ = repo.Close()
		repo = nil
	}
	return err
}

func mustRun(t *testing.T, args ...string) {
	t.Helper()
	if err := runCLI(t, args...); err != nil {
		t.Fatalf("treino %v: %v", args, err)
	}
}

func openTestStore(t *testing.T, dir string) *storage.Store {
	t.Helper()
	c := &config.Config{Backend: kv.BackendSQLite, DataDir: filepath.Join(dir, "data")}
	s, err := c.OpenStore()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"date and time with space", "2025-01-31 08:30", false},
		{"date and time with T", "2025-01-31T08:30", false},
		{"date only", "2025-01-31", false},
		{"RFC3339", "2025-01-31T08:30:00Z", false},
		{"invalid format", "31-01-2025", true},
		{"empty string", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseTime(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseTime(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTime(%q) unexpected error: %v", tt.input, err)
			}
			if result.Year() != 2025 || result.Month() != time.January || result.Day() != 31 {
				t.Errorf("parseTime(%q) = %v", tt.input, result)
			}
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	if got := truncate("Agachamento búlgaro", 10); got != "Agacham..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Supino", 10); got != "Supino" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Supino", 2); got != "..." {
		t.Errorf("truncate = %q", got)
	}
	if got := padRight("Terça", 7); got != "Terça  " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("Segunda", 3); got != "Segunda" {
		t.Errorf("padRight = %q", got)
	}
}

func TestParseMuscleGroupsCollapsesRepeats(t *testing.T) {
	groups, err := parseMuscleGroups("Peito,peito+Tríceps")
	if err != nil {
		t.Fatalf("parseMuscleGroups error = %v", err)
	}
	want := []models.MuscleGroup{models.MuscleChest, models.MuscleTriceps}
	if len(groups) != len(want) || groups[0] != want[0] || groups[1] != want[1] {
		t.Errorf("parseMuscleGroups = %v, want %v", groups, want)
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    models.Weekday
		wantErr bool
	}{
		{"Segunda", models.Monday, false},
		{"terça", models.Tuesday, false},
		{"SÁBADO", models.Saturday, false},
		{"friday", models.Friday, false},
		{"none", "", false},
		{"", "", false},
		{"someday", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseWeekday(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseWeekday(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseWeekday(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseExerciseSpec(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		sets    int
		reps    int
		weight  float64
		groups  []models.MuscleGroup
		wantErr bool
	}{
		{name: "name only", input: "Supino", sets: 3, reps: 12},
		{name: "scheme", input: "Supino:4x10", sets: 4, reps: 10},
		{name: "scheme with weight", input: "Supino:4x10@62.5", sets: 4, reps: 10, weight: 62.5},
		{name: "groups", input: "Agachamento:5x5@100:quadríceps+Glúteos", sets: 5, reps: 5, weight: 100,
			groups: []models.MuscleGroup{models.MuscleQuads, models.MuscleGlutes}},
		{name: "groups without scheme", input: "Remada::Costas", sets: 3, reps: 12,
			groups: []models.MuscleGroup{models.MuscleBack}},
		{name: "empty name", input: ":3x10", wantErr: true},
		{name: "bad scheme", input: "Supino:lots", wantErr: true},
		{name: "zero sets", input: "Supino:0x10", wantErr: true},
		{name: "negative weight", input: "Supino:3x10@-5", wantErr: true},
		{name: "unknown group", input: "Supino:3x10:Pescoço", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := parseExerciseSpec(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseExerciseSpec(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseExerciseSpec(%q) unexpected error: %v", tt.input, err)
			}
			if len(e.Sets) != tt.sets {
				t.Errorf("sets = %d, want %d", len(e.Sets), tt.sets)
			}
			if e.Sets[0].Reps != tt.reps || e.Sets[0].WeightValue() != tt.weight {
				t.Errorf("first set = %d×%g, want %d×%g", e.Sets[0].Reps, e.Sets[0].WeightValue(), tt.reps, tt.weight)
			}
			if len(e.MuscleGroups) != len(tt.groups) {
				t.Fatalf("groups = %v, want %v", e.MuscleGroups, tt.groups)
			}
			for i := range tt.groups {
				if e.MuscleGroups[i] != tt.groups[i] {
					t.Errorf("group %d = %q, want %q", i, e.MuscleGroups[i], tt.groups[i])
				}
			}
		})
	}
}

func TestResolveExercise(t *testing.T) {
	w := models.NewWorkout("Treino").WithExercises(*models.NewExercise("Supino"), *models.NewExercise("Remada"))

	if e, err := resolveExercise(w, "2"); err != nil || e.Name != "Remada" {
		t.Errorf("by position: %v, %v", e, err)
	}
	if e, err := resolveExercise(w, "supino"); err != nil || e.Name != "Supino" {
		t.Errorf("by name: %v, %v", e, err)
	}
	if e, err := resolveExercise(w, w.Exercises[1].ID.String()[:8]); err != nil || e.Name != "Remada" {
		t.Errorf("by id prefix: %v, %v", e, err)
	}
	if _, err := resolveExercise(w, "3"); err == nil {
		t.Error("expected error for position out of range")
	}
	if _, err := resolveExercise(w, "Leg Press"); err == nil {
		t.Error("expected error for unknown exercise")
	}
}

func TestRootCmdSubcommands(t *testing.T) {
	if rootCmd.Use != "treino" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "treino")
	}

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"workout", "sheet", "cycle", "stats", "measure", "user", "timer", "serve", "mcp", "export", "import", "migrate", "sync"} {
		if !names[want] {
			t.Errorf("expected subcommand %q", want)
		}
	}
}

func TestWorkoutSaveRecordsHistory(t *testing.T) {
	dir := setupCLI(t)

	mustRun(t, "workout", "weekday", "segunda")
	mustRun(t, "workout", "add", "Supino", "--sets", "3", "--reps", "10", "--weight", "60", "--muscle", "Peito,Tríceps")
	mustRun(t, "workout", "set", "Supino", "2", "--weight", "65")
	mustRun(t, "workout", "done", "Supino", "1")
	mustRun(t, "workout", "done", "1", "2")
	mustRun(t, "workout", "save")

	s := openTestStore(t, dir)
	h, err := s.History()
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	saved := h[string(models.Monday)]
	if len(saved) != 1 {
		t.Fatalf("Monday history = %d workouts, want 1", len(saved))
	}
	if got := saved[0].CompletedSets(); got != 2 {
		t.Errorf("completed sets = %d, want 2", got)
	}
	if got := saved[0].Exercises[0].Sets[1].WeightValue(); got != 65 {
		t.Errorf("set 2 weight = %g, want 65", got)
	}
	if got := saved[0].Exercises[0].MuscleGroups; len(got) != 2 {
		t.Errorf("muscle groups = %v", got)
	}
}

func TestWorkoutSavedMarkerClearedByEdit(t *testing.T) {
	dir := setupCLI(t)

	mustRun(t, "workout", "add", "Remada")
	mustRun(t, "workout", "save")

	s := openTestStore(t, dir)
	w, err := s.CurrentWorkout()
	if err != nil || w == nil || w.SavedAt == nil {
		t.Fatalf("expected saved marker after save, got %+v (%v)", w, err)
	}
	_ = s.Close()

	mustRun(t, "workout", "rename", "Costas")

	s = openTestStore(t, dir)
	w, _ = s.CurrentWorkout()
	if w == nil || w.SavedAt != nil {
		t.Errorf("edit should clear the saved marker: %+v", w)
	}
}

func TestWorkoutSaveWithoutCompletedSetsSkipsHistory(t *testing.T) {
	dir := setupCLI(t)

	mustRun(t, "workout", "add", "Remada")
	mustRun(t, "workout", "save")

	s := openTestStore(t, dir)
	h, _ := s.History()
	if h.Len() != 0 {
		t.Errorf("history = %d workouts, want 0", h.Len())
	}
	w, _ := s.CurrentWorkout()
	if w == nil || len(w.Exercises) != 1 {
		t.Errorf("current workout not persisted: %+v", w)
	}
}

func TestWorkoutValidationErrors(t *testing.T) {
	setupCLI(t)

	if err := runCLI(t, "workout", "add", "Supino", "--sets", "0"); err == nil {
		t.Error("expected error for zero sets")
	}
	if err := runCLI(t, "workout", "weekday", "someday"); err == nil {
		t.Error("expected error for unknown weekday")
	}
	mustRun(t, "workout", "add", "Supino")
	if err := runCLI(t, "workout", "set", "Supino", "2"); err == nil {
		t.Error("expected error when no change flags are given")
	}
	if err := runCLI(t, "workout", "comment", "Supino", "boa"); err == nil {
		t.Error("expected error commenting while signed out")
	}
}

func TestDomainRefusalsBecomeRejections(t *testing.T) {
	setupCLI(t)

	err := runCLI(t, "workout", "add", "Supino", "--sets", "0")
	if !errors.Is(err, session.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !reportError(err) {
		t.Fatal("validation error should be reported as a rejection")
	}
	v := notes.Visible()
	if len(v) != 1 || v[0].Kind != notify.Error || !strings.Contains(v[0].Description, "one set is required") {
		t.Errorf("visible notifications = %+v", v)
	}

	mustRun(t, "sheet", "create", "Treino A", "--exercise", "Supino")
	mustRun(t, "cycle", "create", "Bloco", "--sheet", "Treino A")
	err = runCLI(t, "sheet", "delete", "Treino A")
	if !errors.Is(err, planner.ErrReferencedByCycle) || !reportError(err) {
		t.Errorf("referenced delete should be a rejection, got %v", err)
	}

	if reportError(fmt.Errorf("open store: %w", os.ErrPermission)) {
		t.Error("infrastructure errors are not rejections")
	}
}

func TestCommentsRequireSignIn(t *testing.T) {
	dir := setupCLI(t)

	mustRun(t, "user", "register", "Ana", "ana@example.com")
	mustRun(t, "workout", "add", "Agachamento")
	mustRun(t, "workout", "comment", "Agachamento", "subir", "a", "carga")

	s := openTestStore(t, dir)
	w, err := s.CurrentWorkout()
	if err != nil || w == nil {
		t.Fatalf("current workout: %v", err)
	}
	comments := w.Exercises[0].Comments
	if len(comments) != 1 || comments[0].Text != "subir a carga" || comments[0].UserName != "Ana" {
		t.Errorf("comments = %+v", comments)
	}
}

func TestSheetAndCycleLifecycle(t *testing.T) {
	dir := setupCLI(t)

	mustRun(t, "sheet", "create", "Treino A", "--weekday", "Segunda", "--public",
		"--exercise", "Supino:4x10@60:Peito", "--exercise", "Crucifixo")
	mustRun(t, "cycle", "create", "Bloco", "--sheet", "Treino A", "--start", "2025-03-01")

	if err := runCLI(t, "sheet", "delete", "Treino A"); err == nil {
		t.Fatal("expected delete to fail while a cycle references the sheet")
	}

	mustRun(t, "sheet", "apply", "treino a")

	s := openTestStore(t, dir)
	sheetList, _ := s.Sheets()
	if len(sheetList) != 1 || !sheetList[0].IsPublic || sheetList[0].ShareID == "" {
		t.Fatalf("sheets = %+v", sheetList)
	}
	cycles, _ := s.Cycles()
	if len(cycles) != 1 || cycles[0].EndDate.Format("2006-01-02") != "2025-04-01" {
		t.Fatalf("cycles = %+v", cycles)
	}
	w, _ := s.CurrentWorkout()
	if w == nil || len(w.Exercises) != 2 || w.Weekday != models.Monday {
		t.Fatalf("applied workout = %+v", w)
	}
	if w.Exercises[0].ID == sheetList[0].Exercises[0].ID {
		t.Error("applied exercises should get fresh ids")
	}
	_ = s.Close()

	mustRun(t, "sheet", "delete", "Treino A", "--detach")

	s = openTestStore(t, dir)
	sheetList, _ = s.Sheets()
	if len(sheetList) != 0 {
		t.Errorf("sheets after delete = %d, want 0", len(sheetList))
	}
	cycles, _ = s.Cycles()
	if len(cycles) != 1 || len(cycles[0].WorkoutSheetIDs) != 0 {
		t.Errorf("cycle should survive without the sheet: %+v", cycles)
	}
}

func TestSheetFavourites(t *testing.T) {
	dir := setupCLI(t)

	if err := runCLI(t, "sheet", "save", "x"); err == nil {
		t.Error("expected error saving a favourite while signed out")
	}
	mustRun(t, "user", "register", "Bia", "bia@example.com")
	mustRun(t, "sheet", "create", "Pernas", "--exercise", "Leg Press:4x12@120")
	mustRun(t, "sheet", "save", "Pernas")

	s := openTestStore(t, dir)
	u, _ := s.CurrentUser()
	if u == nil || len(u.SavedWorkouts) != 1 {
		t.Fatalf("saved workouts = %+v", u)
	}
	_ = s.Close()

	mustRun(t, "sheet", "unsave", "Pernas")
	s = openTestStore(t, dir)
	u, _ = s.CurrentUser()
	if len(u.SavedWorkouts) != 0 {
		t.Errorf("saved workouts after unsave = %v", u.SavedWorkouts)
	}
}

func TestMeasureAdd(t *testing.T) {
	dir := setupCLI(t)

	mustRun(t, "measure", "add", "--weight", "82.5", "--body_fat", "18", "--date", "2025-03-01", "--notes", "jejum")
	if err := runCLI(t, "measure", "add"); err == nil {
		t.Error("expected error for a measurement with no fields")
	}
	if err := runCLI(t, "measure", "list", "--field", "neck"); err == nil {
		t.Error("expected error for unknown field")
	}

	s := openTestStore(t, dir)
	list, _ := s.Measurements()
	if len(list) != 1 {
		t.Fatalf("measurements = %d, want 1", len(list))
	}
	if v, ok := list[0].Field(models.FieldWeight); !ok || v != 82.5 {
		t.Errorf("weight = %v, %v", v, ok)
	}
	if _, ok := list[0].Field(models.FieldWaist); ok {
		t.Error("waist should be unset")
	}
	if list[0].Notes != "jejum" || list[0].Date.Day() != 1 {
		t.Errorf("measurement = %+v", list[0])
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := setupCLI(t)
	backup := filepath.Join(dir, "backup.yaml")

	mustRun(t, "sheet", "create", "Treino B", "--exercise", "Remada:3x12@50:Costas")
	mustRun(t, "export", "yaml", "-o", backup)

	t.Setenv("TREINO_DATA_DIR", filepath.Join(dir, "restored"))
	mustRun(t, "import", backup)

	c := &config.Config{Backend: kv.BackendSQLite, DataDir: filepath.Join(dir, "restored")}
	s, err := c.OpenStore()
	if err != nil {
		t.Fatalf("open restored store: %v", err)
	}
	defer s.Close()
	sheetList, _ := s.Sheets()
	if len(sheetList) != 1 || sheetList[0].Name != "Treino B" {
		t.Errorf("restored sheets = %+v", sheetList)
	}
}

func TestTimerRejectsInvalidMinutes(t *testing.T) {
	setupCLI(t)

	for _, arg := range []string{"0", "0.75", "11", "abc"} {
		if err := runCLI(t, "timer", arg); err == nil {
			t.Errorf("timer %s: expected error", arg)
		}
	}
}
