// ABOUTME: Integration test for the treino binary.
// ABOUTME: Builds the CLI and drives a full workout, sheet, and stats workflow.
package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}

	tmpDir := t.TempDir()
	binary := filepath.Join(tmpDir, "treino")

	buildCmd := exec.Command("go", "build", "-o", binary, ".")
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	env := append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
		"TREINO_BACKEND=sqlite",
		"TREINO_DATA_DIR="+filepath.Join(tmpDir, "data"),
		"TREINO_ORIGIN=https://treino.example.com/",
	)
	run := func(args ...string) (string, error) {
		cmd := exec.Command(binary, args...)
		cmd.Env = env
		output, err := cmd.CombinedOutput()
		return string(output), err
	}
	expect := func(want string, args ...string) {
		t.Helper()
		output, err := run(args...)
		if err != nil {
			t.Fatalf("treino %s: %v\n%s", strings.Join(args, " "), err, output)
		}
		if !strings.Contains(output, want) {
			t.Errorf("treino %s: expected %q in output, got: %s", strings.Join(args, " "), want, output)
		}
	}

	expect("Weekday set to Segunda", "workout", "weekday", "Segunda")
	expect("Added Supino", "workout", "add", "Supino", "--weight", "60", "--muscle", "Peito")
	expect("Supino set 1 done", "workout", "done", "Supino", "1")
	expect("adicionado ao histórico", "workout", "save")

	expect("Supino", "stats", "progression")
	expect("60kg", "stats", "progression", "Supino")
	expect("Total:      1", "stats", "counts")

	expect("https://treino.example.com/workout/", "sheet", "create", "Treino A", "--public", "--exercise", "Supino:4x10@60:Peito")
	expect("Treino A", "sheet", "list", "--public")

	// A new Monday workout loads last Monday's exercises.
	expect("Started a new workout", "workout", "new")
	expect("Treino carregado", "workout", "weekday", "Segunda")
	expect("Supino", "workout", "show")
}
