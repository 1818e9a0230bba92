// ABOUTME: Tests for logger setup and level parsing.
// ABOUTME: Verifies file output through lumberjack.
package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"INFO", logrus.InfoLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"", logrus.WarnLevel},
		{"nonsense", logrus.WarnLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetLevel(tt.in), "level %q", tt.in)
	}
}

func TestSetupWritesToFile(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)

	base := filepath.Join(t.TempDir(), "treino")
	Setup(LoggerSetupParams{LogFileName: base, LogLevel: "info", LogFormatJSON: true})

	logrus.WithField("key", "workoutHistory").Info("hello")

	data, err := os.ReadFile(base + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"key":"workoutHistory"`)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
