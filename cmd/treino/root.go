// ABOUTME: Root Cobra command for the treino CLI.
// ABOUTME: Loads config, sets up logging, and manages the store lifecycle via PersistentPre/PostRunE.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/treino/internal/auth"
	"github.com/harperreed/treino/internal/config"
	"github.com/harperreed/treino/internal/logging"
	"github.com/harperreed/treino/internal/measure"
	"github.com/harperreed/treino/internal/notify"
	"github.com/harperreed/treino/internal/planner"
	"github.com/harperreed/treino/internal/session"
	"github.com/harperreed/treino/internal/storage"
	"github.com/harperreed/treino/internal/timer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	repo     *storage.Store
	notes    *notify.Manager
	users    *auth.Service
	sheets   *planner.Manager
	measures *measure.Service

	backendFlag string
)

var rootCmd = &cobra.Command{
	Use:   "treino",
	Short: "Workout tracker with sheets, cycles, and progression stats",
	Long: `Treino is a CLI for logging strength workouts and tracking progress.

THE CURRENT WORKOUT:

  There is always one workout being edited. Add exercises, mark sets as
  done, then save it. Saving with at least one completed set adds a
  snapshot to the history of that weekday.

  $ treino workout weekday Segunda           # Tag the day (loads last Monday)
  $ treino workout add Supino --weight 60    # Add an exercise
  $ treino workout done Supino 1             # Complete the first set
  $ treino workout save                      # Save and record history

SHEETS AND CYCLES:

  $ treino sheet create "Treino A" --exercise "Supino:4x10@60:Peito"
  $ treino sheet apply "Treino A"            # Load a sheet into the workout
  $ treino cycle create Hipertrofia --sheet <id> --start 2025-03-01

STATS:

  $ treino stats progression Supino          # Max weight per workout
  $ treino stats volume                      # Sets per muscle group, last 7 days
  $ treino stats counts                      # Workouts this month/year/total

SHARING:

  $ treino sheet share <id>                  # Publish and print the link
  $ treino serve                             # Serve shared sheets over HTTP

MCP INTEGRATION:

  Run 'treino mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "treino": { "command": "treino", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data lives in ~/.local/share/treino using Badger by default. Choose
  another backend with "backend" in ~/.config/treino/config.json or
  TREINO_BACKEND: badger, sqlite, charm (synced) or memory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store init for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if backendFlag != "" {
			cfg.Backend = backendFlag
		}
		logging.Setup(cfg.LoggerParams())

		repo, err = cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}

		notes = notify.NewManager()
		notes.Subscribe(printNotification)
		users = auth.NewService(repo)
		sheets = planner.NewManager(repo).WithUsers(users)
		measures = measure.NewService(repo)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}

func printNotification(n notify.Notification) {
	switch n.Kind {
	case notify.Error:
		color.Red("✗ %s", n.Title)
	default:
		color.Green("✓ %s", n.Title)
	}
	if n.Description != "" {
		fmt.Println(color.New(color.Faint).Sprint("  " + n.Description))
	}
}

// rejections are domain refusals, shown as rejection notifications instead of raw errors.
var rejections = []error{
	session.ErrValidation, session.ErrNotFound, session.ErrForbidden,
	planner.ErrValidation, planner.ErrNotFound, planner.ErrAmbiguous,
	planner.ErrReferencedByCycle, planner.ErrNotPublic,
	auth.ErrDuplicateEmail, auth.ErrAuthenticationFailed, auth.ErrValidationFailed, auth.ErrNotSignedIn,
	measure.ErrValidation, measure.ErrNotFound,
	timer.ErrInvalidDuration,
}

// reportError shows err as a rejection notification when a domain rule refused the
// operation. It returns false for anything else, which the caller prints itself.
func reportError(err error) bool {
	if notes == nil {
		return false
	}
	for _, target := range rejections {
		if errors.Is(err, target) {
			notes.Reject("Erro", err.Error())
			return true
		}
	}
	return false
}

// openSession loads the current workout bound to the signed-in user.
func openSession() (*session.Session, error) {
	s := session.New(repo, notes).
		WithIdentity(users).
		WithLogger(logrus.StandardLogger())
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend (badger, sqlite, charm, memory)")
}
