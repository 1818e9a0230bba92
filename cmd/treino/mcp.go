// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server exposing workout data to AI assistants.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/treino/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "treino": {
        "command": "treino",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  current_workout       The workout being edited
  get_progression       Max weight per workout for an exercise
  get_weekly_volume     Completed sets per muscle group, last 7 days
  get_workout_counts    Workouts in the last month, year, and total
  list_sheets           Sheets with share links
  get_shared_sheet      A public sheet by share id
  list_cycles           Cycles with their sheets and active flag
  add_measurement       Record body measurements
  list_measurements     Recent body measurements

AVAILABLE RESOURCES:

  treino://history/recent   Last saved workouts
  treino://stats            Counts, weekly volume, and latest max weights`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, cfg.GetOrigin())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
