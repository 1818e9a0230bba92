// ABOUTME: CLI command for copying data between storage backends.
// ABOUTME: Reads every record from one backend and writes it into another.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/treino/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy all treino data from one storage backend to another.

Backends: badger, sqlite, charm. Both use the configured data directory.
The destination should be empty; existing records with the same id are
replaced.

USAGE:

  treino migrate --from badger --to sqlite --dry-run   # Preview
  treino migrate --from badger --to charm              # Start syncing

AFTER MIGRATION:

  Set "backend" in ~/.config/treino/config.json to the new backend.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == "" {
			migrateFrom = cfg.GetBackend()
		}
		if migrateTo == "" {
			return fmt.Errorf("--to is required")
		}
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %s", migrateFrom)
		}

		src, closeSrc, err := openBackend(migrateFrom)
		if err != nil {
			return err
		}
		defer closeSrc()

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			data, err := src.GetAllData()
			if err != nil {
				return fmt.Errorf("read source: %w", err)
			}
			fmt.Printf("Would migrate from %s to %s:\n", migrateFrom, migrateTo)
			printMigrateSummary(&storage.MigrateSummary{
				Workouts:     data.History.Len(),
				Sheets:       len(data.Sheets),
				Cycles:       len(data.Cycles),
				Measurements: len(data.Measurements),
				Users:        len(data.Users),
				Current:      data.CurrentWorkout != nil,
			})
			return nil
		}

		dst, closeDst, err := openBackend(migrateTo)
		if err != nil {
			return err
		}
		defer closeDst()

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		color.Green("✓ Migrated from %s to %s", migrateFrom, migrateTo)
		printMigrateSummary(summary)
		return nil
	},
}

// openBackend reuses the open store for the configured backend and opens any other.
func openBackend(backend string) (*storage.Store, func(), error) {
	if backend == cfg.GetBackend() {
		return repo, func() {}, nil
	}
	other := *cfg
	other.Backend = backend
	s, err := other.OpenStore()
	if err != nil {
		return nil, nil, err
	}
	return s, func() { _ = s.Close() }, nil
}

func printMigrateSummary(s *storage.MigrateSummary) {
	fmt.Printf("  Workouts: %d\n", s.Workouts)
	fmt.Printf("  Sheets: %d\n", s.Sheets)
	fmt.Printf("  Cycles: %d\n", s.Cycles)
	fmt.Printf("  Measurements: %d\n", s.Measurements)
	fmt.Printf("  Users: %d\n", s.Users)
	if s.Current {
		fmt.Println("  Current workout: yes")
	}
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend (default: configured backend)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
