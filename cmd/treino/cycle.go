// ABOUTME: CLI commands for training cycles grouping several sheets over a date range.
// ABOUTME: Supports list, create, delete, and showing the cycles active today.
package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/treino/internal/models"
	"github.com/harperreed/treino/internal/planner"
	"github.com/spf13/cobra"
)

var (
	cycleSheets      []string
	cycleStart       string
	cycleEnd         string
	cycleDescription string
)

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Manage training cycles",
	Long: `A cycle groups workout sheets over a period, one month by default.

EXAMPLES:

  treino cycle create Hipertrofia --sheet "Treino A" --sheet "Treino B"
  treino cycle create Força --sheet 1a2b3c4d --start 2025-03-01 --end 2025-04-15
  treino cycle active
  treino cycle delete Hipertrofia`,
}

var cycleListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List cycles",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cycles, err := sheets.ListCycles()
		if err != nil {
			return fmt.Errorf("failed to list cycles: %w", err)
		}
		if len(cycles) == 0 {
			fmt.Println("No cycles found.")
			return nil
		}
		now := time.Now()
		for i := range cycles {
			printCycle(&cycles[i], now)
		}
		return nil
	},
}

var cycleActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "Show cycles running today and their sheets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cycles, err := sheets.ActiveCycles()
		if err != nil {
			return err
		}
		if len(cycles) == 0 {
			fmt.Println("No active cycles.")
			return nil
		}
		now := time.Now()
		for i := range cycles {
			printCycle(&cycles[i], now)
			list, err := sheets.SheetsForCycle(&cycles[i])
			if err != nil {
				return err
			}
			for _, s := range list {
				fmt.Printf("    %s %s\n", color.New(color.Faint).Sprint(s.ID.String()[:8]), s.Name)
			}
		}
		return nil
	},
}

var cycleCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a cycle",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]uuid.UUID, 0, len(cycleSheets))
		for _, ref := range cycleSheets {
			s, err := resolveSheet(ref)
			if err != nil {
				return err
			}
			ids = append(ids, s.ID)
		}

		c := &models.MesoCycle{
			Name:            strings.Join(args, " "),
			Description:     cycleDescription,
			WorkoutSheetIDs: ids,
			CreatedBy:       currentIdentity().UserID,
		}
		if cycleStart != "" {
			t, err := parseTime(cycleStart)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			c.StartDate = t
		}
		if cycleEnd != "" {
			t, err := parseTime(cycleEnd)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}
			c.EndDate = t
		}

		if err := sheets.SaveCycle(c); err != nil {
			return err
		}
		color.Green("✓ Created cycle %s %s", c.Name, color.New(color.Faint).Sprint(c.ID.String()[:8]))
		fmt.Printf("  %s → %s, %d sheets\n", c.StartDate.Format("2006-01-02"), c.EndDate.Format("2006-01-02"), len(c.WorkoutSheetIDs))
		return nil
	},
}

var cycleDeleteCmd = &cobra.Command{
	Use:     "delete <cycle>",
	Aliases: []string{"rm"},
	Short:   "Delete a cycle (its sheets are kept)",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := resolveCycle(args[0])
		if err != nil {
			return err
		}
		if err := sheets.DeleteCycle(c.ID); err != nil {
			return err
		}
		color.Green("✓ Deleted cycle %s", c.Name)
		return nil
	},
}

func resolveCycle(ref string) (*models.MesoCycle, error) {
	c, err := sheets.GetCycle(ref)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, planner.ErrNotFound) {
		return nil, err
	}
	all, lerr := sheets.ListCycles()
	if lerr != nil {
		return nil, lerr
	}
	for i := range all {
		if strings.EqualFold(all[i].Name, ref) {
			return &all[i], nil
		}
	}
	return nil, err
}

func printCycle(c *models.MesoCycle, now time.Time) {
	faint := color.New(color.Faint)
	status := ""
	if c.IsActive(now) {
		status = color.GreenString(" active")
	}
	fmt.Printf("%s %s %s → %s %d sheets%s\n",
		faint.Sprint(c.ID.String()[:8]),
		padRight(truncate(c.Name, 24), 24),
		c.StartDate.Format("2006-01-02"),
		c.EndDate.Format("2006-01-02"),
		len(c.WorkoutSheetIDs),
		status)
}

func init() {
	cycleCreateCmd.Flags().StringArrayVarP(&cycleSheets, "sheet", "s", nil, "sheet id prefix or name (repeatable)")
	cycleCreateCmd.Flags().StringVar(&cycleStart, "start", "", "start date (YYYY-MM-DD), defaults to now")
	cycleCreateCmd.Flags().StringVar(&cycleEnd, "end", "", "end date (YYYY-MM-DD), defaults to one month after start")
	cycleCreateCmd.Flags().StringVar(&cycleDescription, "description", "", "description")

	cycleCmd.AddCommand(cycleListCmd)
	cycleCmd.AddCommand(cycleActiveCmd)
	cycleCmd.AddCommand(cycleCreateCmd)
	cycleCmd.AddCommand(cycleDeleteCmd)
	rootCmd.AddCommand(cycleCmd)
}
