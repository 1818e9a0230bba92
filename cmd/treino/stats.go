// ABOUTME: CLI commands for training statistics derived from workout history.
// ABOUTME: Shows weight progression per exercise, weekly muscle-group volume, and workout counts.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/treino/internal/history"
	"github.com/spf13/cobra"
)

const barWidth = 30

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show training statistics",
	Long: `Statistics computed from saved workout history. Only completed sets count.

EXAMPLES:

  treino stats progression            # Exercises with progression data
  treino stats progression Supino     # Max weight per workout for Supino
  treino stats volume                 # Completed sets per muscle group, last 7 days
  treino stats counts                 # Workouts in the last month, year, and total`,
}

var statsProgressionCmd = &cobra.Command{
	Use:   "progression [exercise]",
	Short: "Show max weight per workout for an exercise",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := repo.History()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if len(args) == 0 {
			series := history.SelectableExercises(h)
			if len(series) == 0 {
				fmt.Println("No progression data yet. Complete some weighted sets and save a workout.")
				return nil
			}
			faint := color.New(color.Faint)
			for _, s := range series {
				last := s.Points[len(s.Points)-1]
				fmt.Printf("%s %gkg %s\n", padRight(s.Name, 24), last.MaxWeight,
					faint.Sprintf("(%d workouts)", len(s.Points)))
			}
			return nil
		}

		name := strings.Join(args, " ")
		points := history.ProgressionFor(h, name)
		if len(points) == 0 {
			fmt.Printf("No progression data for %s.\n", name)
			return nil
		}

		top := 0.0
		for _, p := range points {
			if p.MaxWeight > top {
				top = p.MaxWeight
			}
		}
		for _, p := range points {
			fmt.Printf("%s %s %gkg\n", p.Date.Format("2006-01-02"), bar(p.MaxWeight, top), p.MaxWeight)
		}
		return nil
	},
}

var statsVolumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Show completed sets per muscle group over the last 7 days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := repo.History()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		v := history.ComputeWeeklyVolume(h, time.Now())
		if len(v.Bars) == 0 {
			fmt.Println("No completed sets in the last 7 days.")
			return nil
		}

		sum := 0
		for _, g := range v.Bars {
			sum += g.Total
		}
		top := float64(v.Bars[0].Total)
		for _, g := range v.Bars {
			pct := float64(g.Total) * 100 / float64(sum)
			fmt.Printf("%s %s %d sets %s\n",
				padRight(string(g.Group), 12),
				bar(float64(g.Total), top),
				g.Total,
				color.New(color.Faint).Sprintf("(%.0f%%)", pct))
		}
		return nil
	},
}

var statsCountsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Show how many workouts were saved recently",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := repo.History()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		c := history.WorkoutCounts(h, time.Now())
		fmt.Printf("Last month: %d\n", c.LastMonth)
		fmt.Printf("Last year:  %d\n", c.LastYear)
		fmt.Printf("Total:      %d\n", c.Total)
		return nil
	},
}

func bar(v, top float64) string {
	if top <= 0 {
		return ""
	}
	n := int(v / top * barWidth)
	if n < 1 && v > 0 {
		n = 1
	}
	return color.CyanString(strings.Repeat("█", n)) + strings.Repeat(" ", barWidth-n)
}

func init() {
	statsCmd.AddCommand(statsProgressionCmd)
	statsCmd.AddCommand(statsVolumeCmd)
	statsCmd.AddCommand(statsCountsCmd)
	rootCmd.AddCommand(statsCmd)
}
