// ABOUTME: CLI commands for body measurements.
// ABOUTME: One flag per measurement field; list filters by field and limits results.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/treino/internal/models"
	"github.com/spf13/cobra"
)

var (
	measureValues = map[models.MeasurementField]*float64{}
	measureDate   string
	measureNotes  string

	measureListField string
	measureListLimit int
)

var measureCmd = &cobra.Command{
	Use:     "measure",
	Aliases: []string{"m"},
	Short:   "Track body measurements",
	Long: `Record body measurements such as weight, body fat, and circumferences.

FIELDS:

  weight (kg), height (cm), body_fat (%), chest, waist, hips,
  biceps_left, biceps_right, thigh_left, thigh_right,
  calf_left, calf_right (cm)

EXAMPLES:

  treino measure add --weight 82.5 --body_fat 18
  treino measure add --waist 84 --date 2025-03-01 --notes "em jejum"
  treino measure list --field weight -n 10`,
}

var measureAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a measurement",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m := models.NewBodyMeasurement().WithNotes(measureNotes)
		for _, f := range models.AllMeasurementFields() {
			if cmd.Flags().Changed(string(f)) {
				m.WithField(f, *measureValues[f])
			}
		}
		if measureDate != "" {
			t, err := parseTime(measureDate)
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}
			m.WithDate(t)
		}

		if err := measures.Add(m); err != nil {
			return err
		}
		color.Green("✓ Recorded measurement %s", color.New(color.Faint).Sprint(m.ID.String()[:8]))
		return nil
	},
}

var measureListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List measurements, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var field *models.MeasurementField
		if measureListField != "" {
			if !models.IsValidMeasurementField(measureListField) {
				return fmt.Errorf("unknown measurement field: %s", measureListField)
			}
			f := models.MeasurementField(measureListField)
			field = &f
		}

		list, err := measures.List(field, measureListLimit)
		if err != nil {
			return fmt.Errorf("failed to list measurements: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No measurements found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, m := range list {
			fmt.Printf("%s %s %s%s\n",
				faint.Sprint(m.ID.String()[:8]),
				faint.Sprint(m.Date.Format("2006-01-02 15:04")),
				formatMeasurement(&m, field),
				notesSuffix(m.Notes))
		}
		return nil
	},
}

var measureDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a measurement by id prefix",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := measures.Delete(args[0]); err != nil {
			return err
		}
		color.Green("✓ Deleted measurement %s", args[0])
		return nil
	},
}

func formatMeasurement(m *models.BodyMeasurement, only *models.MeasurementField) string {
	var parts []string
	for _, f := range models.AllMeasurementFields() {
		if only != nil && f != *only {
			continue
		}
		if v, ok := m.Field(f); ok {
			parts = append(parts, fmt.Sprintf("%s=%g%s", f, v, models.MeasurementUnits[f]))
		}
	}
	return strings.Join(parts, " ")
}

func notesSuffix(notes string) string {
	if notes == "" {
		return ""
	}
	return color.New(color.Faint).Sprintf(" (%s)", truncate(notes, 30))
}

func init() {
	for _, f := range models.AllMeasurementFields() {
		measureValues[f] = measureAddCmd.Flags().Float64(string(f), 0,
			fmt.Sprintf("%s in %s", strings.ReplaceAll(string(f), "_", " "), models.MeasurementUnits[f]))
	}
	measureAddCmd.Flags().StringVar(&measureDate, "date", "", "date (YYYY-MM-DD [HH:MM]), defaults to now")
	measureAddCmd.Flags().StringVar(&measureNotes, "notes", "", "notes for the measurement")

	measureListCmd.Flags().StringVarP(&measureListField, "field", "f", "", "only measurements with this field")
	measureListCmd.Flags().IntVarP(&measureListLimit, "limit", "n", 20, "max number of results")

	measureCmd.AddCommand(measureAddCmd)
	measureCmd.AddCommand(measureListCmd)
	measureCmd.AddCommand(measureDeleteCmd)
	rootCmd.AddCommand(measureCmd)
}
