// ABOUTME: CLI command for the rest timer between sets.
// ABOUTME: Counts down in the terminal from the given minutes or an exercise's rest time.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/harperreed/treino/internal/timer"
	"github.com/spf13/cobra"
)

var timerExercise string

var timerCmd = &cobra.Command{
	Use:   "timer [minutes]",
	Short: "Run a rest timer",
	Long: `Count down the rest between sets.

Minutes go from 0.5 to 10 in half-minute steps. Without arguments the
timer uses 1 minute, or the rest time of --exercise in the current workout.
Press Ctrl+C to stop early.

EXAMPLES:

  treino timer                 # 1 minute
  treino timer 1.5             # 90 seconds
  treino timer --exercise 2    # Rest time of the second exercise`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes := 1.0
		switch {
		case len(args) == 1:
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid minutes: %s", args[0])
			}
			minutes = v
		case timerExercise != "":
			s, err := openSession()
			if err != nil {
				return err
			}
			w := s.Workout()
			e, err := resolveExercise(&w, timerExercise)
			if err != nil {
				return err
			}
			minutes = e.RestTimeMinutes
		}

		t, err := timer.New(minutes)
		if err != nil {
			return err
		}
		t.OnTick(func(left time.Duration) {
			fmt.Printf("\r⏱  %s ", timer.Format(left))
		})
		t.OnDone(func() {
			fmt.Print("\a\n")
			notes.Success("Descanso finalizado", "Hora da próxima série!")
		})

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		fmt.Printf("⏱  %s ", timer.Format(t.Remaining()))
		if err := t.Run(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Printf("\nStopped with %s left\n", timer.Format(t.Remaining()))
				return nil
			}
			return err
		}
		return nil
	},
}

func init() {
	timerCmd.Flags().StringVarP(&timerExercise, "exercise", "e", "", "use the rest time of this exercise in the current workout")
	rootCmd.AddCommand(timerCmd)
}
