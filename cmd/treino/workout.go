// ABOUTME: CLI commands for editing the current workout session.
// ABOUTME: Exercises and sets are addressed by 1-based index, id prefix, or name.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/treino/internal/models"
	"github.com/harperreed/treino/internal/session"
	"github.com/spf13/cobra"
)

var (
	addSets    int
	addReps    int
	addWeight  float64
	addRest    float64
	addMuscles string

	setReps   int
	setWeight float64
	setRemove bool

	commentDelete string
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Edit the current workout",
	Long: `Edit the workout you are training right now.

Changes are stored immediately. Use 'treino workout save' when you are
done: the workout is added to the weekday history only if at least one
set is completed.

ADDRESSING:

  Exercises can be given by position (1, 2, ...), id prefix, or name.
  Sets are given by position within the exercise.

EXAMPLES:

  treino workout show
  treino workout weekday Segunda
  treino workout add Supino --sets 4 --reps 10 --weight 60 --muscle Peito,Tríceps
  treino workout set Supino 2 --weight 62.5
  treino workout done 1 1
  treino workout save`,
}

var workoutShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current workout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		printWorkout(s.Workout(), s.State())
		return nil
	},
}

var workoutNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a fresh workout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		s.Reset()
		if err := s.Persist(); err != nil {
			return err
		}
		color.Green("✓ Started a new workout")
		return nil
	},
}

var workoutRenameCmd = &cobra.Command{
	Use:   "rename <name>",
	Short: "Rename the current workout",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateSession(func(s *session.Session) error {
			if err := s.Rename(strings.Join(args, " ")); err != nil {
				return err
			}
			color.Green("✓ Workout renamed to %s", s.Workout().Name)
			return nil
		})
	},
}

var workoutWeekdayCmd = &cobra.Command{
	Use:   "weekday <day|none>",
	Short: "Tag the workout with a weekday",
	Long: `Tag the workout with a training day.

When the day has history, the latest workout saved for it replaces the
current exercises. Use 'none' to clear the tag.

Days: Segunda, Terça, Quarta, Quinta, Sexta, Sábado, Domingo
(English names are accepted too).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseWeekday(args[0])
		if err != nil {
			return err
		}
		return mutateSession(func(s *session.Session) error {
			loaded, err := s.SelectWeekday(day)
			if err != nil {
				return err
			}
			if !loaded {
				color.Green("✓ Weekday set to %s", displayWeekday(day))
			}
			return nil
		})
	},
}

var workoutAddCmd = &cobra.Command{
	Use:   "add <exercise name>",
	Short: "Add an exercise",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := parseMuscleGroups(addMuscles)
		if err != nil {
			return err
		}
		form := session.ExerciseForm{
			Name:            strings.Join(args, " "),
			Sets:            addSets,
			Reps:            addReps,
			Weight:          addWeight,
			RestTimeMinutes: addRest,
			MuscleGroups:    groups,
		}
		return mutateSession(func(s *session.Session) error {
			e, err := s.AddExercise(form)
			if err != nil {
				return err
			}
			color.Green("✓ Added %s (%d×%d)", e.Name, len(e.Sets), form.Reps)
			if len(e.History) > 0 {
				fmt.Printf("  %d previous sessions found\n", len(e.History))
			}
			return nil
		})
	},
}

var workoutRemoveCmd = &cobra.Command{
	Use:     "remove <exercise>",
	Aliases: []string{"rm"},
	Short:   "Remove an exercise",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateSession(func(s *session.Session) error {
			w := s.Workout()
			e, err := resolveExercise(&w, args[0])
			if err != nil {
				return err
			}
			s.RemoveExercise(e.ID)
			color.Green("✓ Removed %s", e.Name)
			return nil
		})
	},
}

var workoutSetCmd = &cobra.Command{
	Use:   "set <exercise> <n|add>",
	Short: "Edit, add, or remove a set",
	Long: `Edit one set of an exercise, or add a new one.

EXAMPLES:

  treino workout set Supino add             # Append an empty set
  treino workout set Supino 2 --reps 8      # Change reps of set 2
  treino workout set 1 3 --weight 70        # Change weight of set 3
  treino workout set 1 3 --remove           # Remove set 3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateSession(func(s *session.Session) error {
			w := s.Workout()
			e, err := resolveExercise(&w, args[0])
			if err != nil {
				return err
			}

			if args[1] == "add" {
				if _, err := s.AddSet(e.ID); err != nil {
					return err
				}
				color.Green("✓ Added set %d to %s", len(e.Sets)+1, e.Name)
				return nil
			}

			idx, set, err := resolveSet(e, args[1])
			if err != nil {
				return err
			}
			if setRemove {
				if err := s.RemoveSet(e.ID, set.ID); err != nil {
					return err
				}
				color.Green("✓ Removed set %d from %s", idx, e.Name)
				return nil
			}

			var patch session.SetPatch
			if cmd.Flags().Changed("reps") {
				patch.Reps = &setReps
			}
			if cmd.Flags().Changed("weight") {
				patch.Weight = &setWeight
			}
			if patch.Reps == nil && patch.Weight == nil {
				return fmt.Errorf("nothing to change: use --reps, --weight, or --remove")
			}
			if err := s.UpdateSet(e.ID, set.ID, patch); err != nil {
				return err
			}
			color.Green("✓ Updated set %d of %s", idx, e.Name)
			return nil
		})
	},
}

var workoutDoneCmd = &cobra.Command{
	Use:   "done <exercise> <n>",
	Short: "Toggle a set as completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateSession(func(s *session.Session) error {
			w := s.Workout()
			e, err := resolveExercise(&w, args[0])
			if err != nil {
				return err
			}
			idx, set, err := resolveSet(e, args[1])
			if err != nil {
				return err
			}
			done, err := s.ToggleSet(e.ID, set.ID)
			if err != nil {
				return err
			}
			if done {
				color.Green("✓ %s set %d done", e.Name, idx)
			} else {
				fmt.Printf("%s set %d marked as not done\n", e.Name, idx)
			}
			return nil
		})
	},
}

var workoutRestCmd = &cobra.Command{
	Use:   "rest <exercise> <minutes>",
	Short: "Change the rest time of an exercise",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid minutes: %s", args[1])
		}
		return mutateSession(func(s *session.Session) error {
			w := s.Workout()
			e, err := resolveExercise(&w, args[0])
			if err != nil {
				return err
			}
			if err := s.SetRestTime(e.ID, minutes); err != nil {
				return err
			}
			color.Green("✓ %s rest set to %g min", e.Name, minutes)
			return nil
		})
	},
}

var workoutCommentCmd = &cobra.Command{
	Use:   "comment <exercise> [text]",
	Short: "Comment on an exercise",
	Long: `Leave a comment on an exercise, or delete one of yours with --delete.

Requires a signed-in user (see 'treino user login').`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateSession(func(s *session.Session) error {
			w := s.Workout()
			e, err := resolveExercise(&w, args[0])
			if err != nil {
				return err
			}

			if commentDelete != "" {
				c, err := resolveComment(e, commentDelete)
				if err != nil {
					return err
				}
				if err := s.DeleteComment(e.ID, c.ID); err != nil {
					return err
				}
				color.Green("✓ Comment deleted")
				return nil
			}

			c, err := s.AddComment(e.ID, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			color.Green("✓ Comment added %s", color.New(color.Faint).Sprint(c.ID.String()[:8]))
			return nil
		})
	},
}

var workoutSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the workout and record completed sets in history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		_, err = s.Save()
		return err
	},
}

// mutateSession loads the session, applies fn, and persists the result.
func mutateSession(fn func(*session.Session) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return s.Persist()
}

func printWorkout(w models.Workout, state session.State) {
	faint := color.New(color.Faint)
	bold := color.New(color.Bold)

	fmt.Printf("%s  %s  %s\n",
		bold.Sprint(w.Name),
		displayWeekday(w.Weekday),
		faint.Sprintf("[%s]", state))

	if len(w.Exercises) == 0 {
		fmt.Println("No exercises yet. Add one with 'treino workout add <name>'.")
		return
	}

	for i, e := range w.Exercises {
		groups := make([]string, 0, len(e.MuscleGroups))
		for _, g := range e.MuscleGroups {
			groups = append(groups, string(g))
		}
		fmt.Printf("\n%d. %s %s %s\n", i+1, bold.Sprint(e.Name),
			faint.Sprint(e.ID.String()[:8]),
			faint.Sprintf("rest %gmin %s", e.RestTimeMinutes, strings.Join(groups, ", ")))
		for j, set := range e.Sets {
			mark := "[ ]"
			if set.Completed {
				mark = color.GreenString("[✓]")
			}
			fmt.Printf("   %s %d: %d × %gkg\n", mark, j+1, set.Reps, set.WeightValue())
		}
		for _, c := range e.Comments {
			fmt.Printf("   %s %s: %s\n", faint.Sprint(c.ID.String()[:8]), c.UserName, c.Text)
		}
	}
}

// resolveExercise finds an exercise by 1-based position, id prefix, or name.
func resolveExercise(w *models.Workout, ref string) (*models.Exercise, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(w.Exercises) {
			return nil, fmt.Errorf("no exercise at position %d", n)
		}
		return &w.Exercises[n-1], nil
	}
	for i := range w.Exercises {
		if strings.EqualFold(w.Exercises[i].Name, ref) {
			return &w.Exercises[i], nil
		}
	}
	var match *models.Exercise
	for i := range w.Exercises {
		if strings.HasPrefix(w.Exercises[i].ID.String(), strings.ToLower(ref)) {
			if match != nil {
				return nil, fmt.Errorf("ambiguous exercise id prefix: %s", ref)
			}
			match = &w.Exercises[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("exercise not found: %s", ref)
	}
	return match, nil
}

// resolveSet finds a set by 1-based position.
func resolveSet(e *models.Exercise, ref string) (int, *models.Set, error) {
	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 || n > len(e.Sets) {
		return 0, nil, fmt.Errorf("%s has no set %s", e.Name, ref)
	}
	return n, &e.Sets[n-1], nil
}

func resolveComment(e *models.Exercise, prefix string) (*models.Comment, error) {
	for i := range e.Comments {
		if strings.HasPrefix(e.Comments[i].ID.String(), strings.ToLower(prefix)) {
			return &e.Comments[i], nil
		}
	}
	return nil, fmt.Errorf("comment not found: %s", prefix)
}

var englishWeekdays = map[string]models.Weekday{
	"monday":    models.Monday,
	"tuesday":   models.Tuesday,
	"wednesday": models.Wednesday,
	"thursday":  models.Thursday,
	"friday":    models.Friday,
	"saturday":  models.Saturday,
	"sunday":    models.Sunday,
}

// parseWeekday accepts Portuguese or English day names in any case.
// "none" and the empty string clear the weekday.
func parseWeekday(s string) (models.Weekday, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return "", nil
	}
	for _, d := range models.AllWeekdays() {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	if d, ok := englishWeekdays[strings.ToLower(s)]; ok {
		return d, nil
	}
	return "", fmt.Errorf("unknown weekday: %s", s)
}

func displayWeekday(d models.Weekday) string {
	if d == "" {
		return "sem dia"
	}
	return string(d)
}

// parseMuscleGroups parses a comma or plus separated list of muscle groups.
func parseMuscleGroups(s string) ([]models.MuscleGroup, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '+' })
	groups := make([]models.MuscleGroup, 0, len(fields))
	for _, f := range fields {
		g, err := parseMuscleGroup(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return models.UniqueMuscleGroups(groups), nil
}

func parseMuscleGroup(s string) (models.MuscleGroup, error) {
	for _, g := range models.AllMuscleGroups() {
		if strings.EqualFold(string(g), s) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown muscle group: %s", s)
}

func init() {
	workoutAddCmd.Flags().IntVar(&addSets, "sets", models.DefaultSetCount, "number of sets")
	workoutAddCmd.Flags().IntVar(&addReps, "reps", models.DefaultReps, "reps per set")
	workoutAddCmd.Flags().Float64Var(&addWeight, "weight", 0, "weight per set in kg")
	workoutAddCmd.Flags().Float64Var(&addRest, "rest", models.DefaultRestTimeMinutes, "rest between sets in minutes")
	workoutAddCmd.Flags().StringVarP(&addMuscles, "muscle", "m", "", "muscle groups, comma separated")

	workoutSetCmd.Flags().IntVar(&setReps, "reps", 0, "reps for the set")
	workoutSetCmd.Flags().Float64Var(&setWeight, "weight", 0, "weight for the set in kg")
	workoutSetCmd.Flags().BoolVar(&setRemove, "remove", false, "remove the set")

	workoutCommentCmd.Flags().StringVar(&commentDelete, "delete", "", "delete the comment with this id prefix")

	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutNewCmd)
	workoutCmd.AddCommand(workoutRenameCmd)
	workoutCmd.AddCommand(workoutWeekdayCmd)
	workoutCmd.AddCommand(workoutAddCmd)
	workoutCmd.AddCommand(workoutRemoveCmd)
	workoutCmd.AddCommand(workoutSetCmd)
	workoutCmd.AddCommand(workoutDoneCmd)
	workoutCmd.AddCommand(workoutRestCmd)
	workoutCmd.AddCommand(workoutCommentCmd)
	workoutCmd.AddCommand(workoutSaveCmd)
	rootCmd.AddCommand(workoutCmd)
}
