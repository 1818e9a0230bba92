// ABOUTME: CLI commands for workout sheets (reusable templates).
// ABOUTME: Create, list, apply to the current workout, share publicly, and save favourites.
package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/treino/internal/auth"
	"github.com/harperreed/treino/internal/models"
	"github.com/harperreed/treino/internal/planner"
	"github.com/spf13/cobra"
)

var (
	sheetListPublic bool
	sheetListMine   bool
	sheetListShared bool
	sheetListSaved  bool

	sheetWeekday     string
	sheetDescription string
	sheetPublic      bool
	sheetExercises   []string

	sheetShareWith string
	sheetDetach    bool
)

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Manage workout sheets",
	Long: `Workout sheets are reusable lists of exercises.

EXERCISE FORMAT:

  --exercise takes name[:SETSxREPS[@KG]][:Group+Group], for example:

    Supino                      3×12 at 0kg (defaults)
    Supino:4x10@60              4 sets of 10 at 60kg
    Agachamento:5x5@100:Quadríceps+Glúteos

EXAMPLES:

  treino sheet create "Treino A" --weekday Segunda --exercise Supino:4x10@60:Peito
  treino sheet from-current              # Save the current workout as a sheet
  treino sheet apply "Treino A"          # Load a sheet into the current workout
  treino sheet share "Treino A"          # Publish and print the share link
  treino sheet list --saved              # Sheets you saved as favourites`,
}

var sheetListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List sheets",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			list []models.WorkoutSheet
			err  error
		)
		switch {
		case sheetListPublic:
			list, err = sheets.PublicSheets()
		case sheetListMine, sheetListShared, sheetListSaved:
			u, uerr := users.Current()
			if uerr != nil {
				return uerr
			}
			switch {
			case sheetListMine:
				list, err = sheets.OwnedBy(u.ID.String())
			case sheetListShared:
				list, err = sheets.SharedWith(u.ID.String())
			default:
				list, err = sheets.SavedSheets(u)
			}
		default:
			list, err = sheets.ListSheets()
		}
		if err != nil {
			return fmt.Errorf("failed to list sheets: %w", err)
		}

		if len(list) == 0 {
			fmt.Println("No sheets found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range list {
			public := ""
			if s.IsPublic {
				public = color.CyanString(" public")
			}
			fmt.Printf("%s %s %s %d exercises%s\n",
				faint.Sprint(s.ID.String()[:8]),
				padRight(truncate(s.Name, 24), 24),
				padRight(displayWeekday(s.Weekday), 8),
				len(s.Exercises),
				public)
		}
		return nil
	},
}

var sheetShowCmd = &cobra.Command{
	Use:   "show <sheet>",
	Short: "Show a sheet's exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSheet(args[0])
		if err != nil {
			return err
		}
		printSheet(s)
		return nil
	},
}

var sheetCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a sheet",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseWeekday(sheetWeekday)
		if err != nil {
			return err
		}
		exercises := make([]models.Exercise, 0, len(sheetExercises))
		for _, spec := range sheetExercises {
			e, err := parseExerciseSpec(spec)
			if err != nil {
				return err
			}
			exercises = append(exercises, *e)
		}

		s := models.NewWorkoutSheet(strings.Join(args, " ")).
			WithDescription(sheetDescription).
			WithWeekday(day).
			WithExercises(exercises...).
			WithCreatedBy(currentIdentity().UserID)
		s.IsPublic = sheetPublic

		if err := sheets.SaveSheet(s); err != nil {
			return err
		}
		color.Green("✓ Created sheet %s %s", s.Name, color.New(color.Faint).Sprint(s.ID.String()[:8]))
		if s.IsPublic {
			printShareLink(s)
		}
		return nil
	},
}

var sheetFromCurrentCmd = &cobra.Command{
	Use:   "from-current",
	Short: "Save the current workout as a new sheet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		w := sess.Workout()
		s, err := sheets.SheetFromWorkout(&w, currentIdentity())
		if err != nil {
			return err
		}
		notes.Success("Ficha criada", fmt.Sprintf("A ficha %s foi criada a partir do treino atual.", s.Name))
		fmt.Println(color.New(color.Faint).Sprint(s.ID.String()[:8]))
		return nil
	},
}

var sheetApplyCmd = &cobra.Command{
	Use:   "apply <sheet>",
	Short: "Replace the current workout's exercises with a sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSheet(args[0])
		if err != nil {
			return err
		}
		sess, err := openSession()
		if err != nil {
			return err
		}
		sess.ApplySheet(s)
		return sess.Persist()
	},
}

var sheetShareCmd = &cobra.Command{
	Use:   "share <sheet>",
	Short: "Publish a sheet and print its link",
	Long: `Publish a sheet so anyone with the link can view it, or share it
with another registered user with --with <email>.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSheet(args[0])
		if err != nil {
			return err
		}

		if sheetShareWith != "" {
			u, err := findUserByEmail(sheetShareWith)
			if err != nil {
				return err
			}
			if _, err := sheets.ShareWith(s.ID, u.ID.String()); err != nil {
				return err
			}
			color.Green("✓ Shared %s with %s", s.Name, u.Username)
			return nil
		}

		s, err = sheets.SetPublic(s.ID, true)
		if err != nil {
			return err
		}
		color.Green("✓ %s is public", s.Name)
		printShareLink(s)
		return nil
	},
}

var sheetUnshareCmd = &cobra.Command{
	Use:   "unshare <sheet>",
	Short: "Make a sheet private",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSheet(args[0])
		if err != nil {
			return err
		}
		if _, err := sheets.SetPublic(s.ID, false); err != nil {
			return err
		}
		color.Green("✓ %s is private", s.Name)
		return nil
	},
}

var sheetDeleteCmd = &cobra.Command{
	Use:     "delete <sheet>",
	Aliases: []string{"rm"},
	Short:   "Delete a sheet",
	Long: `Delete a sheet. Sheets used by a cycle cannot be deleted unless
--detach is given, which removes the sheet from those cycles first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSheet(args[0])
		if err != nil {
			return err
		}
		if sheetDetach {
			n, err := sheets.RemoveSheetFromCycles(s.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				fmt.Printf("Removed from %d cycle(s)\n", n)
			}
		}
		if err := sheets.DeleteSheet(s.ID); err != nil {
			if errors.Is(err, planner.ErrReferencedByCycle) {
				return fmt.Errorf("%w (or pass --detach)", err)
			}
			return err
		}
		color.Green("✓ Deleted sheet %s", s.Name)
		return nil
	},
}

var sheetSaveCmd = &cobra.Command{
	Use:   "save <sheet>",
	Short: "Save a sheet to your favourites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := users.Current()
		if err != nil {
			return err
		}
		s, err := resolveSheet(args[0])
		if err != nil {
			return err
		}
		if err := sheets.SaveFavourite(u, s.ID); err != nil {
			return err
		}
		color.Green("✓ Saved %s", s.Name)
		return nil
	},
}

var sheetUnsaveCmd = &cobra.Command{
	Use:   "unsave <sheet>",
	Short: "Remove a sheet from your favourites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := users.Current()
		if err != nil {
			return err
		}
		s, err := resolveSheet(args[0])
		if err != nil {
			return err
		}
		if err := sheets.RemoveFavourite(u, s.ID); err != nil {
			return err
		}
		color.Green("✓ Removed %s from favourites", s.Name)
		return nil
	},
}

// resolveSheet finds a sheet by id prefix or exact name.
func resolveSheet(ref string) (*models.WorkoutSheet, error) {
	s, err := sheets.GetSheet(ref)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, planner.ErrNotFound) {
		return nil, err
	}
	all, lerr := sheets.ListSheets()
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

func findUserByEmail(email string) (*models.User, error) {
	all, err := repo.Users()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.EqualFold(all[i].Email, strings.TrimSpace(email)) {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("no user registered with %s", email)
}

func printShareLink(s *models.WorkoutSheet) {
	link, err := planner.ShareLink(cfg.GetOrigin(), s)
	if err != nil {
		return
	}
	fmt.Println("  " + link)
}

func printSheet(s *models.WorkoutSheet) {
	faint := color.New(color.Faint)
	fmt.Printf("%s  %s  %s\n", color.New(color.Bold).Sprint(s.Name), displayWeekday(s.Weekday), faint.Sprint(s.ID.String()[:8]))
	if s.Description != "" {
		fmt.Println(faint.Sprint(s.Description))
	}
	if s.IsPublic {
		printShareLink(s)
	}
	for i, e := range s.Exercises {
		reps, weight := 0, 0.0
		if len(e.Sets) > 0 {
			reps, weight = e.Sets[0].Reps, e.Sets[0].WeightValue()
		}
		groups := make([]string, 0, len(e.MuscleGroups))
		for _, g := range e.MuscleGroups {
			groups = append(groups, string(g))
		}
		fmt.Printf("%d. %s %d×%d @ %gkg %s\n", i+1, e.Name, len(e.Sets), reps, weight, faint.Sprint(strings.Join(groups, ", ")))
	}
}

// parseExerciseSpec parses name[:SETSxREPS[@KG]][:Group+Group].
func parseExerciseSpec(spec string) (*models.Exercise, error) {
	parts := strings.Split(spec, ":")
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, fmt.Errorf("invalid exercise %q: name is required", spec)
	}
	if len(parts) > 3 {
		return nil, fmt.Errorf("invalid exercise %q: too many sections", spec)
	}

	sets, reps, weight := models.DefaultSetCount, models.DefaultReps, 0.0
	if len(parts) > 1 && parts[1] != "" {
		scheme := strings.ToLower(parts[1])
		if at := strings.Index(scheme, "@"); at >= 0 {
			w, err := strconv.ParseFloat(scheme[at+1:], 64)
			if err != nil || w < 0 {
				return nil, fmt.Errorf("invalid exercise %q: bad weight", spec)
			}
			scheme, weight = scheme[:at], w
		}
		setStr, repStr, ok := strings.Cut(scheme, "x")
		if !ok {
			return nil, fmt.Errorf("invalid exercise %q: expected SETSxREPS", spec)
		}
		var err error
		if sets, err = strconv.Atoi(setStr); err != nil || sets < 1 {
			return nil, fmt.Errorf("invalid exercise %q: bad set count", spec)
		}
		if reps, err = strconv.Atoi(repStr); err != nil || reps < 0 {
			return nil, fmt.Errorf("invalid exercise %q: bad reps", spec)
		}
	}

	var groups []models.MuscleGroup
	if len(parts) > 2 {
		var err error
		if groups, err = parseMuscleGroups(parts[2]); err != nil {
			return nil, err
		}
	}

	e := models.NewExercise(name).WithSets(sets, reps).WithMuscleGroups(groups...)
	for i := range e.Sets {
		e.Sets[i] = e.Sets[i].WithWeight(weight)
	}
	return e, nil
}

// currentIdentity is the signed-in identity, or zero when signed out.
func currentIdentity() auth.Identity {
	id, err := users.Identity()
	if err != nil {
		return auth.Identity{}
	}
	return id
}

func init() {
	sheetListCmd.Flags().BoolVar(&sheetListPublic, "public", false, "only public sheets")
	sheetListCmd.Flags().BoolVar(&sheetListMine, "mine", false, "only sheets you created")
	sheetListCmd.Flags().BoolVar(&sheetListShared, "shared", false, "only sheets shared with you")
	sheetListCmd.Flags().BoolVar(&sheetListSaved, "saved", false, "only sheets you saved")

	sheetCreateCmd.Flags().StringVar(&sheetWeekday, "weekday", "", "training day")
	sheetCreateCmd.Flags().StringVar(&sheetDescription, "description", "", "description")
	sheetCreateCmd.Flags().BoolVar(&sheetPublic, "public", false, "publish the sheet")
	sheetCreateCmd.Flags().StringArrayVarP(&sheetExercises, "exercise", "e", nil, "exercise as name[:SETSxREPS[@KG]][:Group+Group] (repeatable)")

	sheetShareCmd.Flags().StringVar(&sheetShareWith, "with", "", "share with the user registered under this email")
	sheetDeleteCmd.Flags().BoolVar(&sheetDetach, "detach", false, "remove the sheet from cycles before deleting")

	sheetCmd.AddCommand(sheetListCmd)
	sheetCmd.AddCommand(sheetShowCmd)
	sheetCmd.AddCommand(sheetCreateCmd)
	sheetCmd.AddCommand(sheetFromCurrentCmd)
	sheetCmd.AddCommand(sheetApplyCmd)
	sheetCmd.AddCommand(sheetShareCmd)
	sheetCmd.AddCommand(sheetUnshareCmd)
	sheetCmd.AddCommand(sheetDeleteCmd)
	sheetCmd.AddCommand(sheetSaveCmd)
	sheetCmd.AddCommand(sheetUnsaveCmd)
	rootCmd.AddCommand(sheetCmd)
}
