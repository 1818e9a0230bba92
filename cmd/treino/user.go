// ABOUTME: CLI commands for local user profiles.
// ABOUTME: Register, sign in by email, sign out, and show the signed-in user.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/treino/internal/auth"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage the signed-in user",
	Long: `Users own sheets, write comments, and keep a list of saved sheets.

EXAMPLES:

  treino user register Ana ana@example.com
  treino user login ana@example.com
  treino user whoami
  treino user logout`,
}

var userRegisterCmd = &cobra.Command{
	Use:   "register <name> <email>",
	Short: "Create a user and sign in",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[len(args)-1]
		name := strings.Join(args[:len(args)-1], " ")
		u, err := users.Register(name, email)
		if err != nil {
			if errors.Is(err, auth.ErrDuplicateEmail) {
				return fmt.Errorf("%s is already registered, use 'treino user login %s'", email, email)
			}
			return err
		}
		color.Green("✓ Registered and signed in as %s", u.Username)
		return nil
	},
}

var userLoginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := users.SignIn(args[0])
		if err != nil {
			return err
		}
		color.Green("✓ Signed in as %s", u.Username)
		return nil
	},
}

var userLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := users.SignOut(); err != nil {
			return err
		}
		color.Green("✓ Signed out")
		return nil
	},
}

var userWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := users.Current()
		if errors.Is(err, auth.ErrNotSignedIn) {
			fmt.Println("Not signed in.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> %s\n", u.Username, u.Email, color.New(color.Faint).Sprint(u.ID.String()[:8]))
		fmt.Printf("  %d saved sheets\n", len(u.SavedWorkouts))
		return nil
	},
}

func init() {
	userCmd.AddCommand(userRegisterCmd)
	userCmd.AddCommand(userLoginCmd)
	userCmd.AddCommand(userLogoutCmd)
	userCmd.AddCommand(userWhoamiCmd)
	rootCmd.AddCommand(userCmd)
}
