package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmar008/dealaai/internal/cli/ui"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "show the currently authenticated user",
	RunE:  runWhoami,
}

func init() {
	whoamiCmd.SilenceUsage = true
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	user := a.session.State().User
	fmt.Printf("%s %s\n", ui.Styles.Bold.Render("Username:"), user.Username)
	if user.FullName != "" {
		fmt.Printf("%s %s\n", ui.Styles.Bold.Render("Name:    "), user.FullName)
	}
	if user.Email != "" {
		fmt.Printf("%s %s\n", ui.Styles.Bold.Render("Email:   "), user.Email)
	}
	if user.Dealership != nil {
		fmt.Printf("%s %s\n", ui.Styles.Bold.Render("Dealer:  "), user.Dealership.Name)
	}
	if user.Profile != nil {
		fmt.Printf("%s %s\n", ui.Styles.Bold.Render("Role:    "), user.Profile.Name)
	}
	fmt.Printf("%s %s\n", ui.Styles.Bold.Render("Server:  "), a.client.Server())
	fmt.Printf("%s %v\n", ui.Styles.Bold.Render("Chat:    "), user.ChatEnabled)

	return nil
}
