package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/jmar008/dealaai/internal/cli/client"
	"github.com/jmar008/dealaai/internal/cli/config"
	"github.com/jmar008/dealaai/internal/cli/session"
	"github.com/jmar008/dealaai/internal/cli/ui"
)

var (
	loginServer   string
	loginUsername string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "authenticate with the DealaAI API server",
	Long: `Authenticate with the DealaAI API server and save credentials locally.

Your token is stored in ~/.dealctl/config.json and used automatically by
all subsequent commands, until it expires or you log in again.`,
	Example: `  # Login to the default server (localhost:8080)
  $ dealctl login

  # Login to a custom server with a username
  $ dealctl login -s http://api.example.com:8080 -u maria`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginServer, "server", "s", "", "API server address")
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username for authentication")
	loginCmd.SilenceUsage = true
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := config.NewStore()
	if err != nil {
		return err
	}

	cfg, err := store.Load()
	if err != nil {
		return err
	}

	server := cfg.Server
	if loginServer != "" {
		server = loginServer
	}

	if loginUsername == "" {
		prompt := &survey.Input{Message: "Username:"}
		if err := survey.AskOne(prompt, &loginUsername, survey.WithValidator(survey.Required)); err != nil {
			ui.PrintError("failed to read username: %v", err)
			return fmt.Errorf("input failed")
		}
	}

	var password string
	prompt := &survey.Password{Message: "Password:"}
	if err := survey.AskOne(prompt, &password, survey.WithValidator(survey.Required)); err != nil {
		ui.PrintError("failed to read password: %v", err)
		return fmt.Errorf("input failed")
	}

	apiClient, err := client.New(server, store)
	if err != nil {
		ui.PrintError("invalid server address: %v", err)
		return fmt.Errorf("client creation failed")
	}

	// Remember the server before logging in, so a retry after a failed
	// attempt talks to the same place.
	cfg.Server = apiClient.Server()
	if err := store.Save(cfg); err != nil {
		return err
	}

	ui.PrintInfo("Connecting to %s...", apiClient.Server())

	sess := session.NewManager(apiClient, store, session.WithInitialLoading(false))
	user, err := sess.Login(ctx, loginUsername, password)
	if err != nil {
		if client.IsConnectionError(err) {
			ui.PrintErrorBox("Connection Failed", err.Error())
		} else {
			ui.PrintErrorBox("Login Failed", err.Error())
		}
		return fmt.Errorf("authentication failed")
	}

	successContent := fmt.Sprintf(`Username:     %s
Name:         %s
Config saved: %s`,
		user.Username,
		user.FullName,
		store.Path(),
	)
	ui.PrintSuccessBox("✓ Login Successful", successContent)

	fmt.Println()
	ui.PrintInfo("You can now use the following commands:")
	ui.PrintBold("  dealctl stock list   # Browse the vehicle stock")
	ui.PrintBold("  dealctl chat         # Talk to the sales assistant")

	return nil
}
