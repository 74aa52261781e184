package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmar008/dealaai/internal/cli/chat"
	"github.com/jmar008/dealaai/internal/cli/client"
	"github.com/jmar008/dealaai/internal/cli/config"
	"github.com/jmar008/dealaai/internal/cli/session"
	"github.com/jmar008/dealaai/internal/cli/ui"
)

const version = "0.1.0"

// rootCmd is the root command
var rootCmd = &cobra.Command{
	Use:     "dealctl",
	Short:   "DealaAI dealership CLI",
	Version: version,
	Long: `A command-line tool for dealership staff. Browse the vehicle stock,
chat with the AI sales assistant, and manage your account.`,
	Example: `  # Authenticate with the API server
  $ dealctl login -s http://localhost:8080 -u maria

  # Browse the stock
  $ dealctl stock list

  # Search for a car
  $ dealctl stock search "bmw diesel"

  # Start the assistant chat
  $ dealctl chat`,
}

// Execute executes the root command
func Execute() error {
	rootCmd.SetVersionTemplate(formatVersion())
	return rootCmd.Execute()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(passwdCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(stockCmd)
	rootCmd.AddCommand(chatCmd)

	rootCmd.SetUsageTemplate(usageTemplate())
	rootCmd.SetHelpTemplate(usageTemplate())
}

// app bundles the pieces every authenticated command needs.
type app struct {
	store   *config.Store
	client  *client.Client
	session *session.Manager
	chat    *chat.Store
}

// newApp loads the stored config and wires the client to the session so
// a 401 anywhere drops the session immediately.
func newApp() (*app, error) {
	store, err := config.NewStore()
	if err != nil {
		return nil, err
	}

	cfg, err := store.Load()
	if err != nil {
		return nil, err
	}

	apiClient, err := client.New(cfg.Server, store)
	if err != nil {
		return nil, err
	}

	sess := session.NewManager(apiClient, store)
	sess.BindUnauthorized(apiClient.OnUnauthorized)

	return &app{
		store:   store,
		client:  apiClient,
		session: sess,
		chat:    chat.NewStore(),
	}, nil
}

// loginHint tells anonymous users how to get in.
type loginHint struct{}

func (loginHint) RedirectToLogin() {
	ui.PrintWarning("You are not logged in. Run 'dealctl login' first.")
}

// requireAuth verifies the stored session before a protected command
// runs. The stored token is never trusted on its own; the server has to
// confirm it.
func (a *app) requireAuth(ctx context.Context) error {
	gate := session.NewGate(a.session, loginHint{})
	if err := gate.EnsureFresh(ctx); err != nil {
		if client.IsConnectionError(err) {
			return fmt.Errorf("cannot reach %s", a.client.Server())
		}
	}

	if gate.Admit() != session.DecisionAllow {
		return fmt.Errorf("authentication required")
	}
	return nil
}

func usageTemplate() string {
	return `{{if .Long}}{{.Long}}

{{end}}` + ui.Styles.Bold.Render("USAGE") + `
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}

{{if .HasExample}}` + ui.Styles.Bold.Render("EXAMPLES") + `
{{.Example}}

{{end}}{{if .HasAvailableSubCommands}}` + ui.Styles.Bold.Render("COMMANDS") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableLocalFlags}}` + ui.Styles.Bold.Render("OPTIONS") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
}

func formatVersion() string {
	return fmt.Sprintf("dealctl version %s\n", version)
}
