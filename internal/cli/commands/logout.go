package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmar008/dealaai/internal/cli/ui"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "log out and discard the stored token",
	Long: `Log out from the DealaAI API server.

The server is told the session is over, but the local token is discarded
either way, so logout works even when the server is unreachable.`,
	RunE: runLogout,
}

func init() {
	logoutCmd.SilenceUsage = true
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}

	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.chat.Reset()

	ui.PrintSuccess("Logged out")
	return nil
}
