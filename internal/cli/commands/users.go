package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmar008/dealaai/internal/cli/types"
	"github.com/jmar008/dealaai/internal/cli/ui"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "list the users of your dealership group",
	Long:  `List user accounts. Requires a manager profile on the server side.`,
	RunE:  runUsers,
}

func init() {
	usersCmd.SilenceUsage = true
}

func runUsers(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	list, err := a.client.ListUsers(ctx)
	if err != nil {
		ui.PrintError("failed to list users: %v", err)
		return fmt.Errorf("users failed")
	}
	if list == nil {
		list = &types.UserList{}
	}

	fmt.Print(ui.RenderUserTable(list))
	return nil
}
