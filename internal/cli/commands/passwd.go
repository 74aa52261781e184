package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/jmar008/dealaai/internal/cli/ui"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "change your password",
	RunE:  runPasswd,
}

func init() {
	passwdCmd.SilenceUsage = true
}

func runPasswd(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	var oldPassword, newPassword, confirm string

	if err := survey.AskOne(&survey.Password{Message: "Current password:"}, &oldPassword, survey.WithValidator(survey.Required)); err != nil {
		return fmt.Errorf("input failed")
	}
	if err := survey.AskOne(&survey.Password{Message: "New password:"}, &newPassword, survey.WithValidator(survey.Required)); err != nil {
		return fmt.Errorf("input failed")
	}
	if err := survey.AskOne(&survey.Password{Message: "Repeat new password:"}, &confirm, survey.WithValidator(survey.Required)); err != nil {
		return fmt.Errorf("input failed")
	}

	if newPassword != confirm {
		ui.PrintError("passwords do not match")
		return fmt.Errorf("passwords do not match")
	}

	if err := a.client.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		ui.PrintError("failed to change password: %v", err)
		return fmt.Errorf("password change failed")
	}

	ui.PrintSuccess("Password changed")
	return nil
}
