package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/jmar008/dealaai/internal/cli/tui"
	"github.com/jmar008/dealaai/internal/cli/types"
	"github.com/jmar008/dealaai/internal/cli/ui"
)

var (
	chatResume   string
	chatClearYes bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "talk to the AI sales assistant",
	Long: `Start an interactive chat with the AI sales assistant.

The assistant knows the current stock and can answer questions about
prices, availability, and specific vehicles.`,
	Example: `  # Start a fresh conversation
  $ dealctl chat

  # Resume an earlier conversation
  $ dealctl chat --resume <conversation-id>

  # List past conversations
  $ dealctl chat history`,
	RunE: runChat,
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "list past conversations",
	RunE:  runChatHistory,
}

var chatClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "delete all conversations",
	RunE:  runChatClear,
}

func init() {
	chatCmd.Flags().StringVar(&chatResume, "resume", "", "conversation ID to resume")
	chatClearCmd.Flags().BoolVarP(&chatClearYes, "yes", "y", false, "skip the confirmation prompt")
	chatCmd.AddCommand(chatHistoryCmd)
	chatCmd.AddCommand(chatClearCmd)

	for _, cmd := range []*cobra.Command{chatCmd, chatHistoryCmd, chatClearCmd} {
		cmd.SilenceUsage = true
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	user := a.session.State().User
	if !user.ChatEnabled {
		ui.PrintWarning("Chat is not enabled for your account.")
		return fmt.Errorf("chat disabled")
	}

	if chatResume != "" {
		conv, err := a.client.GetConversation(ctx, chatResume)
		if err != nil {
			ui.PrintError("failed to load conversation: %v", err)
			return fmt.Errorf("resume failed")
		}
		a.chat.SetCurrentConversation(conv)
	}

	program := tui.NewChatProgram(a.client, a.chat, user.Username)
	return program.Run()
}

func runChatHistory(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	list, err := a.client.ListConversations(ctx)
	if err != nil {
		ui.PrintError("failed to list conversations: %v", err)
		return fmt.Errorf("history failed")
	}
	if list == nil {
		list = &types.ConversationList{}
	}

	fmt.Print(ui.RenderConversationTable(list))
	return nil
}

func runChatClear(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	if !chatClearYes {
		confirmed := false
		prompt := &survey.Confirm{Message: "Delete all conversations?", Default: false}
		if err := survey.AskOne(prompt, &confirmed); err != nil {
			return err
		}
		if !confirmed {
			ui.PrintInfo("Aborted.")
			return nil
		}
	}

	result, err := a.client.ClearConversations(ctx)
	if err != nil {
		ui.PrintError("failed to clear conversations: %v", err)
		return fmt.Errorf("clear failed")
	}

	a.chat.Reset()

	deleted := 0
	if result != nil {
		deleted = result.Deleted
	}
	ui.PrintSuccess("Removed %d conversations", deleted)
	return nil
}
