package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/tui"
	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/ui"
)

var chatStream bool

// chatCmd is the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "start interactive chat with the album assistant",
	Long: `Start an interactive chat session with the album assistant.

The assistant understands natural language and can view, create, update and
delete albums on your behalf. The conversation lives only for the session.`,
	Example: `  # Start interactive chat
  $ albumctl chat

  # Render replies incrementally as they stream in
  $ albumctl chat --stream

  # Keyboard controls:
  #   Enter        send message
  #   Shift+Enter  insert line break
  #   Esc          quit session`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatStream, "stream", false, "Stream the assistant reply incrementally")

	chatCmd.SilenceUsage = true
}

func runChat(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		ui.PrintError("unexpected argument: %s", args[0])
		fmt.Println("\nRun 'albumctl chat' to start an interactive session.")
		return fmt.Errorf("invalid arguments")
	}

	apiClient, err := newAPIClient()
	if err != nil {
		return err
	}

	ui.PrintChatWelcomeBanner()

	sessionID := uuid.New().String()
	program := tui.NewChatProgram(apiClient, sessionID, chatStream)
	if err := program.Run(); err != nil {
		return fmt.Errorf("failed to run chat TUI: %w", err)
	}

	return nil
}
