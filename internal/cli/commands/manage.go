package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/tui"
	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/ui"
)

// manageCmd is the manage command
var manageCmd = &cobra.Command{
	Use:   "manage",
	Short: "open the interactive album editor",
	Long: `Open the full-screen album editor.

Combines the album list with a create/edit form. The list reloads from the
API server after every change; deletions ask for confirmation first.`,
	Example: `  # Open the editor
  $ albumctl manage

  # Keyboard controls:
  #   Tab          cycle form fields and list
  #   Enter        submit form / edit selected album
  #   d            delete selected album (asks y/n)
  #   r            reload the list
  #   Esc          dismiss error / cancel edit / quit`,
	RunE: runManage,
}

func init() {
	manageCmd.SilenceUsage = true
}

func runManage(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		ui.PrintError("unexpected argument: %s", args[0])
		fmt.Println("\nRun 'albumctl manage' to open the editor.")
		return fmt.Errorf("invalid arguments")
	}

	apiClient, err := newAPIClient()
	if err != nil {
		return err
	}

	program := tui.NewManageProgram(apiClient)
	if err := program.Run(); err != nil {
		return fmt.Errorf("failed to run album editor: %w", err)
	}

	return nil
}
