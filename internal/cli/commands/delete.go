package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/client"
	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/ui"
)

var deleteForce bool

// deleteCmd is the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "delete an album",
	Long: `Delete an album from the catalog.

By default, you will be prompted to confirm the deletion. Use --force to skip
confirmation. Declining the confirmation performs no action.`,
	Example: `  # Delete an album (asks for confirmation)
  $ albumctl delete 3

  # Force delete without confirmation
  $ albumctl delete 3 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")

	// Silence usage to avoid showing help on every error
	deleteCmd.SilenceUsage = true
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		ui.PrintError("invalid album id: %s", args[0])
		return fmt.Errorf("invalid arguments")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	apiClient, err := newAPIClient()
	if err != nil {
		return err
	}

	// Look up the album so the confirmation names what is being removed
	album, err := apiClient.GetAlbum(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			ui.PrintWarning("Album %d not found", id)
			return fmt.Errorf("album not found")
		}
		ui.PrintError("failed to load album: %v", err)
		return fmt.Errorf("deletion failed")
	}

	if !deleteForce {
		confirm := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Delete '%s' by %s?", album.Title, album.Artist),
		}
		if err := survey.AskOne(prompt, &confirm); err != nil {
			return fmt.Errorf("confirmation prompt failed: %w", err)
		}

		if !confirm {
			ui.PrintInfo("Deletion cancelled")
			return nil
		}
	}

	ui.PrintInfo("Deleting album %d...", id)

	if err := apiClient.DeleteAlbum(ctx, id); err != nil {
		ui.PrintError("failed to delete album: %v", err)
		return fmt.Errorf("deletion failed")
	}

	ui.PrintSuccess("Album '%s' deleted", album.Title)
	return nil
}
