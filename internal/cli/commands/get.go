package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/client"
	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/ui"
)

// getCmd is the get command
var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "show a single album",
	Long: `Show a single album by its id.

Displays the album's title, artist, price and timestamps. This is a read-only
view; use 'albumctl update' or 'albumctl manage' to change an album.`,
	Example: `  # Show album 3
  $ albumctl get 3`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.SilenceUsage = true
}

func runGet(cmd *cobra.Command, args []string) error {
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

	album, err := apiClient.GetAlbum(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			ui.PrintWarning("Album %d not found", id)
			return fmt.Errorf("album not found")
		}
		ui.PrintError("failed to load album: %v", err)
		return fmt.Errorf("get operation failed")
	}

	fmt.Println()
	fmt.Println(ui.RenderAlbumDetail(album))

	return nil
}
