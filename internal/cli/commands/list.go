package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/ui"
)

// listCmd is the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list all albums in the catalog",
	Long: `List all albums in the catalog.

Shows every album with its id, title, artist and price. The list is always
fetched fresh from the API server.`,
	Example: `  # List all albums
  $ albumctl list

  # List albums from a specific server
  $ albumctl list -s http://api.example.com:8080`,
	RunE: runList,
}

func init() {
	// Silence usage to avoid showing help on every error
	listCmd.SilenceUsage = true
}

func runList(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		ui.PrintError("unexpected argument: %s", args[0])
		fmt.Printf("\nRun '%s --help' for usage.\n", cmd.CommandPath())
		return fmt.Errorf("invalid arguments")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	apiClient, err := newAPIClient()
	if err != nil {
		return err
	}

	albums, err := apiClient.ListAlbums(ctx)
	if err != nil {
		ui.PrintError("failed to load albums: %v", err)
		return fmt.Errorf("list operation failed")
	}

	fmt.Println()
	ui.PrintBold("Album catalog")
	fmt.Println(ui.RenderAlbumTable(albums))
	fmt.Println(ui.RenderAlbumSummary(len(albums)))

	return nil
}
