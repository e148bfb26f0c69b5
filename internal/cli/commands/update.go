package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/client"
	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/types"
	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/ui"
)

var (
	updateTitle  string
	updateArtist string
	updatePrice  float64
)

// updateCmd is the update command
var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "update an existing album",
	Long: `Update an existing album.

Updates are full replacements: the album's title, artist and price are all
sent on every update. In interactive mode the current values are offered as
defaults; with flags, any omitted field must still be provided because the
server replaces the whole record.`,
	Example: `  # Interactive update (prompts with current values)
  $ albumctl update 3

  # Non-interactive update
  $ albumctl update 3 --title "The Wall" --artist "Pink Floyd" --price 22.99`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New album title")
	updateCmd.Flags().StringVar(&updateArtist, "artist", "", "New artist name")
	updateCmd.Flags().Float64Var(&updatePrice, "price", -1, "New price, non-negative")

	updateCmd.SilenceUsage = true
}

func runUpdate(cmd *cobra.Command, args []string) error {
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

	// Fetch current values; they seed interactive defaults and make a
	// partial flag update possible despite full-replacement semantics
	current, err := apiClient.GetAlbum(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			ui.PrintWarning("Album %d not found", id)
			return fmt.Errorf("album not found")
		}
		ui.PrintError("failed to load album: %v", err)
		return fmt.Errorf("update failed")
	}

	var input types.UpdateAlbumInput
	if cmd.Flags().Changed("title") || cmd.Flags().Changed("artist") || cmd.Flags().Changed("price") {
		input, err = updateInputFromFlags(cmd, current)
	} else {
		input, err = updateInputFromPrompts(current)
	}
	if err != nil {
		return err
	}

	ui.PrintInfo("Updating album %d...", id)

	album, err := apiClient.UpdateAlbum(ctx, id, input)
	if err != nil {
		ui.PrintError("failed to update album: %v", err)
		return fmt.Errorf("update failed")
	}

	ui.PrintSuccess("Album '%s' updated (%s)", album.Title, ui.FormatPrice(album.Price))
	return nil
}

// updateInputFromFlags merges changed flags over the current record
func updateInputFromFlags(cmd *cobra.Command, current *types.Album) (types.UpdateAlbumInput, error) {
	input := types.UpdateAlbumInput{
		Title:  current.Title,
		Artist: current.Artist,
		Price:  current.Price,
	}

	if cmd.Flags().Changed("title") {
		input.Title = updateTitle
	}
	if cmd.Flags().Changed("artist") {
		input.Artist = updateArtist
	}
	if cmd.Flags().Changed("price") {
		input.Price = updatePrice
	}

	if input.Title == "" || input.Artist == "" {
		ui.PrintError("title and artist must not be empty")
		return input, fmt.Errorf("invalid arguments")
	}
	if input.Price < 0 {
		ui.PrintError("price must not be negative")
		return input, fmt.Errorf("invalid arguments")
	}

	return input, nil
}

// updateInputFromPrompts collects the replacement fields interactively,
// defaulting to the album's current values
func updateInputFromPrompts(current *types.Album) (types.UpdateAlbumInput, error) {
	var input types.UpdateAlbumInput

	titlePrompt := &survey.Input{Message: "Album title:", Default: current.Title}
	if err := survey.AskOne(titlePrompt, &input.Title, survey.WithValidator(survey.Required)); err != nil {
		return input, fmt.Errorf("input cancelled")
	}

	artistPrompt := &survey.Input{Message: "Artist name:", Default: current.Artist}
	if err := survey.AskOne(artistPrompt, &input.Artist, survey.WithValidator(survey.Required)); err != nil {
		return input, fmt.Errorf("input cancelled")
	}

	price, err := promptPrice("Price ($):", strconv.FormatFloat(current.Price, 'f', 2, 64))
	if err != nil {
		return input, err
	}
	input.Price = price

	return input, nil
}
