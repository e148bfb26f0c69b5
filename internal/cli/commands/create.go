package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/loader"
	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/types"
	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/ui"
)

var (
	createTitle  string
	createArtist string
	createPrice  float64
	createFile   string
)

// createCmd is the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "create a new album",
	Long: `Create a new album in the catalog.

You can create an album in three ways:
  1. Interactive mode (will prompt for all fields)
  2. Non-interactive mode using command-line flags
  3. From a YAML file with -f`,
	Example: `  # Interactive creation (will prompt for details)
  $ albumctl create

  # Create with flags (non-interactive)
  $ albumctl create --title "The Wall" --artist "Pink Floyd" --price 24.99

  # Create from a YAML file
  $ albumctl create -f album.yaml`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createTitle, "title", "", "Album title (required for non-interactive mode)")
	createCmd.Flags().StringVar(&createArtist, "artist", "", "Artist name (required for non-interactive mode)")
	createCmd.Flags().Float64Var(&createPrice, "price", 0, "Album price, non-negative")
	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "YAML file containing an album definition")

	// Silence usage to avoid showing help on every error
	createCmd.SilenceUsage = true
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	apiClient, err := newAPIClient()
	if err != nil {
		return err
	}

	var input *types.CreateAlbumInput
	switch {
	case createFile != "":
		input, err = inputFromFile(createFile)
	case createTitle != "" || createArtist != "":
		input, err = inputFromFlags()
	default:
		input, err = inputFromPrompts()
	}
	if err != nil {
		return err
	}

	ui.PrintInfo("Creating album '%s' by %s (%s)...", input.Title, input.Artist, ui.FormatPrice(input.Price))

	album, err := apiClient.CreateAlbum(ctx, *input)
	if err != nil {
		ui.PrintErrorBox("Creation failed", err.Error())
		return fmt.Errorf("creation failed")
	}

	ui.PrintSuccessBox(
		fmt.Sprintf("Album '%s' created", album.Title),
		fmt.Sprintf("id:     %d\nartist: %s\nprice:  %s", album.ID, album.Artist, ui.FormatPrice(album.Price)),
	)
	return nil
}

// inputFromFile loads an album definition from a YAML file
func inputFromFile(path string) (*types.CreateAlbumInput, error) {
	ui.PrintInfo("Loading album from file: %s", path)

	albumFile, err := loader.LoadFromFile(path)
	if err != nil {
		ui.PrintError("failed to load file: %v", err)
		return nil, fmt.Errorf("file load failed")
	}

	input, err := albumFile.ToCreateInput()
	if err != nil {
		ui.PrintError("invalid album definition: %v", err)
		return nil, fmt.Errorf("invalid album definition")
	}

	return input, nil
}

// inputFromFlags validates the non-interactive flag values
func inputFromFlags() (*types.CreateAlbumInput, error) {
	if createTitle == "" || createArtist == "" {
		ui.PrintError("both --title and --artist are required")
		return nil, fmt.Errorf("invalid arguments")
	}
	if createPrice < 0 {
		ui.PrintError("--price must not be negative")
		return nil, fmt.Errorf("invalid arguments")
	}

	return &types.CreateAlbumInput{
		Title:  createTitle,
		Artist: createArtist,
		Price:  createPrice,
	}, nil
}

// inputFromPrompts collects album fields interactively
func inputFromPrompts() (*types.CreateAlbumInput, error) {
	ui.PrintInfo("Creating album (interactive mode)")
	fmt.Println()

	var title, artist string

	titlePrompt := &survey.Input{Message: "Album title:"}
	if err := survey.AskOne(titlePrompt, &title, survey.WithValidator(survey.Required)); err != nil {
		return nil, fmt.Errorf("input cancelled")
	}

	artistPrompt := &survey.Input{Message: "Artist name:"}
	if err := survey.AskOne(artistPrompt, &artist, survey.WithValidator(survey.Required)); err != nil {
		return nil, fmt.Errorf("input cancelled")
	}

	price, err := promptPrice("Price ($):", "")
	if err != nil {
		return nil, err
	}

	return &types.CreateAlbumInput{Title: title, Artist: artist, Price: price}, nil
}

// promptPrice asks for a non-negative decimal price
func promptPrice(message, defaultValue string) (float64, error) {
	prompt := &survey.Input{Message: message, Default: defaultValue}

	var raw string
	validator := func(ans interface{}) error {
		s, ok := ans.(string)
		if !ok {
			return fmt.Errorf("price is required")
		}
		value, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("price must be a number")
		}
		if value < 0 {
			return fmt.Errorf("price must not be negative")
		}
		return nil
	}

	if err := survey.AskOne(prompt, &raw, survey.WithValidator(survey.Required), survey.WithValidator(validator)); err != nil {
		return 0, fmt.Errorf("input cancelled")
	}

	price, _ := strconv.ParseFloat(raw, 64)
	return price, nil
}
