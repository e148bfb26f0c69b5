package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/client"
	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/config"
	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/ui"
)

// configCmd groups the configuration subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "view or change CLI configuration",
	Long: `View or change the CLI configuration stored in ~/.albumctl/config.json.

The server origin is resolved with the following precedence:
--server flag > ALBUM_API_URL > config file > default.`,
	Example: `  # Show the resolved configuration
  $ albumctl config view

  # Persist a different API server origin
  $ albumctl config set-server http://api.example.com:8080`,
}

// configViewCmd is the config view command
var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "show the resolved configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigView,
}

// configSetServerCmd is the config set-server command
var configSetServerCmd = &cobra.Command{
	Use:   "set-server <origin>",
	Short: "persist the API server origin",
	Example: `  # Point albumctl at a different backend
  $ albumctl config set-server http://api.example.com:8080`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetServer,
}

func init() {
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configSetServerCmd)

	configCmd.SilenceUsage = true
	configViewCmd.SilenceUsage = true
	configSetServerCmd.SilenceUsage = true
}

func runConfigView(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	path, err := config.GetConfigPath()
	if err != nil {
		ui.PrintError("failed to resolve config path: %v", err)
		return fmt.Errorf("config load failed")
	}

	fmt.Printf("server: %s\n", cfg.Server)
	fmt.Printf("file:   %s\n", path)
	return nil
}

func runConfigSetServer(cmd *cobra.Command, args []string) error {
	origin := args[0]

	// Reject origins the client would refuse later
	if _, err := client.NewAPIClient(origin); err != nil {
		ui.PrintError("invalid server origin: %v", err)
		return fmt.Errorf("invalid arguments")
	}

	cfg := &config.Config{Server: origin}
	if err := cfg.Save(); err != nil {
		ui.PrintError("failed to save config: %v", err)
		return fmt.Errorf("config save failed")
	}

	ui.PrintSuccess("Server origin saved: %s", origin)
	return nil
}
