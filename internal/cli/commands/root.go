package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/client"
	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/config"
	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/ui"
)

const version = "0.1.0"

// serverFlag overrides the configured API server origin for a single
// invocation.
var serverFlag string

// rootCmd is the root command. It is pure navigation: no state, no network
// calls.
var rootCmd = &cobra.Command{
	Use:     "albumctl",
	Short:   "Album catalog manager",
	Version: version,
	Long: `A command-line tool for managing an album catalog through its API server.
Browse, create, update and delete albums, or manage the catalog in natural
language through the AI chat assistant.`,
	Example: `  # List all albums
  $ albumctl list

  # Show one album
  $ albumctl get 3

  # Create an album
  $ albumctl create --title "The Wall" --artist "Pink Floyd" --price 24.99

  # Open the interactive album editor
  $ albumctl manage

  # Start interactive chat
  $ albumctl chat

  # Get help on a specific command
  $ albumctl list --help`,
}

// Execute executes the root command
func Execute() error {
	rootCmd.SetVersionTemplate(formatVersion())
	return rootCmd.Execute()
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "API server origin (overrides config and ALBUM_API_URL)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(manageCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)

	// Set custom template with bold uppercase headers
	rootCmd.SetUsageTemplate(usageTemplate())
	rootCmd.SetHelpTemplate(usageTemplate())
}

// newAPIClient resolves the server origin and builds the API client shared by
// every subcommand.
func newAPIClient() (*client.APIClient, error) {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return nil, fmt.Errorf("config load failed")
	}

	server := cfg.Server
	if serverFlag != "" {
		server = serverFlag
	}

	apiClient, err := client.NewAPIClient(server)
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return nil, fmt.Errorf("client creation failed")
	}

	return apiClient, nil
}

func usageTemplate() string {
	return `{{if .Long}}{{.Long}}

{{end}}` + ui.Styles.Bold.Render("USAGE") + `
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}

{{if .HasExample}}` + ui.Styles.Bold.Render("EXAMPLES") + `
{{.Example}}

{{end}}{{if .HasAvailableSubCommands}}` + ui.Styles.Bold.Render("COMMANDS") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableLocalFlags}}` + ui.Styles.Bold.Render("OPTIONS") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
}

// formatVersion formats the version output
func formatVersion() string {
	return fmt.Sprintf("albumctl version %s\n", version)
}
