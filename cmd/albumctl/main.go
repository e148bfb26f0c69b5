package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/commands"
	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/ui"
)

func main() {
	// A local .env may carry ALBUM_API_URL; absence is fine
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		// Handle unknown command errors specially
		errMsg := err.Error()
		if strings.Contains(errMsg, "unknown command") {
			ui.PrintError("%s", errMsg)
			fmt.Println("\nRun 'albumctl --help' for usage.")
		}
		os.Exit(1)
	}
}
