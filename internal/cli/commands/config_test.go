package commands

import (
	"testing"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/config"
)

func TestConfigSetServerPersists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ALBUM_API_URL", "")

	if err := runConfigSetServer(configSetServerCmd, []string{"http://albums.internal:9090"}); err != nil {
		t.Fatalf("set-server error = %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server != "http://albums.internal:9090" {
		t.Errorf("Server = %q, want the saved origin", cfg.Server)
	}
}

func TestConfigSetServerRejectsInvalidOrigin(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ALBUM_API_URL", "")

	if err := runConfigSetServer(configSetServerCmd, []string{""}); err == nil {
		t.Error("expected error for empty origin")
	}

	// Nothing may be persisted on a rejected origin
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server != config.DefaultServer {
		t.Errorf("Server = %q, want untouched default", cfg.Server)
	}
}
