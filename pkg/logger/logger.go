// Package logger provides the CLI's debug logger. Terminal output belongs to
// the ui package; this logger exists for request-level tracing and stays
// silent unless ALBUMCTL_DEBUG is set, writing to a file so it never
// interleaves with TUI rendering.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const debugEnvVar = "ALBUMCTL_DEBUG"

// New returns the debug logger. With ALBUMCTL_DEBUG unset (or the log file
// unwritable) every record is discarded.
func New() *slog.Logger {
	if os.Getenv(debugEnvVar) == "" {
		return discard()
	}

	writer, err := openLogFile()
	if err != nil {
		return discard()
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(os.Getenv(debugEnvVar)),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "time",
					Value: slog.StringValue(a.Value.Time().Format("2006-01-02T15:04:05.000Z07:00")),
				}
			}
			return a
		},
	}

	return slog.New(slog.NewTextHandler(writer, opts))
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// openLogFile opens ~/.albumctl/albumctl.log for appending.
func openLogFile() (io.Writer, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(home, ".albumctl")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return os.OpenFile(filepath.Join(dir, "albumctl.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// parseLevel maps the env value to a level; anything unrecognized means debug,
// so ALBUMCTL_DEBUG=1 works.
func parseLevel(value string) slog.Level {
	switch strings.ToLower(value) {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
