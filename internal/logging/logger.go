package logging

import (
	"log/slog"
	"os"
)

// Setup points the default slog logger at stdout as JSON. Once the database
// is up, main swaps in a tee that also persists error records.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}
