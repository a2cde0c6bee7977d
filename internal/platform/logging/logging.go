package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds the process logger: human-readable text in dev, JSON in release.
// It also becomes the slog default so packages can log without a handle.
func New(mode string) *slog.Logger {
	return newWithWriter(mode, os.Stdout)
}

func newWithWriter(mode string, w io.Writer) *slog.Logger {
	var h slog.Handler
	if mode == "release" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	l := slog.New(h).With("app", "library-backend")
	slog.SetDefault(l)
	return l
}
