package app

import (
	"log/slog"
	"os"
)

// NewLogger returns a slog.Logger per LOG_FORMAT: "json" for
// structured production output, anything else (the "pretty" default)
// a text handler for local development. Every record carries the
// service name so aggregated logs stay attributable.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}
	var h slog.Handler
	if cfg != nil && cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h).With(slog.String("service", "siteline"))
}
