// Package common holds helpers shared by the CLI action packages.
package common

import (
	"log/slog"
	"os"
)

// NewLogger builds the JSON logger actions write to stderr, keeping stdout
// for command output. quiet raises the level so only errors surface.
func NewLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
