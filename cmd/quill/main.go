// Package main is the quill entry point.
package main

import (
	"log/slog"
	"os"

	"github.com/quillsql/quill/internal/cli"
)

func main() {
	level := slog.LevelWarn
	if os.Getenv("QUILL_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
