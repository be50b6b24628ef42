// Package cmd implements the labtutor command-line interface.
//
// Commands:
//   - serve: start the HTTP API server
//   - ingest: index documents into the knowledge base from the command line
//   - stats: show knowledge-base statistics
//   - version: show version information
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/labtutor/labtutor/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "labtutor",
	Short: "LabTutor - progressive-disclosure hint engine for hands-on labs",
	Long: `LabTutor answers learner questions with hints at escalating levels of
disclosure, grounded in a private knowledge base of course material.

Level 1 names the concept, level 2 the tool or area, level 3 concrete
syntax, and level 4 the full solution. Answers only ever draw on
material trainers have uploaded.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initLogger builds the process logger.
// DEBUG (any value) enables debug level; LABTUTOR_LOG_JSON enables JSON output.
func initLogger() log.Logger {
	cfg := log.Config{Level: slog.LevelInfo}
	if os.Getenv("DEBUG") != "" {
		cfg.Level = slog.LevelDebug
	}
	if os.Getenv("LABTUTOR_LOG_JSON") != "" {
		cfg.JSON = true
	}
	return log.New(cfg)
}
