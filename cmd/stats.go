package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labtutor/labtutor/internal/app"
	"github.com/labtutor/labtutor/internal/config"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge-base statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := initLogger()

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	count, err := a.Knowledge.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting passages: %w", err)
	}

	fmt.Printf("Passages: %d\n", count)
	return nil
}
