package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/labtutor/labtutor/internal/app"
	"github.com/labtutor/labtutor/internal/config"
	"github.com/labtutor/labtutor/internal/extract"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Index documents into the knowledge base",
	Long: `Ingest reads the given files, extracts their text, splits it into
passages, and indexes the passages into the knowledge base.

Supported file types: .pdf, .sql, .md, .txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIngest(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

// runIngest ingests each file in turn. The first failure aborts the run so
// a bad file is noticed rather than silently skipped.
func runIngest(ctx context.Context, paths []string) error {
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

	for _, path := range paths {
		name := filepath.Base(path)

		fileType, err := extract.TypeFromFilename(name)
		if err != nil {
			return err
		}
		extractor, err := extract.ForType(fileType)
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(path) // #nosec G304 -- path is an operator-supplied CLI argument
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		text, err := extractor.Extract(raw)
		if err != nil {
			return fmt.Errorf("extracting %s: %w", path, err)
		}

		chunks, err := a.IngestService.Ingest(ctx, name, fileType, text, "cli")
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}

		fmt.Printf("%s: %d passages indexed\n", name, chunks)
	}

	return nil
}
