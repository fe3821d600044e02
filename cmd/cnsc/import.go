package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"expertap/internal/config"
	"expertap/internal/domain"
	"expertap/internal/port"
	"expertap/internal/service"
	"expertap/internal/storage/local"
	s3storage "expertap/internal/storage/s3"
)

type importFlags struct {
	source         string
	dir            string
	prefix         string
	limit          int
	batchSize      int
	concurrency    int
	uploadOriginal bool
}

func newImportCmd() *cobra.Command {
	var f importFlags

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import decision files from S3 or a local directory",
		Long: `Parse and store every .txt decision under the configured source.
Files whose name is already stored are counted as existing and skipped.
Flags override the EXPERTAP_IMPORT_* settings.

Examples:
  cnsc import --source dir --dir ./data/decisions --limit 100
  cnsc import --source s3 --prefix decisions/2025/ --concurrency 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			applyImportFlags(cmd, &a.cfg.Import, f)
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			src := newSource(a.cfg, a.storage)
			im := service.NewImporter(src, a.decisions, service.ImporterConfig{
				BatchSize:      a.cfg.Import.BatchSize,
				Concurrency:    a.cfg.Import.Concurrency,
				Limit:          a.cfg.Import.Limit,
				DocTimeout:     a.cfg.Import.DocTimeout,
				UploadOriginal: a.cfg.Import.UploadOriginal,
			}, a.log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			stats, runErr := im.Run(ctx)
			if stats != nil {
				if err := writeImportStats(cmd.OutOrStdout(), stats); err != nil {
					return err
				}
			}
			if runErr != nil {
				a.log.Error("import_aborted", zap.String("source", src.Name()), zap.Error(runErr))
				return runErr
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&f.source, "source", "", "document source: s3 or dir")
	cmd.Flags().StringVar(&f.dir, "dir", "", "directory to read when --source=dir")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "key prefix to list when --source=s3")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "stop after this many files (0 = all)")
	cmd.Flags().IntVar(&f.batchSize, "batch-size", 0, "files per batch")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "files parsed in parallel within a batch")
	cmd.Flags().BoolVar(&f.uploadOriginal, "upload-original", false, "copy each original into the decisions bucket")
	return cmd
}

// applyImportFlags copies the flags the user set over the loaded settings.
func applyImportFlags(cmd *cobra.Command, cfg *config.ImportConfig, f importFlags) {
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = strings.ToLower(f.source)
	}
	if flags.Changed("dir") {
		cfg.Dir = f.dir
	}
	if flags.Changed("prefix") {
		cfg.Prefix = f.prefix
	}
	if flags.Changed("limit") {
		cfg.Limit = f.limit
	}
	if flags.Changed("batch-size") {
		cfg.BatchSize = f.batchSize
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if flags.Changed("upload-original") {
		cfg.UploadOriginal = f.uploadOriginal
	}
}

func newSource(cfg *config.Config, storage port.ObjectStorage) port.DocumentSource {
	if cfg.Import.Source == "dir" {
		return local.NewSource(cfg.Import.Dir)
	}
	prefix := cfg.Import.Prefix
	if prefix == "" {
		prefix = cfg.S3.Prefix
	}
	return s3storage.NewSource(storage, cfg.S3.Bucket, prefix)
}

func writeImportStats(w io.Writer, stats *domain.ImportStats) error {
	if stats.Errors == nil {
		stats.Errors = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(stats); err != nil {
		return fmt.Errorf("writing import stats: %w", err)
	}
	return nil
}

