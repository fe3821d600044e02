// Command cnsc is the operator CLI for the CNSC decision store: parse files
// locally, list criticism codes, run batch imports and re-parses, apply
// migrations and mint API tokens.
package main

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"expertap/internal/config"
	"expertap/internal/logging"
	"expertap/internal/parser"
	"expertap/internal/port"
	"expertap/internal/repository/postgres"
	"expertap/internal/service"
	s3storage "expertap/internal/storage/s3"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cnsc",
		Short: "Operator CLI for CNSC decision metadata",
		Long: `cnsc parses CNSC (Consiliul Național de Soluționare a Contestațiilor) decision
texts into structured metadata and manages the decision store.

Database, storage and import settings come from EXPERTAP_* environment variables.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(
		newParseCmd(),
		newCodesCmd(),
		newImportCmd(),
		newReparseCmd(),
		newMigrateCmd(),
		newTokenCmd(),
	)
	return root
}

// app holds the wiring shared by commands that touch the database.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	db        *sqlx.DB
	storage   port.ObjectStorage
	repo      port.DecisionRepository
	decisions service.DecisionService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	storage, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing S3 client: %w", err)
	}

	repo := postgres.NewDecisionRepo(db)
	decisions := service.NewDecisionService(repo, parser.New(), storage, service.DecisionServiceConfig{
		MaxFileSizeBytes: cfg.S3.MaxFileSizeBytes(),
		LegacyEncoding:   cfg.Import.LegacyEncoding,
		Bucket:           cfg.S3.Bucket,
		Prefix:           cfg.S3.Prefix,
		PresignExpiry:    cfg.S3.PresignExpiry,
	}, logger)

	return &app{cfg: cfg, log: logger, db: db, storage: storage, repo: repo, decisions: decisions}, nil
}

func (a *app) Close() {
	_ = logging.Sync(a.log)
	_ = a.db.Close()
}
