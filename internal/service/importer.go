package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"go.uber.org/zap"

	"expertap/internal/domain"
	"expertap/internal/metrics"
	"expertap/internal/port"
)

// ImporterConfig holds settings for a batch import run.
type ImporterConfig struct {
	BatchSize      int
	Concurrency    int
	Limit          int
	DocTimeout     time.Duration
	UploadOriginal bool
}

// Importer pulls decision files from a DocumentSource and ingests them.
type Importer struct {
	source    port.DocumentSource
	decisions DecisionService
	cfg       ImporterConfig
	log       *zap.Logger
	mu        sync.Mutex
	stats     domain.ImportStats
}

// NewImporter creates a new Importer. Non-positive batch size or concurrency fall back to 1.
func NewImporter(source port.DocumentSource, decisions DecisionService, cfg ImporterConfig, logger *zap.Logger) *Importer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		source:    source,
		decisions: decisions,
		cfg:       cfg,
		log:       logger.Named("importer"),
	}
}

// Run imports every listed document, batch by batch. A failing document is
// counted and recorded but never stops the run. Cancelling ctx stops the run
// after the in-flight batch and returns the partial stats with ctx's error.
func (im *Importer) Run(ctx context.Context) (*domain.ImportStats, error) {
	keys, err := im.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("importer: listing %s: %w", im.source.Name(), err)
	}
	if im.cfg.Limit > 0 && len(keys) > im.cfg.Limit {
		keys = keys[:im.cfg.Limit]
	}

	im.stats = domain.ImportStats{Total: len(keys), Errors: []string{}}
	im.log.Info("import_started",
		zap.String("source", im.source.Name()),
		zap.Int("documents", len(keys)),
		zap.Int("batch_size", im.cfg.BatchSize),
		zap.Int("concurrency", im.cfg.Concurrency),
	)

	sem := make(chan struct{}, im.cfg.Concurrency)
	for start := 0; start < len(keys); start += im.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			im.log.Warn("import_cancelled", zap.Int("processed", start))
			return im.snapshot(), err
		}

		end := min(start+im.cfg.BatchSize, len(keys))
		var wg sync.WaitGroup
		for _, key := range keys[start:end] {
			sem <- struct{}{} // acquire
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { <-sem }() // release
				im.record(key, im.importOne(ctx, key))
			}()
		}
		wg.Wait()

		snap := im.snapshot()
		im.log.Info("import_batch_completed",
			zap.Int("processed", end),
			zap.Int("imported", snap.Imported),
			zap.Int("already_existed", snap.AlreadyExisted),
			zap.Int("failed", snap.Failed),
		)
	}

	stats := im.snapshot()
	im.log.Info("import_completed",
		zap.Int("total_files", stats.Total),
		zap.Int("imported", stats.Imported),
		zap.Int("already_existed", stats.AlreadyExisted),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}

func (im *Importer) importOne(ctx context.Context, key string) error {
	docCtx := ctx
	if im.cfg.DocTimeout > 0 {
		var cancel context.CancelFunc
		docCtx, cancel = context.WithTimeout(ctx, im.cfg.DocTimeout)
		defer cancel()
	}

	filename := path.Base(key)
	exists, err := im.decisions.Exists(docCtx, filename)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDecisionAlreadyExists
	}

	content, err := im.source.Fetch(docCtx, key)
	if err != nil {
		return err
	}
	_, err = im.decisions.Ingest(docCtx, IngestInput{
		Filename:       filename,
		Content:        content,
		UploadOriginal: im.cfg.UploadOriginal,
	})
	return err
}

func (im *Importer) record(key string, err error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	switch {
	case err == nil:
		im.stats.Imported++
		metrics.ImportDocuments.WithLabelValues(string(domain.ImportResultImported)).Inc()
	case errors.Is(err, domain.ErrDecisionAlreadyExists):
		im.stats.AlreadyExisted++
		metrics.ImportDocuments.WithLabelValues(string(domain.ImportResultExisting)).Inc()
	default:
		im.stats.Failed++
		im.stats.Errors = append(im.stats.Errors, fmt.Sprintf("%s: %v", key, err))
		metrics.ImportDocuments.WithLabelValues(string(domain.ImportResultFailed)).Inc()
		im.log.Warn("import_document_failed", zap.String("key", key), zap.Error(err))
	}
}

func (im *Importer) snapshot() *domain.ImportStats {
	im.mu.Lock()
	defer im.mu.Unlock()
	s := im.stats
	s.Errors = append([]string{}, im.stats.Errors...)
	return &s
}
