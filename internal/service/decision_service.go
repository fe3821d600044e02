package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"expertap/internal/domain"
	"expertap/internal/metrics"
	"expertap/internal/parser"
	"expertap/internal/port"
	"expertap/internal/textenc"
)

var articleNumber = regexp.MustCompile(`^\d{1,6}$`)

// IngestInput is the DTO for storing one decision file.
type IngestInput struct {
	Filename       string
	Content        []byte
	UploadOriginal bool
}

// DecisionServiceConfig holds the limits and storage settings used on ingest.
type DecisionServiceConfig struct {
	MaxFileSizeBytes int64
	LegacyEncoding   string
	Bucket           string
	Prefix           string
	PresignExpiry    int64
}

// DecisionService defines the decision management contract.
type DecisionService interface {
	Ingest(ctx context.Context, input IngestInput) (*domain.Decision, error)
	Preview(text, filename string) (*parser.ParsedDecision, error)
	Exists(ctx context.Context, filename string) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Decision, error)
	ListSections(ctx context.Context, id uuid.UUID) ([]domain.DecisionSection, error)
	List(ctx context.Context, filter domain.DecisionFilter, offset, limit int) ([]domain.Decision, int, error)
	Stats(ctx context.Context) (*domain.DecisionStats, error)
	GetOriginalURL(ctx context.Context, id uuid.UUID) (string, error)
	Reparse(ctx context.Context, id uuid.UUID) (*domain.Decision, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type decisionService struct {
	repo    port.DecisionRepository
	parser  port.DecisionParser
	storage port.ObjectStorage
	cfg     DecisionServiceConfig
	log     *zap.Logger
}

// NewDecisionService creates a new DecisionService implementation. storage may be
// nil, in which case originals are never uploaded.
func NewDecisionService(
	repo port.DecisionRepository,
	decisionParser port.DecisionParser,
	storage port.ObjectStorage,
	cfg DecisionServiceConfig,
	logger *zap.Logger,
) DecisionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &decisionService{
		repo:    repo,
		parser:  decisionParser,
		storage: storage,
		cfg:     cfg,
		log:     logger.Named("decisions"),
	}
}

func (s *decisionService) Ingest(ctx context.Context, input IngestInput) (*domain.Decision, error) {
	filename := filepath.Base(strings.TrimSpace(input.Filename))
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if s.cfg.MaxFileSizeBytes > 0 && int64(len(input.Content)) > s.cfg.MaxFileSizeBytes {
		return nil, domain.ErrFileTooLarge
	}

	text, err := textenc.Decode(input.Content, s.cfg.LegacyEncoding)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filename, err)
	}

	parsed, err := s.parse(text, filename)
	if err != nil {
		return nil, err
	}

	decision, sections, err := newDecisionRecord(parsed)
	if err != nil {
		return nil, err
	}

	if input.UploadOriginal && s.storage != nil {
		key := path.Join(s.cfg.Prefix, filename)
		_, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.cfg.Bucket,
			Key:         key,
			Body:        bytes.NewReader(input.Content),
			ContentType: domain.ContentTypeText,
			Size:        int64(len(input.Content)),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}
		decision.StorageKey = key
	}

	if err := s.repo.Create(ctx, decision, sections); err != nil {
		if decision.StorageKey != "" && !errors.Is(err, domain.ErrDecisionAlreadyExists) {
			s.removeOriginal(ctx, decision.StorageKey)
		}
		return nil, err
	}

	s.log.Info("decision_parsed",
		zap.String("decision_id", decision.ID.String()),
		zap.String("filename", decision.Filename),
		zap.String("external_id", decision.ExternalID),
		zap.String("ruling", decision.Ruling),
		zap.Strings("criticism_codes", decision.CriticismCodes),
		zap.Int("sections", len(sections)),
		zap.Int("warnings", len(decision.ParseWarnings)),
	)
	return decision, nil
}

func (s *decisionService) Preview(text, filename string) (*parser.ParsedDecision, error) {
	return s.parse(text, filename)
}

func (s *decisionService) parse(text, filename string) (*parser.ParsedDecision, error) {
	start := time.Now()
	parsed, err := s.parser.Parse(text, filename)
	if err != nil {
		if errors.Is(err, parser.ErrEmptyText) {
			return nil, domain.ErrEmptyDocument
		}
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	metrics.ObserveParse(string(parsed.Ruling), len(parsed.Warnings), time.Since(start))
	return parsed, nil
}

func (s *decisionService) Exists(ctx context.Context, filename string) (bool, error) {
	return s.repo.ExistsByFilename(ctx, filepath.Base(filename))
}

func (s *decisionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Decision, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *decisionService) ListSections(ctx context.Context, id uuid.UUID) ([]domain.DecisionSection, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	sections, err := s.repo.ListSections(ctx, id)
	if err != nil {
		return nil, err
	}
	if sections == nil {
		sections = []domain.DecisionSection{}
	}
	return sections, nil
}

func (s *decisionService) List(ctx context.Context, filter domain.DecisionFilter, offset, limit int) ([]domain.Decision, int, error) {
	if filter.CriticismCode != "" && !parser.IsCriticismCode(strings.ToUpper(filter.CriticismCode)) {
		return nil, 0, fmt.Errorf("%w: unknown criticism code %q", domain.ErrInvalidFilter, filter.CriticismCode)
	}
	if filter.Ruling != "" {
		switch parser.TextRuling(filter.Ruling) {
		case parser.RulingAdmitted, parser.RulingPartiallyAdmitted, parser.RulingRejected, parser.RulingUnknown:
		default:
			return nil, 0, fmt.Errorf("%w: unknown ruling %q", domain.ErrInvalidFilter, filter.Ruling)
		}
	}
	if filter.ContestType != "" {
		switch parser.ContestType(filter.ContestType) {
		case parser.ContestDocumentation, parser.ContestResult:
		default:
			return nil, 0, fmt.Errorf("%w: unknown contest type %q", domain.ErrInvalidFilter, filter.ContestType)
		}
	}
	if filter.Year < 0 {
		return nil, 0, fmt.Errorf("%w: year must not be negative", domain.ErrInvalidFilter)
	}
	if filter.Article != "" && !articleNumber.MatchString(filter.Article) {
		return nil, 0, fmt.Errorf("%w: article must be a number, got %q", domain.ErrInvalidFilter, filter.Article)
	}
	return s.repo.List(ctx, filter, offset, limit)
}

func (s *decisionService) Stats(ctx context.Context) (*domain.DecisionStats, error) {
	return s.repo.Stats(ctx)
}

// GetOriginalURL returns a presigned download link for the uploaded original.
func (s *decisionService) GetOriginalURL(ctx context.Context, id uuid.UUID) (string, error) {
	decision, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if decision.StorageKey == "" || s.storage == nil {
		return "", domain.ErrNotFound
	}
	return s.storage.GetPresignedURL(ctx, s.cfg.Bucket, decision.StorageKey, s.cfg.PresignExpiry)
}

// Reparse runs the parser again over the stored text and rewrites the metadata and sections.
func (s *decisionService) Reparse(ctx context.Context, id uuid.UUID) (*domain.Decision, error) {
	decision, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	parsed, err := s.parse(decision.FullText, decision.Filename)
	if err != nil {
		return nil, err
	}
	if err := applyParsed(decision, parsed); err != nil {
		return nil, err
	}
	sections := sectionRecords(decision.ID, parsed.Sections)
	if err := s.repo.Replace(ctx, decision, sections); err != nil {
		return nil, err
	}

	s.log.Debug("decision_reparsed",
		zap.String("decision_id", decision.ID.String()),
		zap.String("ruling", decision.Ruling),
		zap.Int("warnings", len(decision.ParseWarnings)),
	)
	return decision, nil
}

func (s *decisionService) Delete(ctx context.Context, id uuid.UUID) error {
	decision, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if decision.StorageKey != "" {
		s.removeOriginal(ctx, decision.StorageKey)
	}
	s.log.Info("decision_deleted", zap.String("decision_id", id.String()), zap.String("filename", decision.Filename))
	return nil
}

func (s *decisionService) removeOriginal(ctx context.Context, key string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Delete(ctx, s.cfg.Bucket, key); err != nil {
		s.log.Warn("original_delete_failed", zap.String("key", key), zap.Error(err))
	}
}
