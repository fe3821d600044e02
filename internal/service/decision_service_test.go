package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"expertap/internal/domain"
	"expertap/internal/parser"
	"expertap/internal/port"
	"expertap/internal/service"
	"expertap/mocks"
)

const sampleFilename = "BO2025_3855_R2_CPV_55520000-1_A.txt"

const sampleDecision = `Decizia Nr. 3855/C8/4446
din 10 decembrie 2025

Contestator: ALFA SERV S.R.L.
Autoritate contractantă: Spitalul Județean Bacău

CONSILIUL DECIDE:

Admite, în parte, contestația formulată de ALFA SERV S.R.L.
`

func testServiceConfig() service.DecisionServiceConfig {
	return service.DecisionServiceConfig{
		MaxFileSizeBytes: 1024,
		LegacyEncoding:   "latin-1",
		Bucket:           "bucket",
		Prefix:           "originals",
		PresignExpiry:    60,
	}
}

func setupDecisionService(storage port.ObjectStorage) (service.DecisionService, *mocks.MockDecisionRepo) {
	repo := new(mocks.MockDecisionRepo)
	svc := service.NewDecisionService(repo, parser.New(), storage, testServiceConfig(), nil)
	return svc, repo
}

func TestDecisionService_Ingest(t *testing.T) {
	svc, repo := setupDecisionService(nil)

	var stored *domain.Decision
	var storedSections []domain.DecisionSection
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Decision"), mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Decision)
			storedSections = args.Get(2).([]domain.DecisionSection)
		}).Return(nil)

	result, err := svc.Ingest(context.Background(), service.IngestInput{
		Filename: "incoming/" + sampleFilename,
		Content:  []byte(sampleDecision),
	})
	require.NoError(t, err)
	require.Same(t, stored, result)

	assert.NotEqual(t, uuid.Nil, result.ID)
	assert.Equal(t, sampleFilename, result.Filename)
	assert.Equal(t, "BO2025_3855", result.ExternalID)
	assert.Equal(t, "BO2025 - Nr. 3855 - [R2] - [PARTIALLY_ADMITTED]", result.Title)
	assert.Equal(t, "PARTIALLY_ADMITTED", result.Ruling)
	assert.Equal(t, "result", result.ContestType)
	assert.Equal(t, []string{"R2"}, []string(result.CriticismCodes))
	assert.Equal(t, "55520000-1", result.CPVCode)
	assert.Equal(t, "from_filename", result.CPVSource)
	require.NotNil(t, result.DecisionNumber)
	assert.Equal(t, 4446, *result.DecisionNumber)
	assert.Equal(t, "C8", result.Panel)
	assert.Equal(t, "ALFA SERV S.R.L.", result.Contestant)
	assert.NotNil(t, result.Intervenors)
	assert.JSONEq(t, `[]`, string(result.ArticleRefs))
	assert.Len(t, result.ContentHash, 64)
	assert.Empty(t, result.StorageKey)
	assert.Equal(t, sampleDecision, result.FullText)

	require.Len(t, storedSections, 1)
	assert.Equal(t, "dispositive", storedSections[0].Kind)
	assert.Equal(t, result.ID, storedSections[0].DecisionID)
	repo.AssertExpectations(t)
}

func TestDecisionService_Ingest_LegacyEncoding(t *testing.T) {
	svc, repo := setupDecisionService(nil)
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	// ţ has no latin-1 form, so the body spells contestatia with a plain t
	content := []byte("DECIDE:\nRespinge contestatia \xeen totalitate.\n")
	result, err := svc.Ingest(context.Background(), service.IngestInput{
		Filename: "BO2024_10_D1_R.txt",
		Content:  content,
	})
	require.NoError(t, err)
	assert.Contains(t, result.FullText, "în totalitate")
	assert.Equal(t, "REJECTED", result.Ruling)
}

func TestDecisionService_Ingest_Rejections(t *testing.T) {
	svc, repo := setupDecisionService(nil)

	tests := []struct {
		name    string
		input   service.IngestInput
		wantErr error
	}{
		{"wrong extension", service.IngestInput{Filename: "decision.pdf", Content: []byte("x")}, domain.ErrUnsupportedFileType},
		{"too large", service.IngestInput{Filename: sampleFilename, Content: make([]byte, 2048)}, domain.ErrFileTooLarge},
		{"blank text", service.IngestInput{Filename: sampleFilename, Content: []byte("  \n\t ")}, domain.ErrEmptyDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Ingest(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestDecisionService_Ingest_UploadsOriginal(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc, repo := setupDecisionService(storage)

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "bucket" && in.Key == "originals/"+sampleFilename &&
			in.ContentType == domain.ContentTypeText && in.Size == int64(len(sampleDecision))
	})).Return(&port.UploadOutput{Location: "s3://bucket/originals/" + sampleFilename}, nil)
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Ingest(context.Background(), service.IngestInput{
		Filename:       sampleFilename,
		Content:        []byte(sampleDecision),
		UploadOriginal: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "originals/"+sampleFilename, result.StorageKey)
	storage.AssertExpectations(t)
}

func TestDecisionService_Ingest_CreateFailsRemovesUpload(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc, repo := setupDecisionService(storage)

	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	storage.On("Delete", mock.Anything, "bucket", "originals/"+sampleFilename).Return(nil)
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := svc.Ingest(context.Background(), service.IngestInput{
		Filename:       sampleFilename,
		Content:        []byte(sampleDecision),
		UploadOriginal: true,
	})
	assert.ErrorContains(t, err, "db down")
	storage.AssertExpectations(t)
}

func TestDecisionService_Ingest_UploadFails(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc, repo := setupDecisionService(storage)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := svc.Ingest(context.Background(), service.IngestInput{
		Filename:       sampleFilename,
		Content:        []byte(sampleDecision),
		UploadOriginal: true,
	})
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestDecisionService_Ingest_Duplicate(t *testing.T) {
	svc, repo := setupDecisionService(nil)
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrDecisionAlreadyExists)

	_, err := svc.Ingest(context.Background(), service.IngestInput{Filename: sampleFilename, Content: []byte(sampleDecision)})
	assert.ErrorIs(t, err, domain.ErrDecisionAlreadyExists)
}

func TestDecisionService_Preview(t *testing.T) {
	svc, repo := setupDecisionService(nil)

	parsed, err := svc.Preview(sampleDecision, sampleFilename)
	require.NoError(t, err)
	assert.Equal(t, parser.RulingPartiallyAdmitted, parsed.Ruling)

	_, err = svc.Preview("   ", "")
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestDecisionService_ParserError(t *testing.T) {
	repo := new(mocks.MockDecisionRepo)
	p := new(mocks.MockDecisionParser)
	p.On("Parse", "text", "f.txt").Return(nil, errors.New("boom"))
	svc := service.NewDecisionService(repo, p, nil, testServiceConfig(), nil)

	_, err := svc.Preview("text", "f.txt")
	assert.ErrorContains(t, err, "boom")
}

func TestDecisionService_ListSections(t *testing.T) {
	svc, repo := setupDecisionService(nil)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(&domain.Decision{ID: id}, nil)
	repo.On("ListSections", mock.Anything, id).Return(nil, nil)

	sections, err := svc.ListSections(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, sections)
	assert.Empty(t, sections)

	missing := uuid.New()
	repo.On("GetByID", mock.Anything, missing).Return(nil, domain.ErrDecisionNotFound)
	_, err = svc.ListSections(context.Background(), missing)
	assert.ErrorIs(t, err, domain.ErrDecisionNotFound)
}

func TestDecisionService_List_ValidatesFilter(t *testing.T) {
	svc, repo := setupDecisionService(nil)

	invalid := []domain.DecisionFilter{
		{CriticismCode: "Z9"},
		{Ruling: "MAYBE"},
		{ContestType: "other"},
		{Year: -1},
		{Article: "art. 210"},
		{Article: "210; DROP"},
	}
	for _, f := range invalid {
		_, _, err := svc.List(context.Background(), f, 0, 20)
		assert.ErrorIs(t, err, domain.ErrInvalidFilter, "%+v", f)
	}

	valid := domain.DecisionFilter{CriticismCode: "r2", Ruling: "REJECTED", ContestType: "result", Year: 2024, Article: "210"}
	repo.On("List", mock.Anything, valid, 0, 20).Return([]domain.Decision{{Filename: "a.txt"}}, 1, nil)
	decisions, total, err := svc.List(context.Background(), valid, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, decisions, 1)
}

func TestDecisionService_Reparse(t *testing.T) {
	svc, repo := setupDecisionService(nil)
	id := uuid.New()
	existing := &domain.Decision{
		ID:         id,
		Filename:   sampleFilename,
		FullText:   sampleDecision,
		Ruling:     "",
		StorageKey: "originals/" + sampleFilename,
	}
	repo.On("GetByID", mock.Anything, id).Return(existing, nil)
	repo.On("Replace", mock.Anything, existing, mock.MatchedBy(func(s []domain.DecisionSection) bool {
		return len(s) == 1 && s[0].DecisionID == id
	})).Return(nil)

	result, err := svc.Reparse(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, result.ID)
	assert.Equal(t, "PARTIALLY_ADMITTED", result.Ruling)
	assert.Equal(t, "originals/"+sampleFilename, result.StorageKey)
	repo.AssertExpectations(t)
}

func TestDecisionService_Delete(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc, repo := setupDecisionService(storage)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(&domain.Decision{ID: id, StorageKey: "originals/a.txt"}, nil)
	repo.On("Delete", mock.Anything, id).Return(nil)
	storage.On("Delete", mock.Anything, "bucket", "originals/a.txt").Return(errors.New("gone"))

	require.NoError(t, svc.Delete(context.Background(), id))
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestDecisionService_GetOriginalURL(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc, repo := setupDecisionService(storage)
	withKey, withoutKey := uuid.New(), uuid.New()

	repo.On("GetByID", mock.Anything, withKey).Return(&domain.Decision{ID: withKey, StorageKey: "originals/a.txt"}, nil)
	repo.On("GetByID", mock.Anything, withoutKey).Return(&domain.Decision{ID: withoutKey}, nil)
	storage.On("GetPresignedURL", mock.Anything, "bucket", "originals/a.txt", int64(60)).Return("https://signed", nil)

	url, err := svc.GetOriginalURL(context.Background(), withKey)
	require.NoError(t, err)
	assert.Equal(t, "https://signed", url)

	_, err = svc.GetOriginalURL(context.Background(), withoutKey)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
