package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"expertap/internal/domain"
	"expertap/internal/service"
	"expertap/mocks"
)

func TestImporter_Run(t *testing.T) {
	source := new(mocks.MockDocumentSource)
	decisions := new(mocks.MockDecisionService)

	keys := []string{
		"bo/BO2024_1_D1_A.txt",
		"bo/BO2024_2_D2_R.txt",
		"bo/BO2024_3_R1_A.txt",
		"bo/BO2024_4_R2_R.txt",
		"bo/BO2024_5_R3_X.txt",
	}
	source.On("Name").Return("mock://bo")
	source.On("List", mock.Anything).Return(keys, nil)

	decisions.On("Exists", mock.Anything, "BO2024_1_D1_A.txt").Return(false, nil)
	decisions.On("Exists", mock.Anything, "BO2024_2_D2_R.txt").Return(true, nil)
	decisions.On("Exists", mock.Anything, "BO2024_3_R1_A.txt").Return(false, nil)
	decisions.On("Exists", mock.Anything, "BO2024_4_R2_R.txt").Return(false, nil)
	decisions.On("Exists", mock.Anything, "BO2024_5_R3_X.txt").Return(false, errors.New("db unavailable"))

	source.On("Fetch", mock.Anything, "bo/BO2024_1_D1_A.txt").Return([]byte("one"), nil)
	source.On("Fetch", mock.Anything, "bo/BO2024_3_R1_A.txt").Return([]byte("three"), nil)
	source.On("Fetch", mock.Anything, "bo/BO2024_4_R2_R.txt").Return(nil, errors.New("read failed"))

	decisions.On("Ingest", mock.Anything, service.IngestInput{Filename: "BO2024_1_D1_A.txt", Content: []byte("one")}).
		Return(&domain.Decision{}, nil)
	decisions.On("Ingest", mock.Anything, service.IngestInput{Filename: "BO2024_3_R1_A.txt", Content: []byte("three")}).
		Return(nil, domain.ErrDecisionAlreadyExists)

	im := service.NewImporter(source, decisions, service.ImporterConfig{
		BatchSize:   2,
		Concurrency: 2,
		DocTimeout:  time.Second,
	}, nil)

	stats, err := im.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Imported)
	assert.Equal(t, 2, stats.AlreadyExisted)
	assert.Equal(t, 2, stats.Failed)
	assert.Len(t, stats.Errors, 2)
	assert.ElementsMatch(t, []string{
		"bo/BO2024_4_R2_R.txt: read failed",
		"bo/BO2024_5_R3_X.txt: db unavailable",
	}, stats.Errors)
	decisions.AssertExpectations(t)
}

func TestImporter_RunLimit(t *testing.T) {
	source := new(mocks.MockDocumentSource)
	decisions := new(mocks.MockDecisionService)

	source.On("Name").Return("mock")
	source.On("List", mock.Anything).Return([]string{"a.txt", "b.txt", "c.txt"}, nil)
	decisions.On("Exists", mock.Anything, mock.Anything).Return(true, nil)

	im := service.NewImporter(source, decisions, service.ImporterConfig{BatchSize: 10, Concurrency: 1, Limit: 2}, nil)
	stats, err := im.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 2, stats.AlreadyExisted)
	decisions.AssertNumberOfCalls(t, "Exists", 2)
}

func TestImporter_ListFails(t *testing.T) {
	source := new(mocks.MockDocumentSource)
	source.On("Name").Return("mock")
	source.On("List", mock.Anything).Return(nil, errors.New("no bucket"))

	im := service.NewImporter(source, new(mocks.MockDecisionService), service.ImporterConfig{}, nil)
	_, err := im.Run(context.Background())
	assert.ErrorContains(t, err, "no bucket")
}

func TestImporter_Cancelled(t *testing.T) {
	source := new(mocks.MockDocumentSource)
	decisions := new(mocks.MockDecisionService)
	source.On("Name").Return("mock")
	source.On("List", mock.Anything).Return([]string{"a.txt", "b.txt"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	im := service.NewImporter(source, decisions, service.ImporterConfig{BatchSize: 1, Concurrency: 1}, nil)
	stats, err := im.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.Total)
	assert.Zero(t, stats.Imported)
	decisions.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}
