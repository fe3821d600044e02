package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"expertap/internal/domain"
	"expertap/internal/parser"
	"expertap/internal/service"
)

// MockDecisionService is a mock implementation of service.DecisionService.
type MockDecisionService struct {
	mock.Mock
}

func (m *MockDecisionService) Ingest(ctx context.Context, input service.IngestInput) (*domain.Decision, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Decision), args.Error(1)
}

func (m *MockDecisionService) Preview(text, filename string) (*parser.ParsedDecision, error) {
	args := m.Called(text, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parser.ParsedDecision), args.Error(1)
}

func (m *MockDecisionService) Exists(ctx context.Context, filename string) (bool, error) {
	args := m.Called(ctx, filename)
	return args.Bool(0), args.Error(1)
}

func (m *MockDecisionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Decision, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Decision), args.Error(1)
}

func (m *MockDecisionService) ListSections(ctx context.Context, id uuid.UUID) ([]domain.DecisionSection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DecisionSection), args.Error(1)
}

func (m *MockDecisionService) List(ctx context.Context, filter domain.DecisionFilter, offset, limit int) ([]domain.Decision, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Decision), args.Int(1), args.Error(2)
}

func (m *MockDecisionService) Stats(ctx context.Context) (*domain.DecisionStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DecisionStats), args.Error(1)
}

func (m *MockDecisionService) GetOriginalURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockDecisionService) Reparse(ctx context.Context, id uuid.UUID) (*domain.Decision, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Decision), args.Error(1)
}

func (m *MockDecisionService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
