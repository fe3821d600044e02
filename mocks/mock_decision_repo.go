package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"expertap/internal/domain"
)

// MockDecisionRepo is a mock implementation of port.DecisionRepository.
type MockDecisionRepo struct {
	mock.Mock
}

func (m *MockDecisionRepo) Create(ctx context.Context, decision *domain.Decision, sections []domain.DecisionSection) error {
	args := m.Called(ctx, decision, sections)
	return args.Error(0)
}

func (m *MockDecisionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Decision, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Decision), args.Error(1)
}

func (m *MockDecisionRepo) GetByFilename(ctx context.Context, filename string) (*domain.Decision, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Decision), args.Error(1)
}

func (m *MockDecisionRepo) ExistsByFilename(ctx context.Context, filename string) (bool, error) {
	args := m.Called(ctx, filename)
	return args.Bool(0), args.Error(1)
}

func (m *MockDecisionRepo) ListSections(ctx context.Context, decisionID uuid.UUID) ([]domain.DecisionSection, error) {
	args := m.Called(ctx, decisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DecisionSection), args.Error(1)
}

func (m *MockDecisionRepo) List(ctx context.Context, filter domain.DecisionFilter, offset, limit int) ([]domain.Decision, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Decision), args.Int(1), args.Error(2)
}

func (m *MockDecisionRepo) ListIDs(ctx context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockDecisionRepo) Replace(ctx context.Context, decision *domain.Decision, sections []domain.DecisionSection) error {
	args := m.Called(ctx, decision, sections)
	return args.Error(0)
}

func (m *MockDecisionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDecisionRepo) Stats(ctx context.Context) (*domain.DecisionStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DecisionStats), args.Error(1)
}
