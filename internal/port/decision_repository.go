package port

import (
	"context"

	"github.com/google/uuid"

	"expertap/internal/domain"
)

// DecisionRepository defines the contract for decision persistence.
type DecisionRepository interface {
	// Create stores the decision and its sections in one transaction.
	Create(ctx context.Context, decision *domain.Decision, sections []domain.DecisionSection) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Decision, error)
	GetByFilename(ctx context.Context, filename string) (*domain.Decision, error)
	ExistsByFilename(ctx context.Context, filename string) (bool, error)
	ListSections(ctx context.Context, decisionID uuid.UUID) ([]domain.DecisionSection, error)
	List(ctx context.Context, filter domain.DecisionFilter, offset, limit int) ([]domain.Decision, int, error)
	ListIDs(ctx context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error)
	// Replace overwrites the parsed metadata and rewrites the sections.
	Replace(ctx context.Context, decision *domain.Decision, sections []domain.DecisionSection) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*domain.DecisionStats, error)
}
