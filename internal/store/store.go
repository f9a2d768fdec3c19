package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/teia-community/teia-analytics/internal/store/schema"
)

// CreateRunInput represents the input for creating an analysis run
type CreateRunInput struct {
	Program schema.RunProgram
	Poll    string
	Config  datatypes.JSON
	Summary datatypes.JSON
}

// UserFilter selects the user rows of a run
type UserFilter struct {
	// Type restricts the rows to one user type, empty means every type
	Type string
	// Restricted keeps only the rows with this restricted flag, nil means both
	Restricted *bool
	Limit      int
	Offset     int
}

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore

// Store defines the interface for database operations
type Store interface {
	// CreateRun stores a new analysis run and returns it with its generated id
	CreateRun(ctx context.Context, input CreateRunInput) (*schema.AnalysisRun, error)
	// SaveUsers upserts the user rows of a run and updates the run user count
	SaveUsers(ctx context.Context, runID uuid.UUID, users []schema.User) error
	// SaveAllocations upserts the allocations of a distribution run
	SaveAllocations(ctx context.Context, runID uuid.UUID, allocations []schema.Allocation) error
	// GetLatestRun retrieves the most recent run of a program, or of any program when program is empty
	GetLatestRun(ctx context.Context, program schema.RunProgram) (*schema.AnalysisRun, error)
	// GetUser retrieves the user row of an address in a run
	GetUser(ctx context.Context, runID uuid.UUID, address string) (*schema.User, error)
	// ListUsersByType retrieves the user rows of a run ordered by profile id, with the total count
	ListUsersByType(ctx context.Context, runID uuid.UUID, filter UserFilter) ([]schema.User, uint64, error)
	// ListAllocations retrieves the allocations of a run ordered by total amount, with the total count
	ListAllocations(ctx context.Context, runID uuid.UUID, limit, offset int) ([]schema.Allocation, uint64, error)
}
