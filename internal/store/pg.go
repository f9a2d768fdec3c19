package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/logger"
	"github.com/teia-community/teia-analytics/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// calculateSafeBatchSize computes the optimal batch size for bulk inserts to avoid
// PostgreSQL's "extended protocol limited to 65535 parameters" error.
//
// PostgreSQL's extended protocol has a hard limit of 65535 parameters per query.
// When doing batch inserts with GORM, each record consumes multiple parameters
// (one per field being inserted), and ON CONFLICT clauses may add additional parameters.
//
// Parameters:
//   - totalRecords: total number of records to insert
//   - fieldsPerRecord: number of fields/parameters per record
//
// Returns the safe batch size that won't exceed the parameter limit.
//
// Example with headroom of 1000:
//   - User struct: 26 fields → (65,535 - 1,000) / 26 = 2,482 records/batch
//   - Allocation struct: 9 fields → (65,535 - 1,000) / 9 = 7,170 records/batch
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000 // Total parameter headroom for batch-level overhead

	// Reserve headroom from total available parameters
	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}


const (
	userFieldsPerRecord       = 26
	allocationFieldsPerRecord = 9
)

var userUpdateColumns = []string{
	"profile_id", "username", "type", "restricted", "wash_trader", "verified", "has_profile",
	"token_balance", "contribution_level", "first_activity", "last_activity", "active_days",
	"platform_active_days", "minted_count", "collected_count", "swapped_count", "money_earned_own",
	"money_earned", "money_spent", "connection_count", "vote_count", "updated_at",
}

var allocationUpdateColumns = []string{
	"username", "type", "scaling_factor", "amounts", "activity_amount", "total_amount",
}

// CreateRun stores a new analysis run
func (s *pgStore) CreateRun(ctx context.Context, input CreateRunInput) (*schema.AnalysisRun, error) {
	run := schema.AnalysisRun{
		ID:      uuid.New(),
		Program: input.Program,
		Poll:    input.Poll,
		Config:  input.Config,
		Summary: input.Summary,
	}

	if err := s.db.WithContext(ctx).Create(&run).Error; err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	logger.InfoCtx(ctx, "Created analysis run",
		zap.String("runID", run.ID.String()),
		zap.String("program", string(run.Program)))

	return &run, nil
}

// SaveUsers upserts the user rows of a run in batches
func (s *pgStore) SaveUsers(ctx context.Context, runID uuid.UUID, users []schema.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureRun(tx, runID); err != nil {
			return err
		}

		if len(users) > 0 {
			for i := range users {
				users[i].RunID = runID
			}

			batchSize := calculateSafeBatchSize(len(users), userFieldsPerRecord)
			if err := tx.Omit(clause.Associations).
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "run_id"}, {Name: "address"}},
					DoUpdates: clause.AssignmentColumns(userUpdateColumns),
				}).
				CreateInBatches(&users, batchSize).Error; err != nil {
				return fmt.Errorf("failed to upsert users: %w", err)
			}
		}

		var count int64
		if err := tx.Model(&schema.User{}).Where("run_id = ?", runID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}

		if err := tx.Model(&schema.AnalysisRun{}).
			Where("id = ?", runID).
			Update("user_count", count).Error; err != nil {
			return fmt.Errorf("failed to update run user count: %w", err)
		}

		logger.DebugCtx(ctx, "Saved users",
			zap.String("runID", runID.String()),
			zap.Int("saved", len(users)),
			zap.Int64("total", count))

		return nil
	})
}

// SaveAllocations upserts the allocations of a run in batches
func (s *pgStore) SaveAllocations(ctx context.Context, runID uuid.UUID, allocations []schema.Allocation) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureRun(tx, runID); err != nil {
			return err
		}

		if len(allocations) == 0 {
			return nil
		}

		for i := range allocations {
			allocations[i].RunID = runID
		}

		batchSize := calculateSafeBatchSize(len(allocations), allocationFieldsPerRecord)
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "run_id"}, {Name: "address"}},
				DoUpdates: clause.AssignmentColumns(allocationUpdateColumns),
			}).
			CreateInBatches(&allocations, batchSize).Error; err != nil {
			return fmt.Errorf("failed to upsert allocations: %w", err)
		}

		return nil
	})
}

// GetLatestRun retrieves the most recent run
func (s *pgStore) GetLatestRun(ctx context.Context, program schema.RunProgram) (*schema.AnalysisRun, error) {
	query := s.db.WithContext(ctx).Model(&schema.AnalysisRun{})
	if program != "" {
		query = query.Where("program = ?", program)
	}

	var run schema.AnalysisRun
	if err := query.Order("created_at DESC").Order("id").First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	return &run, nil
}

// GetUser retrieves the user row of an address in a run
func (s *pgStore) GetUser(ctx context.Context, runID uuid.UUID, address string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).
		Where("run_id = ? AND address = ?", runID, address).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// ListUsersByType retrieves the user rows of a run
func (s *pgStore) ListUsersByType(ctx context.Context, runID uuid.UUID, filter UserFilter) ([]schema.User, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.User{}).Where("run_id = ?", runID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Restricted != nil {
		query = query.Where("restricted = ?", *filter.Restricted)
	}

	// Count total
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []schema.User
	err := query.
		Order("profile_id ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, uint64(total), nil //nolint:gosec,G115
}

// ListAllocations retrieves the allocations of a run, largest first
func (s *pgStore) ListAllocations(ctx context.Context, runID uuid.UUID, limit, offset int) ([]schema.Allocation, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Allocation{}).Where("run_id = ?", runID)

	// Count total
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count allocations: %w", err)
	}

	var allocations []schema.Allocation
	err := query.
		Order("total_amount DESC").
		Order("address ASC").
		Limit(limit).
		Offset(offset).
		Find(&allocations).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list allocations: %w", err)
	}

	return allocations, uint64(total), nil //nolint:gosec,G115
}

func ensureRun(tx *gorm.DB, runID uuid.UUID) error {
	var count int64
	if err := tx.Model(&schema.AnalysisRun{}).Where("id = ?", runID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}
	if count == 0 {
		return domain.ErrRunNotFound
	}
	return nil
}
