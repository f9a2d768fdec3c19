package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RunProgram identifies the program that produced an analysis run
type RunProgram string

const (
	RunProgramUsers        RunProgram = "teia-users"
	RunProgramDistribution RunProgram = "token-distribution"
)

// AnalysisRun represents the analysis_runs table - one row per persisted program execution
type AnalysisRun struct {
	// ID is the run identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// Program is the program that produced the run
	Program RunProgram `gorm:"column:program;not null;type:text"`
	// Poll is the poll id reported in the vote membership column, if any
	Poll string `gorm:"column:poll;not null;default:'';type:text"`
	// UserCount is the number of user rows stored for the run
	UserCount int `gorm:"column:user_count;not null;default:0"`
	// Config is the configuration the run was executed with
	Config datatypes.JSON `gorm:"column:config;type:jsonb"`
	// Summary holds the aggregate counts of the run
	Summary datatypes.JSON `gorm:"column:summary;type:jsonb"`
	// CreatedAt is the timestamp when the run was stored
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the AnalysisRun model
func (AnalysisRun) TableName() string {
	return "analysis_runs"
}
