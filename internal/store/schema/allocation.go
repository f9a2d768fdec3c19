package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Allocation represents the allocations table - the token allocation of one user in a distribution run
type Allocation struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// RunID references the distribution run
	RunID uuid.UUID `gorm:"column:run_id;not null;type:uuid;uniqueIndex:idx_allocations_run_address,priority:1"`
	// Address is the tezos address of the recipient
	Address  string `gorm:"column:address;not null;type:text;uniqueIndex:idx_allocations_run_address,priority:2"`
	Username string `gorm:"column:username;not null;default:'';type:text"`
	Type     string `gorm:"column:type;not null;default:'';type:text"`
	// ScalingFactor is the multiplier applied to every component share
	ScalingFactor float64 `gorm:"column:scaling_factor;not null;default:0"`
	// Amounts maps each component name to the amount it contributed
	Amounts datatypes.JSONType[map[string]float64] `gorm:"column:amounts;type:jsonb"`
	// ActivityAmount is the sum of the component amounts
	ActivityAmount float64 `gorm:"column:activity_amount;not null;default:0"`
	// TotalAmount is the final allocation
	TotalAmount float64 `gorm:"column:total_amount;not null;default:0;index:idx_allocations_run_total"`
	// CreatedAt is the timestamp when this allocation was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Run AnalysisRun `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for the Allocation model
func (Allocation) TableName() string {
	return "allocations"
}
