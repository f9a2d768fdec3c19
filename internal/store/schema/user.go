package schema

import (
	"time"

	"github.com/google/uuid"
)

// User represents the users table - the flat user record of one run
type User struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// RunID references the run the row belongs to
	RunID uuid.UUID `gorm:"column:run_id;not null;type:uuid;uniqueIndex:idx_users_run_address,priority:1"`
	// Address is the tezos address of the user
	Address string `gorm:"column:address;not null;type:text;uniqueIndex:idx_users_run_address,priority:2"`
	// ProfileID is the registry id of the profile in the run
	ProfileID int `gorm:"column:profile_id;not null"`
	Username  string `gorm:"column:username;not null;default:'';type:text"`
	// Type is the most significant role of the user
	Type               string     `gorm:"column:type;not null;default:'';type:text;index:idx_users_run_type"`
	Restricted         bool       `gorm:"column:restricted;not null;default:false"`
	WashTrader         bool       `gorm:"column:wash_trader;not null;default:false"`
	Verified           bool       `gorm:"column:verified;not null;default:false"`
	HasProfile         bool       `gorm:"column:has_profile;not null;default:false"`
	TokenBalance       float64    `gorm:"column:token_balance;not null;default:0"`
	ContributionLevel  int        `gorm:"column:contribution_level;not null;default:0"`
	FirstActivity      *time.Time `gorm:"column:first_activity;type:timestamptz"`
	LastActivity       *time.Time `gorm:"column:last_activity;type:timestamptz"`
	ActiveDays         int        `gorm:"column:active_days;not null;default:0"`
	PlatformActiveDays int        `gorm:"column:platform_active_days;not null;default:0"`
	MintedCount        int        `gorm:"column:minted_count;not null;default:0"`
	CollectedCount     int        `gorm:"column:collected_count;not null;default:0"`
	SwappedCount       int        `gorm:"column:swapped_count;not null;default:0"`
	MoneyEarnedOwn     float64    `gorm:"column:money_earned_own;not null;default:0"`
	MoneyEarned        float64    `gorm:"column:money_earned;not null;default:0"`
	MoneySpent         float64    `gorm:"column:money_spent;not null;default:0"`
	ConnectionCount    int        `gorm:"column:connection_count;not null;default:0"`
	VoteCount          int        `gorm:"column:vote_count;not null;default:0"`
	// CreatedAt is the timestamp when this row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Run AnalysisRun `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
