package dto

import (
	"time"

	"github.com/teia-community/teia-analytics/internal/store/schema"
)

// UserResponse represents the user record of a run
type UserResponse struct {
	ID                 int        `json:"id"`
	Address            string     `json:"address"`
	Username           string     `json:"username"`
	Type               string     `json:"type"`
	Restricted         bool       `json:"restricted"`
	WashTrader         bool       `json:"wash_trader"`
	Verified           bool       `json:"verified"`
	HasProfile         bool       `json:"has_profile"`
	TokenBalance       float64    `json:"token_balance"`
	ContributionLevel  int        `json:"contribution_level"`
	FirstActivity      *time.Time `json:"first_activity,omitempty"`
	LastActivity       *time.Time `json:"last_activity,omitempty"`
	ActiveDays         int        `json:"active_days"`
	PlatformActiveDays int        `json:"platform_active_days"`
	MintedCount        int        `json:"minted_count"`
	CollectedCount     int        `json:"collected_count"`
	SwappedCount       int        `json:"swapped_count"`
	MoneyEarnedOwn     float64    `json:"money_earned_own"`
	MoneyEarned        float64    `json:"money_earned"`
	MoneySpent         float64    `json:"money_spent"`
	ConnectionCount    int        `json:"connection_count"`
	VoteCount          int        `json:"vote_count"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	RunID  string          `json:"run_id"`
	Users  []*UserResponse `json:"items"`
	Total  uint64          `json:"total"`
	Offset *uint64         `json:"offset,omitempty"`
}

// MapUserToDTO maps a schema.User to UserResponse
func MapUserToDTO(user *schema.User) *UserResponse {
	return &UserResponse{
		ID:                 user.ProfileID,
		Address:            user.Address,
		Username:           user.Username,
		Type:               user.Type,
		Restricted:         user.Restricted,
		WashTrader:         user.WashTrader,
		Verified:           user.Verified,
		HasProfile:         user.HasProfile,
		TokenBalance:       user.TokenBalance,
		ContributionLevel:  user.ContributionLevel,
		FirstActivity:      user.FirstActivity,
		LastActivity:       user.LastActivity,
		ActiveDays:         user.ActiveDays,
		PlatformActiveDays: user.PlatformActiveDays,
		MintedCount:        user.MintedCount,
		CollectedCount:     user.CollectedCount,
		SwappedCount:       user.SwappedCount,
		MoneyEarnedOwn:     user.MoneyEarnedOwn,
		MoneyEarned:        user.MoneyEarned,
		MoneySpent:         user.MoneySpent,
		ConnectionCount:    user.ConnectionCount,
		VoteCount:          user.VoteCount,
	}
}
