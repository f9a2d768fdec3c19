package export

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/teia-community/teia-analytics/internal/distribution"
	"github.com/teia-community/teia-analytics/internal/store/schema"
)

// UserRecords converts users table rows into store rows
func UserRecords(rows []User) ([]schema.User, error) {
	records := make([]schema.User, 0, len(rows))
	for _, u := range rows {
		first, err := parseTimestamp(u.FirstActivity)
		if err != nil {
			return nil, fmt.Errorf("invalid first activity of %s: %w", u.Address, err)
		}
		last, err := parseTimestamp(u.LastActivity)
		if err != nil {
			return nil, fmt.Errorf("invalid last activity of %s: %w", u.Address, err)
		}

		records = append(records, schema.User{
			Address:            u.Address,
			ProfileID:          u.ID,
			Username:           u.Username,
			Type:               string(u.Type),
			Restricted:         u.Restricted,
			WashTrader:         u.WashTrader,
			Verified:           u.Verified,
			HasProfile:         u.HasProfile,
			TokenBalance:       u.TokenBalance,
			ContributionLevel:  u.ContributionLevel,
			FirstActivity:      first,
			LastActivity:       last,
			ActiveDays:         u.ActiveDays,
			PlatformActiveDays: u.PlatformActiveDays,
			MintedCount:        u.MintedCount,
			CollectedCount:     u.CollectedCount,
			SwappedCount:       u.SwappedCount,
			MoneyEarnedOwn:     u.MoneyEarnedOwn,
			MoneyEarned:        u.MoneyEarned,
			MoneySpent:         u.MoneySpent,
			ConnectionCount:    u.ConnectionCount,
			VoteCount:          u.VoteCount,
		})
	}
	return records, nil
}

// AllocationRecords converts an allocation result into store rows
func AllocationRecords(result *distribution.Result) []schema.Allocation {
	records := make([]schema.Allocation, 0, len(result.Allocations))
	for _, a := range result.Allocations {
		amounts := make(map[string]float64, len(a.Amounts))
		for name, amount := range a.Amounts {
			amounts[name] = amount
		}

		records = append(records, schema.Allocation{
			Address:        a.Row.Address,
			Username:       a.Row.Username,
			Type:           string(a.Row.Type),
			ScalingFactor:  a.ScalingFactor,
			Amounts:        datatypes.NewJSONType(amounts),
			ActivityAmount: a.ActivityAmount,
			TotalAmount:    a.Total,
		})
	}
	return records
}

func parseTimestamp(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
