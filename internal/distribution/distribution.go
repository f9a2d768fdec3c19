package distribution

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/logger"
)

const weightsTolerance = 1e-9

// Row is the tabular snapshot of one user consumed by the allocation
type Row struct {
	Address            string
	Username           string
	Type               domain.UserType
	Restricted         bool
	HasProfile         bool
	Verified           bool
	ActiveDays         int
	PlatformActiveDays int
	VoteCount          int
	MintedCount        int
	CollectedCount     int
	ConnectionCount    int
	MoneyEarnedOwn     float64
	MoneySpent         float64
	ContributionLevel  int
	WashTrader         bool
	TokenBalance       float64
}

// ScalingConfig is the decision table of the per-user scaling factor
type ScalingConfig struct {
	Base          float64
	Profiled      float64
	Verified      float64
	Contributor   float64
	MinActiveDays int
	MinVoteCount  int
	MinMoneySpent float64
}

// Config configures an allocation
type Config struct {
	TotalAmount    float64
	TreasuryAmount float64
	Scaling        ScalingConfig
	Components     []Component
}

// DefaultScalingConfig returns the default scaling decision table
func DefaultScalingConfig() ScalingConfig {
	return ScalingConfig{
		Base:          1,
		Profiled:      2,
		Verified:      3,
		Contributor:   3,
		MinActiveDays: 14,
		MinVoteCount:  1,
		MinMoneySpent: 1000,
	}
}

// DefaultConfig returns the default allocation of 5.5M tokens with a 350k treasury
func DefaultConfig() Config {
	return Config{
		TotalAmount:    5.5e6,
		TreasuryAmount: 3.5e5,
		Scaling:        DefaultScalingConfig(),
		Components:     DefaultComponents(),
	}
}

// Allocation is the amount allocated to one user
type Allocation struct {
	Row
	ScalingFactor  float64
	Amounts        map[string]float64
	ActivityAmount float64
	Total          float64
}

// Result is a computed allocation sorted by descending total
type Result struct {
	Components     []string
	TotalAmount    float64
	TreasuryAmount float64
	ActivityPool   float64
	Allocations    []Allocation
}

// ScalingFactor returns the scaling factor of a user. Users below the activity floor are zeroed
// unless they are contributors, which are bumped after the floor is applied.
func ScalingFactor(row Row, cfg ScalingConfig) float64 {
	sf := cfg.Base
	if row.HasProfile {
		sf = cfg.Profiled
	}
	if row.Verified {
		sf = cfg.Verified
	}
	if row.ActiveDays < cfg.MinActiveDays && row.VoteCount < cfg.MinVoteCount && row.MoneySpent < cfg.MinMoneySpent {
		sf = 0
	}
	if row.ContributionLevel > 0 {
		sf = cfg.Contributor
	}
	return sf
}

// Compute allocates the activity pool over the non-restricted rows
func Compute(rows []Row, cfg Config) (*Result, error) {
	if err := validateWeights(cfg.Components); err != nil {
		return nil, err
	}

	eligible := make([]Row, 0, len(rows))
	balances := 0.0
	for _, row := range rows {
		if row.Restricted {
			continue
		}
		eligible = append(eligible, row)
		balances += row.TokenBalance
	}

	pool := cfg.TotalAmount - cfg.TreasuryAmount - balances
	if pool < 0 {
		return nil, fmt.Errorf("%w: total %.6f, treasury %.6f, balances %.6f", domain.ErrNegativeActivityPool, cfg.TotalAmount, cfg.TreasuryAmount, balances)
	}

	result := &Result{
		TotalAmount:    cfg.TotalAmount,
		TreasuryAmount: cfg.TreasuryAmount,
		ActivityPool:   pool,
		Allocations:    make([]Allocation, len(eligible)),
	}
	for i, row := range eligible {
		result.Allocations[i] = Allocation{
			Row:           row,
			ScalingFactor: ScalingFactor(row, cfg.Scaling),
			Amounts:       make(map[string]float64, len(cfg.Components)),
		}
	}

	raw := make([]float64, len(eligible))
	for _, component := range cfg.Components {
		result.Components = append(result.Components, component.Name)

		sum := 0.0
		for i := range result.Allocations {
			a := &result.Allocations[i]
			value := a.ScalingFactor * component.Transform.Apply(component.Metric(a.Row))
			if component.ExcludeWashTraders && a.WashTrader {
				value = 0
			}
			raw[i] = value
			sum += value
		}

		if component.Weight == 0 {
			continue
		}
		if math.IsNaN(sum) || math.IsInf(sum, 0) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidComponentSum, component.Name)
		}
		if sum == 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrZeroComponentSum, component.Name)
		}

		for i := range result.Allocations {
			a := &result.Allocations[i]
			amount := component.Weight * pool * raw[i] / sum
			a.Amounts[component.Name] = amount
			a.ActivityAmount += amount
		}
	}

	for i := range result.Allocations {
		a := &result.Allocations[i]
		a.Total = a.ActivityAmount + a.TokenBalance
	}

	sort.SliceStable(result.Allocations, func(i, j int) bool {
		ai, aj := result.Allocations[i], result.Allocations[j]
		if ai.Total != aj.Total {
			return ai.Total > aj.Total
		}
		return ai.Address < aj.Address
	})

	logger.Info("Computed token allocation",
		zap.Int("users", len(result.Allocations)),
		zap.Float64("activityPool", pool),
		zap.Float64("existingBalances", balances))

	return result, nil
}

// Sum returns the sum of every allocated total
func (r *Result) Sum() float64 {
	sum := 0.0
	for _, a := range r.Allocations {
		sum += a.Total
	}
	return sum
}

// Check verifies that the allocations and the treasury add up to the total amount within a relative tolerance
func (r *Result) Check(tolerance float64) error {
	distributed := r.Sum() + r.TreasuryAmount
	if math.Abs(distributed-r.TotalAmount) > tolerance*math.Max(1, math.Abs(r.TotalAmount)) {
		return fmt.Errorf("allocation is not conserved: distributed %.6f of %.6f", distributed, r.TotalAmount)
	}
	return nil
}

func validateWeights(components []Component) error {
	sum := 0.0
	for _, component := range components {
		if component.Weight < 0 {
			return fmt.Errorf("%w: %s has negative weight", domain.ErrInvalidWeights, component.Name)
		}
		sum += component.Weight
	}
	if math.Abs(sum-1) > weightsTolerance {
		return fmt.Errorf("%w: got %.6f", domain.ErrInvalidWeights, sum)
	}
	return nil
}
