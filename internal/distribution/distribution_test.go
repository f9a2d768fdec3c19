package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teia-community/teia-analytics/internal/domain"
)

func sampleRows() []Row {
	return []Row{
		{
			Address: "tz1artist", Type: domain.UserTypeArtist, HasProfile: true, Verified: true,
			ActiveDays: 200, PlatformActiveDays: 80, VoteCount: 3, MintedCount: 120, CollectedCount: 40,
			ConnectionCount: 90, MoneyEarnedOwn: 5000, MoneySpent: 800, TokenBalance: 1200,
		},
		{
			Address: "tz1patron", Type: domain.UserTypePatron, HasProfile: true,
			ActiveDays: 50, PlatformActiveDays: 10, VoteCount: 1, CollectedCount: 300,
			ConnectionCount: 150, MoneySpent: 20000, TokenBalance: 0,
		},
		{
			Address: "tz1washer", Type: domain.UserTypeSwapper, WashTrader: true,
			ActiveDays: 30, PlatformActiveDays: 30, MintedCount: 2, CollectedCount: 500,
			ConnectionCount: 5, MoneyEarnedOwn: 90000, MoneySpent: 90000,
		},
		{
			Address: "tz1helper", Type: domain.UserTypeContributor, ContributionLevel: 2,
		},
		{
			Address: "tz1banned", Type: domain.UserTypeArtist, Restricted: true,
			ActiveDays: 500, MintedCount: 1000, TokenBalance: 99999,
		},
	}
}

func TestScalingFactor(t *testing.T) {
	cfg := DefaultScalingConfig()

	tests := []struct {
		name     string
		row      Row
		expected float64
	}{
		{
			name:     "active user without profile",
			row:      Row{ActiveDays: 20},
			expected: 1,
		},
		{
			name:     "profiled user",
			row:      Row{HasProfile: true, ActiveDays: 20},
			expected: 2,
		},
		{
			name:     "verified user",
			row:      Row{HasProfile: true, Verified: true, ActiveDays: 20},
			expected: 3,
		},
		{
			name:     "inactive verified user is zeroed",
			row:      Row{HasProfile: true, Verified: true, ActiveDays: 13},
			expected: 0,
		},
		{
			name:     "voter stays above the floor",
			row:      Row{ActiveDays: 1, VoteCount: 1},
			expected: 1,
		},
		{
			name:     "big spender stays above the floor",
			row:      Row{ActiveDays: 1, MoneySpent: 1000},
			expected: 1,
		},
		{
			name:     "inactive contributor is not zeroed",
			row:      Row{ContributionLevel: 1},
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScalingFactor(tt.row, cfg))
		})
	}
}

func TestCompute(t *testing.T) {
	cfg := DefaultConfig()

	result, err := Compute(sampleRows(), cfg)
	require.NoError(t, err)

	require.Len(t, result.Allocations, 4)
	assert.InDelta(t, cfg.TotalAmount-cfg.TreasuryAmount-1200, result.ActivityPool, 1e-6)
	assert.NoError(t, result.Check(1e-6))
	assert.InDelta(t, cfg.TotalAmount, result.Sum()+cfg.TreasuryAmount, 1e-6*cfg.TotalAmount)

	for i := 1; i < len(result.Allocations); i++ {
		assert.GreaterOrEqual(t, result.Allocations[i-1].Total, result.Allocations[i].Total)
	}

	byAddress := make(map[string]Allocation)
	for _, a := range result.Allocations {
		byAddress[a.Address] = a
	}
	assert.NotContains(t, byAddress, "tz1banned")

	washer := byAddress["tz1washer"]
	assert.Zero(t, washer.Amounts[ComponentEarnings])
	assert.Zero(t, washer.Amounts[ComponentSpending])
	assert.Positive(t, washer.Amounts[ComponentCollecting])

	helper := byAddress["tz1helper"]
	assert.Equal(t, 3.0, helper.ScalingFactor)
	assert.InDelta(t, 0.08*result.ActivityPool, helper.Amounts[ComponentContribution], 1e-6)

	artist := byAddress["tz1artist"]
	assert.InDelta(t, artist.ActivityAmount+1200, artist.Total, 1e-9)

	assert.Equal(t, componentOrder, result.Components)
}

func TestCompute_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows []Row
		cfg  func() Config
		err  error
	}{
		{
			name: "zero component sum",
			rows: []Row{{Address: "tz1a", ActiveDays: 20, PlatformActiveDays: 1, VoteCount: 1, MintedCount: 1, CollectedCount: 1, ConnectionCount: 1, MoneyEarnedOwn: 1, MoneySpent: 1}},
			cfg:  DefaultConfig,
			err:  domain.ErrZeroComponentSum,
		},
		{
			name: "everyone below the floor",
			rows: []Row{{Address: "tz1a", ActiveDays: 2, ContributionLevel: 0}},
			cfg:  DefaultConfig,
			err:  domain.ErrZeroComponentSum,
		},
		{
			name: "weights not summing to one",
			rows: sampleRows(),
			cfg: func() Config {
				cfg := DefaultConfig()
				cfg.Components = cfg.Components[:3]
				return cfg
			},
			err: domain.ErrInvalidWeights,
		},
		{
			name: "balances exceed the pool",
			rows: []Row{{Address: "tz1a", TokenBalance: 6e6}},
			cfg:  DefaultConfig,
			err:  domain.ErrNegativeActivityPool,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.rows, tt.cfg())
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, result)
		})
	}
}

func TestCompute_NegativeEarningsNamesTheComponent(t *testing.T) {
	rows := sampleRows()
	rows[0].MoneyEarnedOwn = -10

	result, err := Compute(rows, DefaultConfig())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidComponentSum)
	assert.NotErrorIs(t, err, domain.ErrZeroComponentSum)
	assert.Contains(t, err.Error(), ComponentEarnings)
}

func TestCompute_ZeroWeightComponentIsSkipped(t *testing.T) {
	weights := DefaultWeights()
	weights[ComponentActivity] += weights[ComponentContribution]
	weights[ComponentContribution] = 0

	components, err := ComponentsFromWeights(weights)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Components = components

	rows := sampleRows()[:3]
	result, err := Compute(rows, cfg)
	require.NoError(t, err)
	assert.NoError(t, result.Check(1e-6))
}

func TestComponentsFromWeights(t *testing.T) {
	components, err := ComponentsFromWeights(map[string]float64{ComponentSpending: 0.5, ComponentActivity: 0.5})
	require.NoError(t, err)
	require.Len(t, components, 2)
	assert.Equal(t, ComponentActivity, components[0].Name)
	assert.Equal(t, TransformIdentity, components[0].Transform)
	assert.Equal(t, ComponentSpending, components[1].Name)
	assert.Equal(t, TransformSqrt, components[1].Transform)
	assert.True(t, components[1].ExcludeWashTraders)

	_, err = ComponentsFromWeights(map[string]float64{"hdao": 1})
	assert.Error(t, err)

	assert.Len(t, DefaultComponents(), 9)
}

func TestTransform(t *testing.T) {
	assert.Equal(t, 3.0, TransformSqrt.Apply(9))
	assert.Equal(t, 9.0, TransformIdentity.Apply(9))
}
