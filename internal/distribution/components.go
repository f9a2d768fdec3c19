package distribution

import (
	"fmt"
	"math"
	"sort"
)

// Transform dampens a metric before normalization
type Transform string

const (
	TransformIdentity Transform = "identity"
	TransformSqrt     Transform = "sqrt"
)

// Apply applies the transform
func (t Transform) Apply(v float64) float64 {
	if t == TransformSqrt {
		return math.Sqrt(v)
	}
	return v
}

// Component names
const (
	ComponentPlatformActivity = "platform_activity"
	ComponentActivity         = "activity"
	ComponentVoting           = "voting"
	ComponentMinting          = "minting"
	ComponentCollecting       = "collecting"
	ComponentConnections      = "connections"
	ComponentEarnings         = "earnings"
	ComponentSpending         = "spending"
	ComponentContribution     = "contribution"
)

// Component is one weighted share of the activity pool
type Component struct {
	Name               string
	Weight             float64
	Transform          Transform
	ExcludeWashTraders bool
	Metric             func(Row) float64
}

type componentDef struct {
	transform          Transform
	excludeWashTraders bool
	metric             func(Row) float64
}

var componentDefs = map[string]componentDef{
	ComponentPlatformActivity: {TransformIdentity, false, func(r Row) float64 { return float64(r.PlatformActiveDays) }},
	ComponentActivity:         {TransformIdentity, false, func(r Row) float64 { return float64(r.ActiveDays) }},
	ComponentVoting:           {TransformSqrt, false, func(r Row) float64 { return float64(r.VoteCount) }},
	ComponentMinting:          {TransformSqrt, false, func(r Row) float64 { return float64(r.MintedCount) }},
	ComponentCollecting:       {TransformSqrt, false, func(r Row) float64 { return float64(r.CollectedCount) }},
	ComponentConnections:      {TransformSqrt, false, func(r Row) float64 { return float64(r.ConnectionCount) }},
	ComponentEarnings:         {TransformSqrt, true, func(r Row) float64 { return r.MoneyEarnedOwn }},
	ComponentSpending:         {TransformSqrt, true, func(r Row) float64 { return r.MoneySpent }},
	ComponentContribution:     {TransformIdentity, false, func(r Row) float64 { return float64(r.ContributionLevel) }},
}

// componentOrder is the column order of the components
var componentOrder = []string{
	ComponentPlatformActivity,
	ComponentActivity,
	ComponentVoting,
	ComponentMinting,
	ComponentCollecting,
	ComponentConnections,
	ComponentEarnings,
	ComponentSpending,
	ComponentContribution,
}

// DefaultWeights returns the default component weights, summing to one
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		ComponentPlatformActivity: 0.15,
		ComponentActivity:         0.15,
		ComponentVoting:           0.10,
		ComponentMinting:          0.07,
		ComponentCollecting:       0.08,
		ComponentConnections:      0.07,
		ComponentEarnings:         0.15,
		ComponentSpending:         0.15,
		ComponentContribution:     0.08,
	}
}

// DefaultComponents returns every component with its default weight
func DefaultComponents() []Component {
	components, _ := ComponentsFromWeights(DefaultWeights())
	return components
}

// ComponentsFromWeights builds the components named by the weights in column order
func ComponentsFromWeights(weights map[string]float64) ([]Component, error) {
	unknown := make([]string, 0)
	for name := range weights {
		if _, ok := componentDefs[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown allocation components: %v", unknown)
	}

	components := make([]Component, 0, len(weights))
	for _, name := range componentOrder {
		weight, ok := weights[name]
		if !ok {
			continue
		}
		def := componentDefs[name]
		components = append(components, Component{
			Name:               name,
			Weight:             weight,
			Transform:          def.transform,
			ExcludeWashTraders: def.excludeWashTraders,
			Metric:             def.metric,
		})
	}
	return components, nil
}
