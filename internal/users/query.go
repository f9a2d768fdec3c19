package users

import (
	"fmt"
	"sort"

	"github.com/teia-community/teia-analytics/internal/domain"
)

// Selection names a profile predicate
type Selection string

const (
	SelectArtists        Selection = "artists"
	SelectCollectors     Selection = "collectors"
	SelectPatrons        Selection = "patrons"
	SelectSwappers       Selection = "swappers"
	SelectHolders        Selection = "holders"
	SelectContributors   Selection = "contributors"
	SelectCollaborations Selection = "collaborations"
	SelectRestricted     Selection = "restricted"
	SelectNotRestricted  Selection = "not_restricted"
	SelectWashTraders    Selection = "wash_traders"
	SelectNotWashTraders Selection = "not_wash_traders"
	SelectContracts      Selection = "contracts"
	SelectNotContracts   Selection = "not_contracts"
)

var selections = map[Selection]func(*Profile) bool{
	SelectArtists:        func(p *Profile) bool { return p.Type == domain.UserTypeArtist },
	SelectCollectors:     func(p *Profile) bool { return len(p.CollectedObjkts) > 0 },
	SelectPatrons:        func(p *Profile) bool { return p.Type == domain.UserTypePatron },
	SelectSwappers:       func(p *Profile) bool { return p.Type == domain.UserTypeSwapper },
	SelectHolders:        func(p *Profile) bool { return p.TokenBalance > 0 },
	SelectContributors:   func(p *Profile) bool { return p.ContributionLevel > 0 },
	SelectCollaborations: func(p *Profile) bool { return p.Type == domain.UserTypeCollaboration },
	SelectRestricted:     func(p *Profile) bool { return p.Restricted },
	SelectNotRestricted:  func(p *Profile) bool { return !p.Restricted },
	SelectWashTraders:    func(p *Profile) bool { return p.WashTrader },
	SelectNotWashTraders: func(p *Profile) bool { return !p.WashTrader },
	SelectContracts:      func(p *Profile) bool { return p.IsContract() },
	SelectNotContracts:   func(p *Profile) bool { return !p.IsContract() },
}

// IsValidSelection checks if a selection is part of the predicate vocabulary
func IsValidSelection(s Selection) bool {
	_, ok := selections[s]
	return ok
}

// Select returns a new registry holding the matching profiles with their ids.
// The selection shares the root registry, so profiles it creates get ids unique across both.
// An unknown selection yields an empty registry.
func (r *Registry) Select(s Selection) *Registry {
	predicate := selections[s]

	root := r.root
	if root == nil {
		root = r
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	selected := &Registry{
		root:     root,
		profiles: make(map[string]*Profile),
		ids:      make(map[int]string),
		platform: r.platform,
		options:  r.options,
	}
	if predicate == nil {
		return selected
	}

	for _, address := range r.order {
		profile := r.profiles[address]
		if predicate(profile) {
			selected.add(profile)
		}
	}

	return selected
}

// Metric names a numeric profile field used for rankings
type Metric string

const (
	MetricMoneyEarned            Metric = "money_earned"
	MetricMoneyEarnedOwnObjkts   Metric = "money_earned_own_objkts"
	MetricMoneyEarnedOtherObjkts Metric = "money_earned_other_objkts"
	MetricMoneySpent             Metric = "money_spent"
	MetricMintedObjkts           Metric = "minted_objkts"
	MetricCollectedObjkts        Metric = "collected_objkts"
	MetricSwappedObjkts          Metric = "swapped_objkts"
	MetricActiveDays             Metric = "active_days"
	MetricConnections            Metric = "connections"
	MetricTokenBalance           Metric = "token_balance"
)

var metrics = map[Metric]func(*Profile) float64{
	MetricMoneyEarned:            func(p *Profile) float64 { return p.TotalMoneyEarned },
	MetricMoneyEarnedOwnObjkts:   func(p *Profile) float64 { return p.TotalMoneyEarnedOwnObjkts },
	MetricMoneyEarnedOtherObjkts: func(p *Profile) float64 { return p.TotalMoneyEarnedOtherObjkts },
	MetricMoneySpent:             func(p *Profile) float64 { return p.TotalMoneySpent },
	MetricMintedObjkts:           func(p *Profile) float64 { return float64(len(p.MintedObjkts)) },
	MetricCollectedObjkts:        func(p *Profile) float64 { return float64(len(p.CollectedObjkts)) },
	MetricSwappedObjkts:          func(p *Profile) float64 { return float64(len(p.SwappedObjkts)) },
	MetricActiveDays:             func(p *Profile) float64 { return float64(p.ActiveDays()) },
	MetricConnections:            func(p *Profile) float64 { return float64(p.ConnectionsToUsers()) },
	MetricTokenBalance:           func(p *Profile) float64 { return p.TokenBalance },
}

// TopBy returns the addresses of the n profiles with the highest metric, ties broken by id.
// When excludeFlagged is set restricted and wash trading profiles are skipped.
func (r *Registry) TopBy(metric Metric, n int, excludeFlagged bool) ([]string, error) {
	value, ok := metrics[metric]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", metric)
	}

	candidates := make([]*Profile, 0, r.Len())
	for _, profile := range r.Profiles() {
		if excludeFlagged && (profile.Restricted || profile.WashTrader) {
			continue
		}
		candidates = append(candidates, profile)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		vi, vj := value(candidates[i]), value(candidates[j])
		if vi != vj {
			return vi > vj
		}
		return candidates[i].ID < candidates[j].ID
	})

	if n > len(candidates) || n < 0 {
		n = len(candidates)
	}

	top := make([]string, 0, n)
	for _, profile := range candidates[:n] {
		top = append(top, profile.Address)
	}
	return top, nil
}
