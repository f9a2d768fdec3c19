package analysis

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/teia-community/teia-analytics/internal/export"
	"github.com/teia-community/teia-analytics/internal/graph"
	"github.com/teia-community/teia-analytics/internal/logger"
	"github.com/teia-community/teia-analytics/internal/stats"
	"github.com/teia-community/teia-analytics/internal/users"
)

// Options configures a build
type Options struct {
	// PlatformContracts are the marketplaces whose activity counts as platform activity
	PlatformContracts []string
	// AllowedPolls are the poll ids whose votes are recorded
	AllowedPolls []string
	// Poll is the poll reported in the vote membership column of the users table
	Poll string
	// CheckOrder rejects transaction batches that are not chronologically ordered
	CheckOrder bool
}

// Report is the outcome of a build
type Report struct {
	Registry *users.Registry
	Graph    *graph.Graph
	// Users are the table rows of every non contract profile, in id order
	Users   []export.User
	Summary stats.Summary
}

type pass struct {
	name string
	run  func() error
}

// Build applies the dataset to a new registry in the fixed pass order and derives the graph and the users table
func Build(ds *Dataset, opts Options) (*Report, error) {
	reg := users.NewRegistry(users.Options{
		PlatformContracts: opts.PlatformContracts,
		CheckOrder:        opts.CheckOrder,
	})
	report := &Report{Registry: reg}

	passes := []pass{
		{"mints", func() error { return reg.IngestMints(ds.Mints) }},
		{"collects", func() error {
			for _, m := range ds.Marketplaces {
				if err := reg.IngestCollects(m.Collects, m.SwapsBigmap, ds.Royalties); err != nil {
					return fmt.Errorf("%s: %w", m.Name, err)
				}
			}
			return nil
		}},
		{"swaps", func() error {
			for _, m := range ds.Marketplaces {
				if err := reg.IngestSwaps(m.Swaps); err != nil {
					return fmt.Errorf("%s: %w", m.Name, err)
				}
			}
			return nil
		}},
		{"cancel swaps", func() error {
			for _, m := range ds.Marketplaces {
				if err := reg.IngestCancelSwaps(m.CancelSwaps, m.SwapsBigmap); err != nil {
					return fmt.Errorf("%s: %w", m.Name, err)
				}
			}
			return nil
		}},
		{"token balances", func() error {
			reg.IngestTokenBalances(ds.TokenBalances, ds.TokenBalanceLevel)
			return nil
		}},
		{"identity", func() error {
			reg.EnrichIdentity(users.IdentitySources{
				Directory:       ds.Directory,
				Wallets:         ds.Wallets,
				TzProfiles:      ds.TzProfiles,
				Domains:         ds.Domains,
				Registries:      ds.Registries,
				SubjktsMetadata: ds.SubjktsMetadata,
			})
			return nil
		}},
		{"restricted", func() error {
			reg.SetRestricted(ds.Restricted)
			return nil
		}},
		{"wash traders", func() error {
			reg.SetWashTraders(ds.WashTraders)
			return nil
		}},
		{"contribution levels", func() error {
			reg.SetContributionLevels(ds.ContributionLevels)
			return nil
		}},
		{"votes", func() error {
			reg.IngestVotes(ds.Votes, opts.AllowedPolls)
			return nil
		}},
		{"collaborations", func() error {
			reg.IngestCollaborations(ds.Collaborations, ds.Signatures)
			return nil
		}},
		{"compress", func() error {
			reg.CompressConnections()
			return nil
		}},
		{"graph", func() error {
			g, err := graph.Build(reg)
			if err != nil {
				return err
			}
			report.Graph = g
			return nil
		}},
		{"table rows", func() error {
			report.Users = export.FromRegistry(reg.Select(users.SelectNotContracts), opts.Poll)
			report.Summary = stats.Summarize(reg.Select(users.SelectNotContracts))
			return nil
		}},
	}

	for _, p := range passes {
		done := logger.Timed("Applied pass", zap.String("pass", p.name))
		if err := p.run(); err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", p.name, err)
		}
		done(zap.Int("profiles", reg.Len()))
	}

	return report, nil
}
