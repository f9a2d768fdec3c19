package analysis

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/logger"
	"github.com/teia-community/teia-analytics/internal/providers/tezos"
	"github.com/teia-community/teia-analytics/internal/providers/vendors/tezosdomains"
	"github.com/teia-community/teia-analytics/internal/providers/vendors/tzprofiles"
	"github.com/teia-community/teia-analytics/internal/records"
	"github.com/teia-community/teia-analytics/internal/registry"
)

// Sources are the collaborators a dataset is fetched from. Nil vendor clients are skipped.
type Sources struct {
	Downloader   tezos.Downloader
	TzProfiles   tzprofiles.Client
	TezosDomains tezosdomains.Client
	Lists        registry.ListLoader
}

// Bigmaps holds the bigmap ids a dataset is built from
type Bigmaps struct {
	HENSwaps           []int64
	HENRoyalties       int64
	HENRegistries      int64
	HENSubjktsMetadata int64
	TeiaSwaps          int64
	TokenLedger        int64
	Votes              int64
}

// Lists holds the locations of the community lists, files or URLs
type Lists struct {
	Restricted    string
	WashTraders   string
	Contributions string
	Directory     string
}

// FetchConfig configures a fetch
type FetchConfig struct {
	// MaxLevel bounds the downloaded transactions, 0 means the chain head
	MaxLevel uint64
	// TokenBalanceLevel is the level of the token balance snapshot, 0 means the chain head
	TokenBalanceLevel uint64
	TokenDecimals     float64
	Bigmaps           Bigmaps
	Lists             Lists
	CollabFactory     string
}

// DefaultBigmaps returns the mainnet bigmap ids
func DefaultBigmaps() Bigmaps {
	return Bigmaps{
		HENSwaps:           []int64{domain.HEN_SWAPS_V1_BIGMAP, domain.HEN_SWAPS_V2_BIGMAP},
		HENRoyalties:       domain.HEN_ROYALTIES_BIGMAP,
		HENRegistries:      domain.HEN_REGISTRIES_BIGMAP,
		HENSubjktsMetadata: domain.HEN_SUBJKTS_METADATA_BIGMAP,
		TeiaSwaps:          domain.TEIA_SWAPS_BIGMAP,
		TokenLedger:        domain.HDAO_LEDGER_BIGMAP,
		Votes:              domain.TEIA_VOTES_BIGMAP,
	}
}

// Fetch downloads every input of a build. Independent downloads run on the downloader worker pool
// and the downloader errors name the failed source.
func Fetch(ctx context.Context, src Sources, cfg FetchConfig) (*Dataset, error) {
	ds := &Dataset{}
	txs := make(map[string][]domain.Transaction)
	var mu sync.Mutex

	transactions := func(name string) func(ctx context.Context) error {
		return func(ctx context.Context) error {
			source, err := tezos.LookupSource(name)
			if err != nil {
				return err
			}
			result, err := src.Downloader.Transactions(ctx, source, cfg.MaxLevel)
			if err != nil {
				return err
			}
			mu.Lock()
			txs[name] = result
			mu.Unlock()
			return nil
		}
	}

	bigmap := func(ids []int64, level uint64, apply func([]domain.BigmapKey)) func(ctx context.Context) error {
		return func(ctx context.Context) error {
			keys, err := src.Downloader.BigmapKeys(ctx, ids, level)
			if err != nil {
				return err
			}
			apply(keys)
			return nil
		}
	}

	var henSwaps, teiaSwaps map[string]domain.Swap
	var originations []domain.Origination
	var wallets []domain.Wallet

	tasks := []func(ctx context.Context) error{
		transactions(tezos.SOURCE_MINT),
		transactions(tezos.SOURCE_HEN_COLLECT),
		transactions(tezos.SOURCE_HEN_SWAP),
		transactions(tezos.SOURCE_HEN_CANCEL_SWAP),
		transactions(tezos.SOURCE_TEIA_COLLECT),
		transactions(tezos.SOURCE_TEIA_SWAP),
		transactions(tezos.SOURCE_TEIA_CANCEL_SWAP),
		transactions(tezos.SOURCE_COLLAB_SIGN),
		bigmap(cfg.Bigmaps.HENSwaps, 0, func(keys []domain.BigmapKey) { henSwaps = records.BuildSwaps(keys) }),
		bigmap([]int64{cfg.Bigmaps.HENRoyalties}, 0, func(keys []domain.BigmapKey) { ds.Royalties = records.BuildRoyalties(keys) }),
		bigmap([]int64{cfg.Bigmaps.HENRegistries}, 0, func(keys []domain.BigmapKey) { ds.Registries = records.BuildRegistries(keys) }),
		bigmap([]int64{cfg.Bigmaps.HENSubjktsMetadata}, 0, func(keys []domain.BigmapKey) {
			ds.SubjktsMetadata = records.BuildSubjktsMetadata(keys)
		}),
		bigmap([]int64{cfg.Bigmaps.TeiaSwaps}, 0, func(keys []domain.BigmapKey) { teiaSwaps = records.BuildSwaps(keys) }),
		bigmap([]int64{cfg.Bigmaps.TokenLedger}, cfg.TokenBalanceLevel, func(keys []domain.BigmapKey) {
			ds.TokenBalances = records.BuildTokenBalances(keys, cfg.TokenDecimals)
			ds.TokenBalanceLevel = cfg.TokenBalanceLevel
		}),
		bigmap([]int64{cfg.Bigmaps.Votes}, 0, func(keys []domain.BigmapKey) { ds.Votes = records.BuildVotes(keys) }),
		func(ctx context.Context) error {
			var err error
			originations, err = src.Downloader.Originations(ctx, cfg.CollabFactory)
			if err != nil {
				return err
			}
			return nil
		},
		func(ctx context.Context) error {
			var err error
			wallets, err = src.Downloader.Wallets(ctx)
			if err != nil {
				return err
			}
			return nil
		},
	}

	if src.TzProfiles != nil {
		tasks = append(tasks, func(ctx context.Context) error {
			profiles, err := src.TzProfiles.GetAllProfiles(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch tzprofiles: %w", err)
			}
			ds.TzProfiles = profiles
			return nil
		})
	}

	if src.TezosDomains != nil {
		tasks = append(tasks, func(ctx context.Context) error {
			domains, err := src.TezosDomains.GetReverseRecords(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch tezos domains: %w", err)
			}
			ds.Domains = domains
			return nil
		})
	}

	if err := src.Downloader.Parallel(ctx, tasks...); err != nil {
		return nil, err
	}

	if err := loadLists(ctx, src.Lists, cfg.Lists, ds); err != nil {
		return nil, err
	}

	var err error
	ds.Collaborations, err = records.BuildCollaborations(originations)
	if err != nil {
		return nil, fmt.Errorf("failed to build collaborations: %w", err)
	}
	ds.Signatures, err = records.BuildSignatures(txs[tezos.SOURCE_COLLAB_SIGN])
	if err != nil {
		return nil, fmt.Errorf("failed to build signatures: %w", err)
	}

	ds.Wallets = WalletsByAddress(wallets)
	ds.Mints = txs[tezos.SOURCE_MINT]
	ds.Marketplaces = []Marketplace{
		{
			Name:        "hen",
			Collects:    txs[tezos.SOURCE_HEN_COLLECT],
			Swaps:       txs[tezos.SOURCE_HEN_SWAP],
			CancelSwaps: txs[tezos.SOURCE_HEN_CANCEL_SWAP],
			SwapsBigmap: henSwaps,
		},
		{
			Name:        "teia",
			Collects:    txs[tezos.SOURCE_TEIA_COLLECT],
			Swaps:       txs[tezos.SOURCE_TEIA_SWAP],
			CancelSwaps: txs[tezos.SOURCE_TEIA_CANCEL_SWAP],
			SwapsBigmap: teiaSwaps,
		},
	}

	logger.InfoCtx(ctx, "Fetched dataset",
		zap.Int("mints", len(ds.Mints)),
		zap.Int("collects", len(ds.Collects())),
		zap.Int("wallets", len(ds.Wallets)),
		zap.Int("tzprofiles", len(ds.TzProfiles)),
		zap.Int("domains", len(ds.Domains)),
		zap.Int("collaborations", len(ds.Collaborations)),
		zap.Int("votes", len(ds.Votes)))

	return ds, nil
}

func loadLists(ctx context.Context, loader registry.ListLoader, lists Lists, ds *Dataset) error {
	var err error
	if ds.Restricted, err = loader.AddressList(ctx, lists.Restricted); err != nil {
		return fmt.Errorf("failed to load restricted list: %w", err)
	}
	if ds.WashTraders, err = loader.AddressList(ctx, lists.WashTraders); err != nil {
		return fmt.Errorf("failed to load wash traders list: %w", err)
	}
	if ds.ContributionLevels, err = loader.ContributionLevels(ctx, lists.Contributions); err != nil {
		return fmt.Errorf("failed to load contribution levels: %w", err)
	}
	if ds.Directory, err = loader.Directory(ctx, lists.Directory); err != nil {
		return fmt.Errorf("failed to load username directory: %w", err)
	}
	return nil
}
