package analysis

import (
	"github.com/teia-community/teia-analytics/internal/domain"
)

// Marketplace holds the trading activity of one marketplace with the swaps bigmap it resolves against
type Marketplace struct {
	Name        string
	Collects    []domain.Transaction
	Swaps       []domain.Transaction
	CancelSwaps []domain.Transaction
	SwapsBigmap map[string]domain.Swap
}

// Dataset holds every input of a build in memory
type Dataset struct {
	Mints []domain.Transaction
	// Marketplaces are applied in order
	Marketplaces []Marketplace
	Royalties    map[string]domain.Royalty

	// Token balance snapshot
	TokenBalances     map[string]float64
	TokenBalanceLevel uint64

	// Identity sources
	Directory  map[string]string
	Wallets    map[string]domain.Wallet
	TzProfiles map[string]domain.TzProfile
	Domains    map[string]string
	Registries map[string]string
	// SubjktsMetadata maps decoded H=N registry names to their metadata uri
	SubjktsMetadata map[string]string

	// Community lists
	Restricted         []string
	WashTraders        []string
	ContributionLevels map[string]int

	Votes          []domain.Vote
	Collaborations []domain.Collaboration
	Signatures     map[string][]string
}

// Transactions returns every mint and marketplace transaction of the dataset
func (d *Dataset) Transactions() [][]domain.Transaction {
	txs := [][]domain.Transaction{d.Mints}
	for _, m := range d.Marketplaces {
		txs = append(txs, m.Collects, m.Swaps, m.CancelSwaps)
	}
	return txs
}

// Collects returns the collects of every marketplace
func (d *Dataset) Collects() []domain.Transaction {
	var collects []domain.Transaction
	for _, m := range d.Marketplaces {
		collects = append(collects, m.Collects...)
	}
	return collects
}

// WalletsByAddress indexes wallets by address
func WalletsByAddress(wallets []domain.Wallet) map[string]domain.Wallet {
	indexed := make(map[string]domain.Wallet, len(wallets))
	for _, wallet := range wallets {
		indexed[wallet.Address] = wallet
	}
	return indexed
}
