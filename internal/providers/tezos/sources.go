package tezos

import (
	"fmt"
	"sort"

	"github.com/teia-community/teia-analytics/internal/domain"
)

// Source is a named set of contract entrypoints downloaded as one transaction list
type Source struct {
	Name       string
	Contracts  []string
	Entrypoint string
}

// Transaction source names
const (
	SOURCE_MINT             = "mint"
	SOURCE_HEN_COLLECT      = "hen_collect"
	SOURCE_HEN_SWAP         = "hen_swap"
	SOURCE_HEN_CANCEL_SWAP  = "hen_cancel_swap"
	SOURCE_TEIA_COLLECT     = "teia_collect"
	SOURCE_TEIA_SWAP        = "teia_swap"
	SOURCE_TEIA_CANCEL_SWAP = "teia_cancel_swap"
	SOURCE_COLLAB_SIGN      = "collab_sign"
)

var henMarketplaces = []string{domain.HEN_MINTER_CONTRACT, domain.HEN_MARKETPLACE_CONTRACT}

var sources = map[string]Source{
	SOURCE_MINT:             {Name: SOURCE_MINT, Contracts: []string{domain.OBJKT_CONTRACT}, Entrypoint: "mint"},
	SOURCE_HEN_COLLECT:      {Name: SOURCE_HEN_COLLECT, Contracts: henMarketplaces, Entrypoint: "collect"},
	SOURCE_HEN_SWAP:         {Name: SOURCE_HEN_SWAP, Contracts: henMarketplaces, Entrypoint: "swap"},
	SOURCE_HEN_CANCEL_SWAP:  {Name: SOURCE_HEN_CANCEL_SWAP, Contracts: henMarketplaces, Entrypoint: "cancel_swap"},
	SOURCE_TEIA_COLLECT:     {Name: SOURCE_TEIA_COLLECT, Contracts: []string{domain.TEIA_MARKETPLACE_CONTRACT}, Entrypoint: "collect"},
	SOURCE_TEIA_SWAP:        {Name: SOURCE_TEIA_SWAP, Contracts: []string{domain.TEIA_MARKETPLACE_CONTRACT}, Entrypoint: "swap"},
	SOURCE_TEIA_CANCEL_SWAP: {Name: SOURCE_TEIA_CANCEL_SWAP, Contracts: []string{domain.TEIA_MARKETPLACE_CONTRACT}, Entrypoint: "cancel_swap"},
	SOURCE_COLLAB_SIGN:      {Name: SOURCE_COLLAB_SIGN, Contracts: []string{domain.COLLAB_SIGNATURES_CONTRACT}, Entrypoint: "sign"},
}

// LookupSource returns the transaction source with the given name
func LookupSource(name string) (Source, error) {
	source, ok := sources[name]
	if !ok {
		return Source{}, fmt.Errorf("%w: %s", domain.ErrUnknownTransactionType, name)
	}
	return source, nil
}

// SourceNames returns the known transaction source names, sorted
func SourceNames() []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
