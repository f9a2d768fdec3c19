package records

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/teia-community/teia-analytics/internal/domain"
)

// Mint is the minimal view of a mint transaction
type Mint struct {
	Creator   string
	TokenID   string
	Timestamp string
}

// Collect is the minimal view of a collect transaction
type Collect struct {
	SwapID      string
	Collector   string
	Amount      int64
	Timestamp   string
	Marketplace string
}

// ResolvedCollect is a collect joined with its swap and royalty entries
type ResolvedCollect struct {
	Collect
	TokenID         string
	Creator         string
	Seller          string
	RoyaltyFraction float64
	PaidAmount      float64
}

// Swap is the minimal view of a swap transaction
type Swap struct {
	Seller      string
	TokenID     string
	Timestamp   string
	Marketplace string
}

// CancelSwap is the minimal view of a cancel_swap transaction
type CancelSwap struct {
	Sender      string
	SwapID      string
	Timestamp   string
	Marketplace string
}

// NormalizeMint extracts the creator and token id of a mint.
// The creator is the minted token owner when present so collaboration contracts keep their mints,
// otherwise the initiator, otherwise the sender.
func NormalizeMint(tx domain.Transaction) (Mint, error) {
	value, err := parameterValue(tx)
	if err != nil {
		return Mint{}, err
	}

	tokenID := value.Get("token_id")
	if !tokenID.Exists() {
		return Mint{}, fmt.Errorf("%w: mint %d has no token_id", domain.ErrInvalidRecord, tx.ID)
	}

	creator := value.Get("address").String()
	if creator == "" && tx.Initiator != nil {
		creator = tx.Initiator.Address
	}
	if creator == "" {
		creator = tx.Sender.Address
	}

	return Mint{
		Creator:   creator,
		TokenID:   tokenID.String(),
		Timestamp: tx.Timestamp,
	}, nil
}

// NormalizeCollect extracts the swap id, collector and paid amount of a collect
func NormalizeCollect(tx domain.Transaction) (Collect, error) {
	value, err := parameterValue(tx)
	if err != nil {
		return Collect{}, err
	}

	swapID, ok := scalarOrField(value, "swap_id")
	if !ok {
		return Collect{}, fmt.Errorf("%w: collect %d has no swap_id", domain.ErrInvalidRecord, tx.ID)
	}

	return Collect{
		SwapID:      swapID,
		Collector:   tx.Sender.Address,
		Amount:      tx.Amount,
		Timestamp:   tx.Timestamp,
		Marketplace: tx.Target.Address,
	}, nil
}

// NormalizeSwap extracts the seller and swapped token id of a swap
func NormalizeSwap(tx domain.Transaction) (Swap, error) {
	value, err := parameterValue(tx)
	if err != nil {
		return Swap{}, err
	}

	tokenID := value.Get("objkt_id")
	if !tokenID.Exists() {
		tokenID = value.Get("token_id")
	}
	if !tokenID.Exists() {
		return Swap{}, fmt.Errorf("%w: swap %d has no objkt_id", domain.ErrInvalidRecord, tx.ID)
	}

	return Swap{
		Seller:      tx.Sender.Address,
		TokenID:     tokenID.String(),
		Timestamp:   tx.Timestamp,
		Marketplace: tx.Target.Address,
	}, nil
}

// NormalizeCancelSwap extracts the swap id of a cancel_swap
func NormalizeCancelSwap(tx domain.Transaction) (CancelSwap, error) {
	value, err := parameterValue(tx)
	if err != nil {
		return CancelSwap{}, err
	}

	swapID, ok := scalarOrField(value, "swap_id")
	if !ok {
		return CancelSwap{}, fmt.Errorf("%w: cancel_swap %d has no swap_id", domain.ErrInvalidRecord, tx.ID)
	}

	return CancelSwap{
		Sender:      tx.Sender.Address,
		SwapID:      swapID,
		Timestamp:   tx.Timestamp,
		Marketplace: tx.Target.Address,
	}, nil
}

// ResolveCollect joins a collect with the swaps and royalties bigmaps.
// A missing swap or royalty entry means the bigmaps and transactions are out of sync and is returned as an error.
func ResolveCollect(c Collect, swaps map[string]domain.Swap, royalties map[string]domain.Royalty) (ResolvedCollect, error) {
	swap, ok := swaps[c.SwapID]
	if !ok {
		return ResolvedCollect{}, fmt.Errorf("%w: swap id %s", domain.ErrSwapNotFound, c.SwapID)
	}

	royalty, ok := royalties[swap.ObjktID]
	if !ok {
		return ResolvedCollect{}, fmt.Errorf("%w: objkt id %s", domain.ErrRoyaltyNotFound, swap.ObjktID)
	}

	return ResolvedCollect{
		Collect:         c,
		TokenID:         swap.ObjktID,
		Creator:         royalty.Issuer,
		Seller:          swap.Issuer,
		RoyaltyFraction: float64(royalty.Royalties) / domain.ROYALTIES_DENOMINATOR,
		PaidAmount:      float64(c.Amount) / domain.MUTEZ_PER_TEZ,
	}, nil
}

// Addresses returns the distinct creator, seller and collector addresses in that order
func (r ResolvedCollect) Addresses() []string {
	addresses := make([]string, 0, 3)
	seen := make(map[string]bool, 3)
	for _, address := range []string{r.Creator, r.Seller, r.Collector} {
		if address == "" || seen[address] {
			continue
		}
		seen[address] = true
		addresses = append(addresses, address)
	}
	return addresses
}

func parameterValue(tx domain.Transaction) (gjson.Result, error) {
	if tx.Parameter == nil || len(tx.Parameter.Value) == 0 {
		return gjson.Result{}, fmt.Errorf("%w: transaction %d has no parameter", domain.ErrInvalidRecord, tx.ID)
	}
	return gjson.ParseBytes(tx.Parameter.Value), nil
}

// scalarOrField reads a value that is either a bare scalar or an object holding it under field
func scalarOrField(value gjson.Result, field string) (string, bool) {
	if value.IsObject() {
		v := value.Get(field)
		if !v.Exists() {
			return "", false
		}
		return v.String(), true
	}

	switch value.Type {
	case gjson.String, gjson.Number:
		return value.String(), true
	default:
		return "", false
	}
}
