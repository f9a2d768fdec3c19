package airdrop

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/teia-community/teia-analytics/internal/adapter"
	"github.com/teia-community/teia-analytics/internal/distribution"
	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/logger"
)

// Entry is the integer amount, token decimals included, dropped to an address
type Entry struct {
	Address string
	Amount  decimal.Decimal
}

// Drop is the ordered token drop of an allocation
type Drop struct {
	Entries []Entry
	Total   decimal.Decimal
}

// BuildDrop converts allocation totals to integer amounts with the given decimals.
// Amounts are truncated and addresses whose amount truncates to zero are left out.
func BuildDrop(result *distribution.Result, decimals int32) Drop {
	drop := Drop{
		Entries: make([]Entry, 0, len(result.Allocations)),
		Total:   decimal.Zero,
	}

	for _, allocation := range result.Allocations {
		amount := decimal.NewFromFloat(allocation.Total).Shift(decimals).Truncate(0)
		if !amount.IsPositive() {
			continue
		}
		drop.Entries = append(drop.Entries, Entry{Address: allocation.Address, Amount: amount})
		drop.Total = drop.Total.Add(amount)
	}

	logger.Info("Built token drop",
		zap.Int("addresses", len(drop.Entries)),
		zap.Int("skipped", len(result.Allocations)-len(drop.Entries)),
		zap.String("total", drop.Total.String()))

	return drop
}

// Addresses returns the drop addresses in drop order
func (d Drop) Addresses() []string {
	addresses := make([]string, len(d.Entries))
	for i, entry := range d.Entries {
		addresses[i] = entry.Address
	}
	return addresses
}

// Amounts returns the address to amount table with amounts as decimal strings
func (d Drop) Amounts() map[string]string {
	amounts := make(map[string]string, len(d.Entries))
	for _, entry := range d.Entries {
		amounts[entry.Address] = entry.Amount.String()
	}
	return amounts
}

// Split partitions data into batches of at most batchSize addresses following the order of addresses.
// It returns the batches and the address to batch index mapping.
func Split[T any](addresses []string, data map[string]T, batchSize int) ([]map[string]T, map[string]int, error) {
	if batchSize <= 0 {
		return nil, nil, fmt.Errorf("invalid batch size %d", batchSize)
	}

	batches := make([]map[string]T, 0, (len(addresses)+batchSize-1)/batchSize)
	mapping := make(map[string]int, len(addresses))

	for start := 0; start < len(addresses); start += batchSize {
		end := min(start+batchSize, len(addresses))
		batch := make(map[string]T, end-start)
		for _, address := range addresses[start:end] {
			value, ok := data[address]
			if !ok {
				return nil, nil, fmt.Errorf("address %s has no data", address)
			}
			if _, dup := mapping[address]; dup {
				return nil, nil, fmt.Errorf("address %s is listed twice", address)
			}
			batch[address] = value
			mapping[address] = len(batches)
		}
		batches = append(batches, batch)
	}

	return batches, mapping, nil
}

// Writer writes drop files as canonical JSON
type Writer struct {
	fs  adapter.FileSystem
	jcs adapter.JCS
}

// NewWriter creates a drop files writer
func NewWriter(fs adapter.FileSystem, jcs adapter.JCS) *Writer {
	return &Writer{fs: fs, jcs: jcs}
}

// WriteDrop writes the address to amount table
func (w *Writer) WriteDrop(path string, drop Drop) error {
	return w.writeJSON(path, drop.Amounts())
}

// WriteBatches writes one file per batch named <prefix>_<index>.json and the mapping.json file in dir
func WriteBatches[T any](w *Writer, dir, prefix string, batches []map[string]T, mapping map[string]int) error {
	if err := w.fs.MkdirAll(dir); err != nil {
		return fmt.Errorf("failed to create batches directory: %w", err)
	}

	for i, batch := range batches {
		name := filepath.Join(dir, fmt.Sprintf("%s_%d.json", prefix, i))
		if err := w.writeJSON(name, batch); err != nil {
			return err
		}
	}

	return w.writeJSON(filepath.Join(dir, "mapping.json"), mapping)
}

func (w *Writer) writeJSON(path string, v interface{}) error {
	data, err := w.jcs.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := w.fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ClaimStatus is the claim progress of a drop
type ClaimStatus struct {
	Claimed         []string
	Unclaimed       []string
	ClaimedAmount   decimal.Decimal
	UnclaimedAmount decimal.Decimal
}

// Claims matches claim transactions senders against the drop
func Claims(drop Drop, claims []domain.Transaction) ClaimStatus {
	claimed := make(map[string]bool, len(claims))
	for _, tx := range claims {
		claimed[tx.Sender.Address] = true
	}

	status := ClaimStatus{
		Claimed:         make([]string, 0),
		Unclaimed:       make([]string, 0),
		ClaimedAmount:   decimal.Zero,
		UnclaimedAmount: decimal.Zero,
	}
	for _, entry := range drop.Entries {
		if claimed[entry.Address] {
			status.Claimed = append(status.Claimed, entry.Address)
			status.ClaimedAmount = status.ClaimedAmount.Add(entry.Amount)
		} else {
			status.Unclaimed = append(status.Unclaimed, entry.Address)
			status.UnclaimedAmount = status.UnclaimedAmount.Add(entry.Amount)
		}
	}
	sort.Strings(status.Claimed)
	sort.Strings(status.Unclaimed)

	return status
}
