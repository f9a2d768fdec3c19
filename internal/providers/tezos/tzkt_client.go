package tezos

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/teia-community/teia-analytics/internal/adapter"
	"github.com/teia-community/teia-analytics/internal/domain"
)

// MAX_PAGE_SIZE is the largest page the TzKT API serves
const MAX_PAGE_SIZE = 10000

// TransactionQuery filters applied transactions of one contract entrypoint
type TransactionQuery struct {
	Target     string
	Entrypoint string
	// MaxLevel is the last block level to include, 0 means no limit
	MaxLevel uint64
}

// TzKTClient defines an interface for TzKT API client operations to enable mocking
//
//go:generate mockgen -source=tzkt_client.go -destination=../../mocks/tzkt_client.go -package=mocks -mock_names=TzKTClient=MockTzKTClient
type TzKTClient interface {
	// GetTransactions returns a page of applied transactions sorted by id
	GetTransactions(ctx context.Context, query TransactionQuery, offset, limit int) ([]domain.Transaction, error)

	// GetBigmapKeys returns a page of bigmap keys, at the given level when it is not 0
	GetBigmapKeys(ctx context.Context, bigmapID int64, level uint64, offset, limit int) ([]domain.BigmapKey, error)

	// GetOriginations returns a page of applied originations made by sender
	GetOriginations(ctx context.Context, sender string, offset, limit int) ([]domain.Origination, error)

	// GetAccounts returns a page of accounts sorted by first activity
	GetAccounts(ctx context.Context, offset, limit int) ([]domain.Wallet, error)
}

// tzktClient is the concrete implementation of TzKTClient
type tzktClient struct {
	baseURL    string
	httpClient adapter.HTTPClient
}

// NewTzKTClient creates a new TzKT API client
func NewTzKTClient(baseURL string, httpClient adapter.HTTPClient) TzKTClient {
	return &tzktClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// GetTransactions returns a page of applied transactions sorted by id
func (c *tzktClient) GetTransactions(ctx context.Context, query TransactionQuery, offset, limit int) ([]domain.Transaction, error) {
	params := pageParams(offset, limit)
	params.Set("target", query.Target)
	params.Set("entrypoint", query.Entrypoint)
	params.Set("status", "applied")
	params.Set("sort.asc", "id")
	if query.MaxLevel > 0 {
		params.Set("level.le", strconv.FormatUint(query.MaxLevel, 10))
	}

	var txs []domain.Transaction
	if err := c.httpClient.Get(ctx, c.endpoint("/v1/operations/transactions", params), &txs); err != nil {
		return nil, fmt.Errorf("failed to get %s transactions of %s: %w", query.Entrypoint, query.Target, err)
	}

	return txs, nil
}

// GetBigmapKeys returns a page of bigmap keys, at the given level when it is not 0
func (c *tzktClient) GetBigmapKeys(ctx context.Context, bigmapID int64, level uint64, offset, limit int) ([]domain.BigmapKey, error) {
	path := fmt.Sprintf("/v1/bigmaps/%d/keys", bigmapID)
	if level > 0 {
		path = fmt.Sprintf("/v1/bigmaps/%d/historical_keys/%d", bigmapID, level)
	}

	params := pageParams(offset, limit)
	params.Set("sort.asc", "id")

	var keys []domain.BigmapKey
	if err := c.httpClient.Get(ctx, c.endpoint(path, params), &keys); err != nil {
		return nil, fmt.Errorf("failed to get keys of bigmap %d: %w", bigmapID, err)
	}

	return keys, nil
}

// GetOriginations returns a page of applied originations made by sender
func (c *tzktClient) GetOriginations(ctx context.Context, sender string, offset, limit int) ([]domain.Origination, error) {
	params := pageParams(offset, limit)
	params.Set("sender", sender)
	params.Set("status", "applied")
	params.Set("sort.asc", "id")

	var originations []domain.Origination
	if err := c.httpClient.Get(ctx, c.endpoint("/v1/operations/originations", params), &originations); err != nil {
		return nil, fmt.Errorf("failed to get originations of %s: %w", sender, err)
	}

	return originations, nil
}

// GetAccounts returns a page of accounts sorted by first activity
func (c *tzktClient) GetAccounts(ctx context.Context, offset, limit int) ([]domain.Wallet, error) {
	params := pageParams(offset, limit)
	params.Set("sort.asc", "firstActivity")

	var wallets []domain.Wallet
	if err := c.httpClient.Get(ctx, c.endpoint("/v1/accounts", params), &wallets); err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	return wallets, nil
}

func (c *tzktClient) endpoint(path string, params url.Values) string {
	return c.baseURL + path + "?" + params.Encode()
}

func pageParams(offset, limit int) url.Values {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))
	return params
}
