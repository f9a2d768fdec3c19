package tezosdomains

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/teia-community/teia-analytics/internal/adapter"
	"github.com/teia-community/teia-analytics/internal/logger"
)

const (
	// API_ENDPOINT is the Tezos Domains GraphQL endpoint
	API_ENDPOINT = "https://api.tezos.domains/graphql"

	DEFAULT_PAGE_SIZE = 1000
)

const reverseRecordsQuery = `query ReverseRecords($first: Int!, $after: String) {
  reverseRecords(first: $first, after: $after, where: {domain: {isNull: false}}, order: {field: ADDRESS, direction: ASC}) {
    pageInfo {
      hasNextPage
      endCursor
    }
    items {
      address
      domain {
        name
      }
    }
  }
}`

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query         string      `json:"query"`
	Variables     interface{} `json:"variables"`
	OperationName string      `json:"operationName"`
}

// ReverseRecord maps an address to its primary domain
type ReverseRecord struct {
	Address string `json:"address"`
	Domain  *struct {
		Name string `json:"name"`
	} `json:"domain"`
}

// ReverseRecordsResponse represents the GraphQL response of the reverse records query
type ReverseRecordsResponse struct {
	Data struct {
		ReverseRecords struct {
			PageInfo struct {
				HasNextPage bool    `json:"hasNextPage"`
				EndCursor   *string `json:"endCursor"`
			} `json:"pageInfo"`
			Items []ReverseRecord `json:"items"`
		} `json:"reverseRecords"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Client defines the interface for Tezos Domains client operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../../mocks/tezosdomains_client.go -package=mocks -mock_names=Client=MockTezosDomainsClient
type Client interface {
	// GetReverseRecords fetches the primary domain of every address that has one
	GetReverseRecords(ctx context.Context) (map[string]string, error)
}

// TezosDomainsClient implements the Tezos Domains client
type TezosDomainsClient struct {
	httpClient adapter.HTTPClient
	apiURL     string
	pageSize   int
}

// NewClient creates a new Tezos Domains client
func NewClient(httpClient adapter.HTTPClient, apiURL string, pageSize int) Client {
	if pageSize <= 0 {
		pageSize = DEFAULT_PAGE_SIZE
	}
	return &TezosDomainsClient{
		httpClient: httpClient,
		apiURL:     apiURL,
		pageSize:   pageSize,
	}
}

// GetReverseRecords fetches the primary domain of every address that has one
func (c *TezosDomainsClient) GetReverseRecords(ctx context.Context) (map[string]string, error) {
	domains := make(map[string]string)

	var after *string
	for {
		request := GraphQLRequest{
			Query:         reverseRecordsQuery,
			Variables:     map[string]interface{}{"first": c.pageSize, "after": after},
			OperationName: "ReverseRecords",
		}

		requestBody, err := json.Marshal(request)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal GraphQL request: %w", err)
		}

		responseBody, err := c.httpClient.Post(ctx, c.apiURL, "application/json", requestBody)
		if err != nil {
			return nil, fmt.Errorf("failed to call Tezos Domains API: %w", err)
		}

		var response ReverseRecordsResponse
		if err := json.Unmarshal(responseBody, &response); err != nil {
			return nil, fmt.Errorf("failed to unmarshal Tezos Domains response: %w", err)
		}
		if len(response.Errors) > 0 {
			return nil, fmt.Errorf("tezos domains query failed: %s", response.Errors[0].Message)
		}

		records := response.Data.ReverseRecords
		for _, record := range records.Items {
			if record.Domain != nil && record.Domain.Name != "" {
				domains[record.Address] = record.Domain.Name
			}
		}

		if !records.PageInfo.HasNextPage || records.PageInfo.EndCursor == nil {
			break
		}
		after = records.PageInfo.EndCursor
	}

	logger.Info("Downloaded tezos domains", zap.Int("count", len(domains)))
	return domains, nil
}
