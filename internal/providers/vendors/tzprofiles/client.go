package tzprofiles

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/teia-community/teia-analytics/internal/adapter"
	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/logger"
)

const (
	// API_ENDPOINT is the teztok GraphQL endpoint indexing tzprofiles
	API_ENDPOINT = "https://api.teztok.com/v1/graphql"

	DEFAULT_PAGE_SIZE = 10000
)

const profilesQuery = `query TzProfiles($limit: Int!, $offset: Int!) {
  tzprofiles(distinct_on: account, order_by: {account: asc}, limit: $limit, offset: $offset) {
    account
    contract
    alias
    description
    discord
    domain_name
    ethereum
    github
    logo
    twitter
    website
  }
}`

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query         string      `json:"query"`
	Variables     interface{} `json:"variables"`
	OperationName string      `json:"operationName"`
}

// GraphQLError is an error reported in a GraphQL response
type GraphQLError struct {
	Message string `json:"message"`
}

// ProfilesResponse represents the GraphQL response of the tzprofiles query
type ProfilesResponse struct {
	Data struct {
		TzProfiles []domain.TzProfile `json:"tzprofiles"`
	} `json:"data"`
	Errors []GraphQLError `json:"errors"`
}

// Client defines the interface for tzprofiles client operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../../mocks/tzprofiles_client.go -package=mocks -mock_names=Client=MockTzProfilesClient
type Client interface {
	// GetProfiles fetches a page of profiles ordered by account
	GetProfiles(ctx context.Context, offset, limit int) ([]domain.TzProfile, error)

	// GetAllProfiles fetches every profile keyed by account
	GetAllProfiles(ctx context.Context) (map[string]domain.TzProfile, error)
}

// TzProfilesClient implements the tzprofiles client
type TzProfilesClient struct {
	httpClient adapter.HTTPClient
	apiURL     string
	pageSize   int
}

// NewClient creates a new tzprofiles client
func NewClient(httpClient adapter.HTTPClient, apiURL string, pageSize int) Client {
	if pageSize <= 0 {
		pageSize = DEFAULT_PAGE_SIZE
	}
	return &TzProfilesClient{
		httpClient: httpClient,
		apiURL:     apiURL,
		pageSize:   pageSize,
	}
}

// GetProfiles fetches a page of profiles ordered by account
func (c *TzProfilesClient) GetProfiles(ctx context.Context, offset, limit int) ([]domain.TzProfile, error) {
	request := GraphQLRequest{
		Query:         profilesQuery,
		Variables:     map[string]int{"limit": limit, "offset": offset},
		OperationName: "TzProfiles",
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal GraphQL request: %w", err)
	}

	responseBody, err := c.httpClient.Post(ctx, c.apiURL, "application/json", requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to call tzprofiles API: %w", err)
	}

	var response ProfilesResponse
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tzprofiles response: %w", err)
	}

	if len(response.Errors) > 0 {
		messages := make([]string, len(response.Errors))
		for i, e := range response.Errors {
			messages[i] = e.Message
		}
		return nil, fmt.Errorf("tzprofiles query failed: %s", strings.Join(messages, "; "))
	}

	return response.Data.TzProfiles, nil
}

// GetAllProfiles fetches every profile keyed by account
func (c *TzProfilesClient) GetAllProfiles(ctx context.Context) (map[string]domain.TzProfile, error) {
	profiles := make(map[string]domain.TzProfile)
	for offset := 0; ; offset += c.pageSize {
		page, err := c.GetProfiles(ctx, offset, c.pageSize)
		if err != nil {
			return nil, err
		}

		for _, profile := range page {
			profiles[profile.Account] = profile
		}

		if len(page) < c.pageSize {
			break
		}
	}

	logger.Info("Downloaded tzprofiles", zap.Int("count", len(profiles)))
	return profiles, nil
}
