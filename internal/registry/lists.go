package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/teia-community/teia-analytics/internal/adapter"
	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/logger"
)

// ListLoader loads the address lists used to flag and enrich users.
// A location is a local file path or an http(s) URL; an empty location yields an empty list.
//
//go:generate mockgen -source=lists.go -destination=../mocks/list_loader.go -package=mocks -mock_names=ListLoader=MockListLoader
type ListLoader interface {
	// AddressList loads a json array of addresses, deduplicated and sorted
	AddressList(ctx context.Context, location string) ([]string, error)

	// ContributionLevels loads a json object mapping addresses to contribution levels
	ContributionLevels(ctx context.Context, location string) (map[string]int, error)

	// Directory loads a json object mapping addresses to usernames
	Directory(ctx context.Context, location string) (map[string]string, error)
}

type listLoader struct {
	fs         adapter.FileSystem
	httpClient adapter.HTTPClient
}

// NewListLoader creates a new list loader
func NewListLoader(fs adapter.FileSystem, httpClient adapter.HTTPClient) ListLoader {
	return &listLoader{
		fs:         fs,
		httpClient: httpClient,
	}
}

// AddressList loads a json array of addresses, deduplicated and sorted
func (l *listLoader) AddressList(ctx context.Context, location string) ([]string, error) {
	var raw []string
	if err := l.load(ctx, location, &raw); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(raw))
	addresses := make([]string, 0, len(raw))
	for _, address := range raw {
		address = strings.TrimSpace(address)
		if !validAddress(location, address) || seen[address] {
			continue
		}
		seen[address] = true
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)

	return addresses, nil
}

// ContributionLevels loads a json object mapping addresses to contribution levels
func (l *listLoader) ContributionLevels(ctx context.Context, location string) (map[string]int, error) {
	raw := make(map[string]int)
	if err := l.load(ctx, location, &raw); err != nil {
		return nil, err
	}

	levels := make(map[string]int, len(raw))
	for address, level := range raw {
		if level < 0 {
			return nil, fmt.Errorf("%w: negative contribution level %d for %s", domain.ErrInvalidRecord, level, address)
		}
		if validAddress(location, address) && level > 0 {
			levels[address] = level
		}
	}

	return levels, nil
}

// Directory loads a json object mapping addresses to usernames
func (l *listLoader) Directory(ctx context.Context, location string) (map[string]string, error) {
	raw := make(map[string]string)
	if err := l.load(ctx, location, &raw); err != nil {
		return nil, err
	}

	directory := make(map[string]string, len(raw))
	for address, username := range raw {
		username = strings.TrimSpace(username)
		if validAddress(location, address) && username != "" {
			directory[address] = username
		}
	}

	return directory, nil
}

func (l *listLoader) load(ctx context.Context, location string, v interface{}) error {
	if location == "" {
		return nil
	}

	var data []byte
	var err error
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		data, err = l.httpClient.GetRaw(ctx, location)
	} else {
		data, err = l.fs.ReadFile(location)
	}
	if err != nil {
		return fmt.Errorf("failed to read list %s: %w", location, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse list %s: %w", location, err)
	}

	return nil
}

func validAddress(location, address string) bool {
	if domain.IsUserAddress(address) || domain.IsContractAddress(address) {
		return true
	}
	logger.Warn("Ignoring invalid address", zap.String("list", location), zap.String("address", address))
	return false
}
