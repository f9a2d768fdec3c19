package tezos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/teia-community/teia-analytics/internal/adapter"
	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/logger"
)

const (
	DEFAULT_WORKER_POOL_SIZE = 4
	DEFAULT_REQUEST_PAUSE    = time.Second
)

// DownloaderConfig configures the paging downloader
type DownloaderConfig struct {
	// CacheDir keeps every complete page as a json file, empty disables the cache
	CacheDir string
	// BatchSize is the page size of every request
	BatchSize int
	// RequestPause is the pause after each downloaded page
	RequestPause time.Duration
	// WorkerPoolSize bounds the number of sources downloaded at the same time
	WorkerPoolSize int
	// ShowProgress renders a progress bar per source on stderr
	ShowProgress bool
}

// Downloader downloads complete TzKT lists page by page
//
//go:generate mockgen -source=downloader.go -destination=../../mocks/downloader.go -package=mocks -mock_names=Downloader=MockDownloader
type Downloader interface {
	// Transactions downloads every applied transaction of the source, contract after contract
	Transactions(ctx context.Context, source Source, maxLevel uint64) ([]domain.Transaction, error)

	// BigmapKeys downloads every key of the bigmaps, at the given level when it is not 0
	BigmapKeys(ctx context.Context, bigmapIDs []int64, level uint64) ([]domain.BigmapKey, error)

	// Originations downloads every applied origination made by sender
	Originations(ctx context.Context, sender string) ([]domain.Origination, error)

	// Wallets downloads every account
	Wallets(ctx context.Context) ([]domain.Wallet, error)

	// Parallel runs independent downloads on the worker pool and returns the first error
	Parallel(ctx context.Context, tasks ...func(ctx context.Context) error) error
}

type downloader struct {
	config DownloaderConfig
	client TzKTClient
	fs     adapter.FileSystem
	clock  adapter.Clock
}

// NewDownloader creates a new paging downloader
func NewDownloader(config DownloaderConfig, client TzKTClient, fs adapter.FileSystem, clock adapter.Clock) Downloader {
	if config.BatchSize <= 0 || config.BatchSize > MAX_PAGE_SIZE {
		config.BatchSize = MAX_PAGE_SIZE
	}
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = DEFAULT_WORKER_POOL_SIZE
	}

	return &downloader{
		config: config,
		client: client,
		fs:     fs,
		clock:  clock,
	}
}

// Transactions downloads every applied transaction of the source, contract after contract
func (d *downloader) Transactions(ctx context.Context, source Source, maxLevel uint64) ([]domain.Transaction, error) {
	all := make([]domain.Transaction, 0)
	for _, contract := range source.Contracts {
		query := TransactionQuery{Target: contract, Entrypoint: source.Entrypoint, MaxLevel: maxLevel}
		prefix := fmt.Sprintf("%s_transactions_%s", source.Name, contract)
		if maxLevel > 0 {
			prefix = fmt.Sprintf("%s_%d", prefix, maxLevel)
		}

		txs, err := downloadPages(ctx, d, prefix, func(ctx context.Context, offset, limit int) ([]domain.Transaction, error) {
			return d.client.GetTransactions(ctx, query, offset, limit)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to download %s transactions: %w", source.Name, err)
		}
		all = append(all, txs...)
	}

	logger.Info("Downloaded transactions", zap.String("source", source.Name), zap.Int("count", len(all)))
	return all, nil
}

// BigmapKeys downloads every key of the bigmaps, at the given level when it is not 0
func (d *downloader) BigmapKeys(ctx context.Context, bigmapIDs []int64, level uint64) ([]domain.BigmapKey, error) {
	all := make([]domain.BigmapKey, 0)
	for _, id := range bigmapIDs {
		prefix := fmt.Sprintf("bigmap_keys_%d", id)
		if level > 0 {
			prefix = fmt.Sprintf("%s_%d", prefix, level)
		}

		keys, err := downloadPages(ctx, d, prefix, func(ctx context.Context, offset, limit int) ([]domain.BigmapKey, error) {
			return d.client.GetBigmapKeys(ctx, id, level, offset, limit)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to download bigmap %d: %w", id, err)
		}
		all = append(all, keys...)
	}

	logger.Info("Downloaded bigmap keys", zap.Int64s("bigmaps", bigmapIDs), zap.Int("count", len(all)))
	return all, nil
}

// Originations downloads every applied origination made by sender
func (d *downloader) Originations(ctx context.Context, sender string) ([]domain.Origination, error) {
	originations, err := downloadPages(ctx, d, "originations_"+sender, func(ctx context.Context, offset, limit int) ([]domain.Origination, error) {
		return d.client.GetOriginations(ctx, sender, offset, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download originations: %w", err)
	}

	logger.Info("Downloaded originations", zap.String("sender", sender), zap.Int("count", len(originations)))
	return originations, nil
}

// Wallets downloads every account
func (d *downloader) Wallets(ctx context.Context) ([]domain.Wallet, error) {
	wallets, err := downloadPages(ctx, d, "wallets", d.client.GetAccounts)
	if err != nil {
		return nil, fmt.Errorf("failed to download wallets: %w", err)
	}

	logger.Info("Downloaded wallets", zap.Int("count", len(wallets)))
	return wallets, nil
}

// Parallel runs independent downloads on the worker pool and returns the first error
func (d *downloader) Parallel(ctx context.Context, tasks ...func(ctx context.Context) error) error {
	pool := pond.NewPool(d.config.WorkerPoolSize, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for _, task := range tasks {
		group.SubmitErr(func() error {
			return task(ctx)
		})
	}

	return group.Wait()
}

type pageFetcher[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// downloadPages pages through a list until a short page. Complete pages are cached
// and read back on later runs; the last short page is always downloaded again.
func downloadPages[T any](ctx context.Context, d *downloader, prefix string, fetch pageFetcher[T]) ([]T, error) {
	bar := d.progressBar(prefix)
	defer func() {
		_ = bar.Finish()
	}()

	all := make([]T, 0)
	for offset := 0; ; offset += d.config.BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cacheFile := d.cacheFile(prefix, offset)
		page, cached, err := readCachedPage[T](d, cacheFile)
		if err != nil {
			return nil, err
		}

		if !cached {
			page, err = fetch(ctx, offset, d.config.BatchSize)
			if err != nil {
				return nil, err
			}

			if len(page) == d.config.BatchSize {
				if err := writeCachedPage(d, cacheFile, page); err != nil {
					return nil, err
				}
			}

			if d.config.RequestPause > 0 {
				d.clock.Sleep(d.config.RequestPause)
			}
		}

		all = append(all, page...)
		_ = bar.Add(len(page))

		if len(page) < d.config.BatchSize {
			return all, nil
		}
	}
}

func (d *downloader) cacheFile(prefix string, offset int) string {
	if d.config.CacheDir == "" {
		return ""
	}
	return filepath.Join(d.config.CacheDir, fmt.Sprintf("%s_%d-%d.json", prefix, offset, offset+d.config.BatchSize))
}

func readCachedPage[T any](d *downloader, name string) ([]T, bool, error) {
	if name == "" {
		return nil, false, nil
	}

	exists, err := d.fs.Exists(name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check cached page %s: %w", name, err)
	}
	if !exists {
		return nil, false, nil
	}

	data, err := d.fs.ReadFile(name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached page %s: %w", name, err)
	}

	var page []T
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached page %s: %w", name, err)
	}

	logger.Debug("Read page from cache", zap.String("file", name), zap.Int("count", len(page)))
	return page, true, nil
}

func writeCachedPage[T any](d *downloader, name string, page []T) error {
	if name == "" {
		return nil
	}

	if err := d.fs.MkdirAll(d.config.CacheDir); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to encode page %s: %w", name, err)
	}

	if err := d.fs.WriteFile(name, data); err != nil {
		return fmt.Errorf("failed to write cached page %s: %w", name, err)
	}
	return nil
}

func (d *downloader) progressBar(description string) *progressbar.ProgressBar {
	var writer io.Writer = io.Discard
	if d.config.ShowProgress {
		writer = os.Stderr
	}

	return progressbar.NewOptions64(
		-1,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("records"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(d.config.ShowProgress),
	)
}
