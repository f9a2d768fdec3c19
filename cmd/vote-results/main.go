package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/teia-community/teia-analytics/internal/adapter"
	"github.com/teia-community/teia-analytics/internal/analysis"
	"github.com/teia-community/teia-analytics/internal/config"
	"github.com/teia-community/teia-analytics/internal/logger"
	"github.com/teia-community/teia-analytics/internal/providers/tezos"
	"github.com/teia-community/teia-analytics/internal/records"
	"github.com/teia-community/teia-analytics/internal/votes"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	pollID     = flag.String("poll", "", "Poll id, overrides the configured poll")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadVoteResultsConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *pollID != "" {
		cfg.Poll = *pollID
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "vote-results",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	if cfg.Poll == "" {
		logger.FatalCtx(ctx, "No poll configured")
	}
	ctx = logger.WithFields(ctx, zap.String("poll", cfg.Poll))
	logger.InfoCtx(ctx, "Starting vote results")

	// Initialize adapters
	fs := adapter.NewFileSystem()
	httpClient := adapter.NewHTTPClient(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, adapter.RetryConfig{
		InitialInterval: cfg.HTTP.InitialInterval,
		MaxInterval:     cfg.HTTP.MaxInterval,
		MaxElapsedTime:  cfg.HTTP.MaxElapsedTime,
	})

	// Votes change while a poll is open so they are never read from the cache
	downloader := tezos.NewDownloader(tezos.DownloaderConfig{
		BatchSize:    cfg.TzKT.BatchSize,
		RequestPause: cfg.TzKT.RequestPause,
		ShowProgress: cfg.TzKT.ShowProgress,
	}, tezos.NewTzKTClient(cfg.TzKT.APIURL, httpClient), fs, adapter.NewClock())

	poll, err := votes.FetchPoll(ctx, httpClient, cfg.IPFSGateway, cfg.Poll)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to fetch poll", zap.Error(err))
	}

	keys, err := downloader.BigmapKeys(ctx, []int64{cfg.VotesBigmap}, 0)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to download votes", zap.Error(err))
	}

	var allowed []string
	if cfg.UsersFile != "" {
		rows, err := analysis.ReadUsersTable(fs, cfg.UsersFile)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to read users table", zap.Error(err))
		}
		for _, row := range rows {
			if !row.Restricted {
				allowed = append(allowed, row.Address)
			}
		}
	}

	result := votes.Tally(poll, records.BuildVotes(keys), allowed)
	for _, option := range result.Options {
		logger.InfoCtx(ctx, "Poll option",
			zap.String("option", option.Name),
			zap.Int("votes", option.Votes),
			zap.Float64("percentage", option.Percentage))
	}

	logger.InfoCtx(ctx, "Vote results",
		zap.String("question", poll.Question),
		zap.Int("valid", result.Valid),
		zap.Strings("rejected", result.Rejected),
		zap.Strings("invalid", result.Invalid))
}
