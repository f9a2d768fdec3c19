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
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/teia-community/teia-analytics/internal/adapter"
	"github.com/teia-community/teia-analytics/internal/airdrop"
	"github.com/teia-community/teia-analytics/internal/analysis"
	"github.com/teia-community/teia-analytics/internal/config"
	"github.com/teia-community/teia-analytics/internal/distribution"
	"github.com/teia-community/teia-analytics/internal/logger"
	"github.com/teia-community/teia-analytics/internal/providers/tezos"
	"github.com/teia-community/teia-analytics/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadTokenDistributionConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "token-distribution",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting token distribution", zap.String("users_file", cfg.UsersFile))

	// Initialize adapters
	fs := adapter.NewFileSystem()

	distributionConfig, err := allocationConfig(cfg.Distribution)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid distribution config", zap.Error(err))
	}

	rows, err := analysis.ReadUsersTable(fs, cfg.UsersFile)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to read users table", zap.Error(err))
	}

	result, err := analysis.Allocate(rows, distributionConfig)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to allocate tokens", zap.Error(err))
	}

	drop, err := analysis.WriteDistribution(fs, adapter.NewJCS(), cfg.OutputDir, result, analysis.DropOptions{
		Decimals:  cfg.Drop.Decimals,
		BatchSize: cfg.Drop.BatchSize,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to write distribution", zap.Error(err))
	}

	if cfg.Drop.ClaimContract != "" {
		reportClaims(ctx, cfg, fs, drop)
	}

	if cfg.Persist {
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
		}
		if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
			logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
		}

		run, err := analysis.PersistAllocations(ctx, store.NewPGStore(db), result, distributionConfig)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to persist allocations", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Persisted run", zap.String("runID", run.ID.String()))
	}

	logger.InfoCtx(ctx, "Token distribution finished",
		zap.String("output_dir", cfg.OutputDir),
		zap.Int("addresses", len(drop.Entries)),
		zap.String("total", drop.Total.String()))
}

// allocationConfig converts the configured totals, weights and scaling table. No weights means the default weights.
func allocationConfig(cfg config.DistributionConfig) (distribution.Config, error) {
	components := distribution.DefaultComponents()
	if len(cfg.Weights) > 0 {
		var err error
		components, err = distribution.ComponentsFromWeights(cfg.Weights)
		if err != nil {
			return distribution.Config{}, err
		}
	}

	return distribution.Config{
		TotalAmount:    cfg.TotalAmount,
		TreasuryAmount: cfg.TreasuryAmount,
		Components:     components,
		Scaling: distribution.ScalingConfig{
			Base:          cfg.Scaling.Base,
			Profiled:      cfg.Scaling.Profiled,
			Verified:      cfg.Scaling.Verified,
			Contributor:   cfg.Scaling.Contributor,
			MinActiveDays: cfg.Scaling.MinActiveDays,
			MinVoteCount:  cfg.Scaling.MinVoteCount,
			MinMoneySpent: cfg.Scaling.MinMoneySpent,
		},
	}, nil
}

// reportClaims logs the claim progress of the drop from the claim transactions of the drop contract
func reportClaims(ctx context.Context, cfg *config.TokenDistributionConfig, fs adapter.FileSystem, drop airdrop.Drop) {
	httpClient := adapter.NewHTTPClient(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, adapter.RetryConfig{
		InitialInterval: cfg.HTTP.InitialInterval,
		MaxInterval:     cfg.HTTP.MaxInterval,
		MaxElapsedTime:  cfg.HTTP.MaxElapsedTime,
	})
	downloader := tezos.NewDownloader(tezos.DownloaderConfig{
		BatchSize:    cfg.TzKT.BatchSize,
		RequestPause: cfg.TzKT.RequestPause,
		ShowProgress: cfg.TzKT.ShowProgress,
	}, tezos.NewTzKTClient(cfg.TzKT.APIURL, httpClient), fs, adapter.NewClock())

	claims, err := downloader.Transactions(ctx, tezos.Source{
		Name:       "drop_claim",
		Contracts:  []string{cfg.Drop.ClaimContract},
		Entrypoint: cfg.Drop.ClaimEntrypoint,
	}, 0)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to download claims: %w", err), zap.String("contract", cfg.Drop.ClaimContract))
		return
	}

	status := airdrop.Claims(drop, claims)
	logger.InfoCtx(ctx, "Drop claims",
		zap.Int("claimed", len(status.Claimed)),
		zap.Int("unclaimed", len(status.Unclaimed)),
		zap.String("claimed_amount", status.ClaimedAmount.String()),
		zap.String("unclaimed_amount", status.UnclaimedAmount.String()))
}
