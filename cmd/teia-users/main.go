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
	"github.com/teia-community/teia-analytics/internal/analysis"
	"github.com/teia-community/teia-analytics/internal/config"
	"github.com/teia-community/teia-analytics/internal/logger"
	"github.com/teia-community/teia-analytics/internal/providers/tezos"
	"github.com/teia-community/teia-analytics/internal/providers/vendors/tezosdomains"
	"github.com/teia-community/teia-analytics/internal/providers/vendors/tzprofiles"
	"github.com/teia-community/teia-analytics/internal/registry"
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
	cfg, err := config.LoadTeiaUsersConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Cancel the downloads on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "teia-users",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Teia users analysis")

	statsFrom, err := time.Parse(time.DateOnly, cfg.StatsFrom)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid stats_from", zap.Error(err), zap.String("stats_from", cfg.StatsFrom))
	}

	// Initialize adapters
	fs := adapter.NewFileSystem()
	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, adapter.RetryConfig{
		InitialInterval: cfg.HTTP.InitialInterval,
		MaxInterval:     cfg.HTTP.MaxInterval,
		MaxElapsedTime:  cfg.HTTP.MaxElapsedTime,
	})

	// Initialize providers
	tzktClient := tezos.NewTzKTClient(cfg.TzKT.APIURL, httpClient)
	downloader := tezos.NewDownloader(tezos.DownloaderConfig{
		CacheDir:       cfg.TzKT.CacheDir,
		BatchSize:      cfg.TzKT.BatchSize,
		RequestPause:   cfg.TzKT.RequestPause,
		WorkerPoolSize: cfg.Worker.WorkerPoolSize,
		ShowProgress:   cfg.TzKT.ShowProgress,
	}, tzktClient, fs, clock)

	sources := analysis.Sources{
		Downloader: downloader,
		Lists:      registry.NewListLoader(fs, httpClient),
	}
	if cfg.Vendors.TzProfilesURL != "" {
		sources.TzProfiles = tzprofiles.NewClient(httpClient, cfg.Vendors.TzProfilesURL, cfg.Vendors.PageSize)
	} else {
		logger.WarnCtx(ctx, "Skipping tzprofiles identities, no tzprofiles URL configured")
	}
	if cfg.Vendors.TezosDomainsURL != "" {
		sources.TezosDomains = tezosdomains.NewClient(httpClient, cfg.Vendors.TezosDomainsURL, cfg.Vendors.PageSize)
	} else {
		logger.WarnCtx(ctx, "Tezos domains URL not configured, domain names are skipped")
	}

	// Fetch every input
	ds, err := analysis.Fetch(ctx, sources, analysis.FetchConfig{
		MaxLevel:          cfg.Snapshot.MaxLevel,
		TokenBalanceLevel: cfg.Snapshot.TokenBalanceLevel,
		TokenDecimals:     cfg.Snapshot.TokenDecimals,
		Bigmaps: analysis.Bigmaps{
			HENSwaps:      cfg.Contracts.Bigmaps.HENSwaps,
			HENRoyalties:  cfg.Contracts.Bigmaps.HENRoyalties,
			HENRegistries:      cfg.Contracts.Bigmaps.HENRegistries,
			HENSubjktsMetadata: cfg.Contracts.Bigmaps.HENSubjktsMetadata,
			TeiaSwaps:          cfg.Contracts.Bigmaps.TeiaSwaps,
			TokenLedger:        cfg.Contracts.Bigmaps.TokenLedger,
			Votes:              cfg.Contracts.Bigmaps.Votes,
		},
		Lists: analysis.Lists{
			Restricted:    cfg.Lists.Restricted,
			WashTraders:   cfg.Lists.WashTraders,
			Contributions: cfg.Lists.Contributions,
			Directory:     cfg.Lists.Directory,
		},
		CollabFactory: cfg.Contracts.CollabFactory,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to fetch dataset", zap.Error(err))
	}

	// Build the registry, the graph and the users table
	opts := analysis.Options{
		PlatformContracts: cfg.Contracts.Platform,
		AllowedPolls:      cfg.Polls.Allowed,
		Poll:              cfg.Polls.Highlighted,
		CheckOrder:        cfg.CheckOrder,
	}
	report, err := analysis.Build(ds, opts)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to build users", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Built users",
		zap.Int("users", report.Summary.Users),
		zap.Int("artists", report.Summary.Artists),
		zap.Int("patrons", report.Summary.Patrons),
		zap.Int("swappers", report.Summary.Swappers),
		zap.Int("holders", report.Summary.Holders),
		zap.Int("restricted", report.Summary.Restricted),
	)

	if err := analysis.WriteOutputs(fs, cfg.OutputDir, report, ds, cfg.Polls.Highlighted, statsFrom, clock.Now()); err != nil {
		logger.FatalCtx(ctx, "Failed to write outputs", zap.Error(err))
	}

	if cfg.Persist {
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
		}
		if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
			logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
		}

		run, err := analysis.Persist(ctx, store.NewPGStore(db), report, cfg.Polls.Highlighted, opts)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to persist users", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Persisted run", zap.String("runID", run.ID.String()))
	}

	logger.InfoCtx(ctx, "Teia users analysis finished", zap.String("output_dir", cfg.OutputDir))
}
