package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/teia-community/teia-analytics/internal/adapter"
	"github.com/teia-community/teia-analytics/internal/airdrop"
	"github.com/teia-community/teia-analytics/internal/distribution"
	"github.com/teia-community/teia-analytics/internal/export"
	"github.com/teia-community/teia-analytics/internal/logger"
	"github.com/teia-community/teia-analytics/internal/store"
	"github.com/teia-community/teia-analytics/internal/store/schema"
)

const (
	DistributionFile = "token_distribution.csv"
	DropFile         = "token_drop.json"
	DropBatchesDir   = "token_drop_batches"

	conservationTolerance = 1e-9
)

// DropOptions configures the token drop files
type DropOptions struct {
	Decimals  int32
	BatchSize int
}

// ReadUsersTable reads a users table file
func ReadUsersTable(fs adapter.FileSystem, path string) ([]export.User, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := export.ReadUsers(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}

// Allocate computes the token allocation of the users table rows and checks that it is conserved
func Allocate(rows []export.User, cfg distribution.Config) (*distribution.Result, error) {
	result, err := distribution.Compute(export.AllocationRows(rows), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to compute allocation: %w", err)
	}
	if err := result.Check(conservationTolerance); err != nil {
		return nil, err
	}

	logger.Info("Computed allocation",
		zap.Int("users", len(rows)),
		zap.Int("allocations", len(result.Allocations)),
		zap.Float64("activity_pool", result.ActivityPool))

	return result, nil
}

// WriteDistribution writes the allocation table, the drop file and the drop batches in dir
func WriteDistribution(fs adapter.FileSystem, jcs adapter.JCS, dir string, result *distribution.Result, opts DropOptions) (airdrop.Drop, error) {
	if err := fs.MkdirAll(dir); err != nil {
		return airdrop.Drop{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeFile(fs, filepath.Join(dir, DistributionFile), func(w io.Writer) error {
		return export.WriteAllocations(w, result)
	}); err != nil {
		return airdrop.Drop{}, err
	}

	drop := airdrop.BuildDrop(result, opts.Decimals)
	writer := airdrop.NewWriter(fs, jcs)
	if err := writer.WriteDrop(filepath.Join(dir, DropFile), drop); err != nil {
		return airdrop.Drop{}, err
	}

	batches, mapping, err := airdrop.Split(drop.Addresses(), drop.Amounts(), opts.BatchSize)
	if err != nil {
		return airdrop.Drop{}, fmt.Errorf("failed to split drop: %w", err)
	}
	if err := airdrop.WriteBatches(writer, filepath.Join(dir, DropBatchesDir), "batch", batches, mapping); err != nil {
		return airdrop.Drop{}, err
	}

	logger.Info("Wrote distribution", zap.String("dir", dir), zap.Int("batches", len(batches)))
	return drop, nil
}

// PersistAllocations stores the allocation as a new distribution run and returns the run
func PersistAllocations(ctx context.Context, s store.Store, result *distribution.Result, cfg distribution.Config) (*schema.AnalysisRun, error) {
	weights := make(map[string]float64, len(cfg.Components))
	for _, c := range cfg.Components {
		weights[c.Name] = c.Weight
	}
	config, err := json.Marshal(map[string]interface{}{
		"total_amount":    cfg.TotalAmount,
		"treasury_amount": cfg.TreasuryAmount,
		"scaling":         cfg.Scaling,
		"weights":         weights,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run config: %w", err)
	}
	summary, err := json.Marshal(map[string]interface{}{
		"allocations":   len(result.Allocations),
		"activity_pool": result.ActivityPool,
		"distributed":   result.Sum(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run summary: %w", err)
	}

	run, err := s.CreateRun(ctx, store.CreateRunInput{
		Program: schema.RunProgramDistribution,
		Config:  config,
		Summary: summary,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	records := export.AllocationRecords(result)
	if err := s.SaveAllocations(ctx, run.ID, records); err != nil {
		return nil, fmt.Errorf("failed to save allocations: %w", err)
	}

	logger.InfoCtx(ctx, "Persisted distribution run", zap.String("runID", run.ID.String()), zap.Int("allocations", len(records)))
	return run, nil
}
