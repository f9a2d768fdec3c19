package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/teia-community/teia-analytics/internal/adapter"
	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/export"
	"github.com/teia-community/teia-analytics/internal/logger"
	"github.com/teia-community/teia-analytics/internal/stats"
	"github.com/teia-community/teia-analytics/internal/store"
	"github.com/teia-community/teia-analytics/internal/store/schema"
	"github.com/teia-community/teia-analytics/internal/users"
)

const (
	UsersFile       = "teia_users.csv"
	ConnectionsFile = "teia_connections.csv"
	ActivityFile    = "teia_activity_per_day.csv"
)

// WriteOutputs writes the users table, the connections and the activity series of the report in dir.
// The series cover the days from from to to.
func WriteOutputs(fs adapter.FileSystem, dir string, report *Report, ds *Dataset, poll string, from, to time.Time) error {
	if err := fs.MkdirAll(dir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeFile(fs, filepath.Join(dir, UsersFile), func(w io.Writer) error {
		return export.WriteUsers(w, report.Users, poll)
	}); err != nil {
		return err
	}

	if err := writeFile(fs, filepath.Join(dir, ConnectionsFile), func(w io.Writer) error {
		return export.WriteConnections(w, report.Graph)
	}); err != nil {
		return err
	}

	activity := stats.ActivityFromTransactions(ds.Transactions()...)
	series := []stats.Series{
		stats.CountsPerDay("mints", timestamps(ds.Mints), from, to),
		stats.CountsPerDay("collects", timestamps(ds.Collects()), from, to),
		stats.NewUsersPerDay(report.Registry.Select(users.SelectNotContracts), from, to),
		stats.ActiveUsersPerDay(activity, from, to),
		stats.UsersLastActiveDay(activity, from, to),
	}
	if err := writeFile(fs, filepath.Join(dir, ActivityFile), func(w io.Writer) error {
		return stats.WriteSeries(w, series...)
	}); err != nil {
		return err
	}

	logger.Info("Wrote outputs", zap.String("dir", dir), zap.Int("users", len(report.Users)))
	return nil
}

// Persist stores the report as a new users run and returns the run
func Persist(ctx context.Context, s store.Store, report *Report, poll string, opts Options) (*schema.AnalysisRun, error) {
	config, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run config: %w", err)
	}
	summary, err := json.Marshal(report.Summary)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run summary: %w", err)
	}

	run, err := s.CreateRun(ctx, store.CreateRunInput{
		Program: schema.RunProgramUsers,
		Poll:    poll,
		Config:  config,
		Summary: summary,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	records, err := export.UserRecords(report.Users)
	if err != nil {
		return nil, err
	}
	if err := s.SaveUsers(ctx, run.ID, records); err != nil {
		return nil, fmt.Errorf("failed to save users: %w", err)
	}

	logger.InfoCtx(ctx, "Persisted users run", zap.String("runID", run.ID.String()), zap.Int("users", len(records)))
	return run, nil
}

func timestamps(txs []domain.Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.Timestamp
	}
	return out
}

func writeFile(fs adapter.FileSystem, path string, write func(w io.Writer) error) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
