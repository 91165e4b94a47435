package main

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vizboard/vizboard/config"
	"github.com/vizboard/vizboard/consts"
	"github.com/vizboard/vizboard/db"
	"github.com/vizboard/vizboard/metrics"
)

func startTasks(ctx context.Context, cfg *config.Config, dbConn *sql.DB, syncer *datasetSyncer) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	if cfg.Store.SyncSchedule != "" {
		if _, err := c.AddFunc(cfg.Store.SyncSchedule, func() { syncer.Run(ctx) }); err != nil {
			return nil, err
		}
	}
	if _, err := c.AddFunc(consts.CronCleanup, cleanup(ctx, dbConn)); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

func cleanup(ctx context.Context, dbConn *sql.DB) func() {
	return func() {
		deleted, err := db.PurgeImports(ctx, dbConn, consts.ImportRetention)
		if err != nil {
			slog.Error("Error cleaning import history", "error", err)
			return
		}
		slog.Info("Cleaned import history", "deleted", deleted)
	}
}

// datasetSyncer re-imports the dataset file whenever its modification time
// differs from the last recorded import.
type datasetSyncer struct {
	db      *sql.DB
	path    string
	metrics *metrics.Metrics
}

// Sync imports the dataset if it changed and reports whether it did.
func (s *datasetSyncer) Sync(ctx context.Context) (bool, error) {
	if s.path == "" {
		return false, nil
	}
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	last, ok, err := db.LastImport(ctx, s.db, s.path)
	if err != nil {
		return false, err
	}
	if ok && last.ModTime.Equal(info.ModTime()) {
		return false, nil
	}

	imp, err := db.ImportFile(ctx, s.db, s.path)
	if err != nil {
		return false, err
	}
	s.metrics.StoredRecords.Set(float64(imp.Count))
	return true, nil
}

func (s *datasetSyncer) Run(ctx context.Context) {
	imported, err := s.Sync(ctx)
	switch {
	case err != nil:
		s.metrics.ImportsTotal.WithLabelValues("error").Inc()
		slog.Error("Error syncing dataset", "file", s.path, "error", err)
	case imported:
		s.metrics.ImportsTotal.WithLabelValues("ok").Inc()
		slog.Info("Imported dataset", "file", s.path)
	default:
		s.metrics.ImportsTotal.WithLabelValues("skipped").Inc()
		slog.Debug("Dataset unchanged", "file", s.path)
	}
}
