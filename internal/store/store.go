// Package store persists pipeline run history to SQLite or PostgreSQL.
package store

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/sells-group/report-cli/internal/model"
)

// ErrNotFound is returned when a requested run does not exist.
var ErrNotFound = eris.New("store: run not found")

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status  model.RunStatus `json:"status,omitempty"`
	RunDate string          `json:"run_date,omitempty"`
	Limit   int             `json:"limit,omitempty"`
	Offset  int             `json:"offset,omitempty"`
}

// RunSummary carries the outcome of a finished pipeline run.
type RunSummary struct {
	OrdersRows   int             `json:"orders_rows"`
	AdsRows      int             `json:"ads_rows"`
	Weeks        int             `json:"weeks"`
	AnomalyCount int             `json:"anomaly_count"`
	Metrics      json.RawMessage `json:"metrics,omitempty"`
	ReportPath   string          `json:"report_path,omitempty"`
}

// Store defines the persistence interface for the reporting pipeline.
type Store interface {
	CreateRun(ctx context.Context, runDate string) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, summary RunSummary) error
	FailRun(ctx context.Context, runID string, cause error) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)
	// LatestCompleted returns the most recent completed run, or nil if
	// no run has completed yet.
	LatestCompleted(ctx context.Context) (*model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
