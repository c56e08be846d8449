package model

import (
	"encoding/json"
	"time"
)

// RunStatus tracks a pipeline run's lifecycle in the store.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is a persisted record of one reporting pipeline invocation.
type Run struct {
	ID           string          `json:"id"`
	RunDate      string          `json:"run_date"`
	Status       RunStatus       `json:"status"`
	OrdersRows   int             `json:"orders_rows"`
	AdsRows      int             `json:"ads_rows"`
	Weeks        int             `json:"weeks"`
	AnomalyCount int             `json:"anomaly_count"`
	Metrics      json.RawMessage `json:"metrics,omitempty"`
	ReportPath   string          `json:"report_path,omitempty"`
	Error        string          `json:"error,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
