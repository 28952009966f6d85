package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// HealthStatus is the outcome of a health check
type HealthStatus struct {
	Healthy      bool              `json:"healthy"`
	Message      string            `json:"message"`
	ResponseTime time.Duration     `json:"response_time"`
	CheckedAt    time.Time         `json:"checked_at"`
	Details      map[string]string `json:"details,omitempty"`
}

// HealthChecker provides health checking capabilities for database connections
type HealthChecker struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(db *sqlx.DB, logger *logrus.Logger) *HealthChecker {
	if logger == nil {
		logger = logrus.New()
	}
	return &HealthChecker{
		db:     db,
		logger: logger,
	}
}

// CheckHealth pings the database, runs a trivial query and confirms the
// expected tables exist.
func (h *HealthChecker) CheckHealth(ctx context.Context) error {
	start := time.Now()
	defer func() {
		h.logger.WithField("duration", time.Since(start)).Debug("Health check completed")
	}()

	if err := h.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	var result int
	if err := h.db.GetContext(ctx, &result, "SELECT 1"); err != nil {
		return fmt.Errorf("test query failed: %w", err)
	}

	if result != 1 {
		return fmt.Errorf("test query returned unexpected result: %d", result)
	}

	return ValidateSchema(ctx, h.db, h.logger)
}

// GetHealthStatus returns detailed health status
func (h *HealthChecker) GetHealthStatus(ctx context.Context) *HealthStatus {
	start := time.Now()
	status := &HealthStatus{
		CheckedAt: start,
		Details:   make(map[string]string),
	}

	err := h.CheckHealth(ctx)
	status.ResponseTime = time.Since(start)

	if err != nil {
		status.Healthy = false
		status.Message = err.Error()
		return status
	}

	status.Healthy = true
	status.Message = "Database is healthy"

	var fkEnabled int
	if err := h.db.GetContext(ctx, &fkEnabled, "PRAGMA foreign_keys"); err == nil {
		status.Details["foreign_keys"] = fmt.Sprintf("%d", fkEnabled)
	}

	var journalMode string
	if err := h.db.GetContext(ctx, &journalMode, "PRAGMA journal_mode"); err == nil {
		status.Details["journal_mode"] = journalMode
	}

	stats := h.db.Stats()
	status.Details["open_connections"] = fmt.Sprintf("%d", stats.OpenConnections)
	status.Details["in_use"] = fmt.Sprintf("%d", stats.InUse)
	status.Details["wait_count"] = fmt.Sprintf("%d", stats.WaitCount)

	return status
}
