// Package worker provides the runtime pieces of the scheduled ingestion
// binary: configuration, job metrics, and the health endpoint.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"subsidy-finder/internal/pkg/config"
)

// WorkerConfig controls the ingestion schedule and the operational knobs of
// the worker binary. Every field has a safe default; LoadConfigFromEnv never
// fails, it falls back and reports.
type WorkerConfig struct {
	// CronSchedule is a 5-field cron expression for ingestion runs.
	// Default "0 6 * * *": one refresh per day, matching how often the
	// upstream listings actually change.
	CronSchedule string

	// Timezone anchors the cron schedule. Default "Asia/Tokyo"; both
	// upstream sources publish on JST business days.
	Timezone string

	// IngestTimeout bounds a single ingestion run. Default 10 minutes.
	IngestTimeout time.Duration

	// HealthPort serves liveness/readiness and Prometheus metrics.
	// Default 9091.
	HealthPort int
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:  "0 6 * * *",
		Timezone:      "Asia/Tokyo",
		IngestTimeout: 10 * time.Minute,
		HealthPort:    9091,
	}
}

// Validate checks every field and aggregates the failures.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.IngestTimeout); err != nil {
		errs = append(errs, fmt.Errorf("ingest timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the worker configuration fail-open: an invalid
// value is logged, counted, and replaced by its default, so the worker
// always starts with a usable configuration.
//
// Environment variables:
//   - CRON_SCHEDULE: cron expression (default "0 6 * * *")
//   - WORKER_TIMEZONE: IANA timezone (default "Asia/Tokyo")
//   - INGEST_TIMEOUT: duration, 1m-2h (default 10m)
//   - WORKER_HEALTH_PORT: 1024-65535 (default 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) *WorkerConfig {
	cfg := DefaultConfig()
	fallbackApplied := false

	record := func(field string, result config.ConfigLoadResult) config.ConfigLoadResult {
		if result.FallbackApplied {
			fallbackApplied = true
			metrics.RecordValidationError(field)
			metrics.RecordFallback(field)
			for _, warning := range result.Warnings {
				logger.Warn("Configuration fallback applied",
					slog.String("field", field),
					slog.String("warning", warning))
			}
		}
		return result
	}

	cfg.CronSchedule = record("cron_schedule",
		config.LoadEnvWithFallback("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)).Value.(string)

	cfg.Timezone = record("timezone",
		config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)).Value.(string)

	cfg.IngestTimeout = record("ingest_timeout",
		config.LoadEnvDuration("INGEST_TIMEOUT", cfg.IngestTimeout, func(d time.Duration) error {
			return config.ValidateDuration(d, time.Minute, 2*time.Hour)
		})).Value.(time.Duration)

	cfg.HealthPort = record("health_port",
		config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
			return config.ValidateIntRange(v, 1024, 65535)
		})).Value.(int)

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg
}
