package config

import (
	"log/slog"
	"time"

	"subsidy-finder/internal/infra/source"
)

// AppConfig holds the settings shared by the api binary.
type AppConfig struct {
	// HTTPPort is the port the API server listens on. Default 8080.
	HTTPPort int

	// DatabaseURL is the PostgreSQL DSN. Empty means the binary refuses to
	// start; there is no meaningful default for credentials.
	DatabaseURL string

	// JGrantsAPIURL is the jGrants public subsidies endpoint.
	JGrantsAPIURL string

	// TokyoSubsidyURL is the Tokyo metropolitan subsidy listing page.
	TokyoSubsidyURL string

	// RequestTimeout bounds each HTTP request end to end. Default 30s.
	RequestTimeout time.Duration

	// IngestOnStartup runs one ingestion pass in the background right after
	// boot, so a fresh deployment serves data without waiting for the
	// worker's next tick. Default true.
	IngestOnStartup bool

	// TracingEnabled installs a real tracer provider instead of a no-op one.
	// Default false.
	TracingEnabled bool
}

// LoadAppConfig loads the api configuration from the environment with
// fail-open fallback, except DatabaseURL which is returned as-is for the
// caller to require.
func LoadAppConfig(logger *slog.Logger, metrics *ConfigMetrics) *AppConfig {
	cfg := &AppConfig{
		HTTPPort:        8080,
		DatabaseURL:     LoadEnvString("DATABASE_URL", ""),
		JGrantsAPIURL:   source.DefaultJGrantsURL,
		TokyoSubsidyURL: source.DefaultTokyoURL,
		RequestTimeout:  30 * time.Second,
		IngestOnStartup: true,
	}

	fallbackApplied := false
	apply := func(field string, result ConfigLoadResult, set func(interface{})) {
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
		set(result.Value)
	}

	apply("http_port", LoadEnvInt("HTTP_PORT", cfg.HTTPPort, func(v int) error {
		return ValidateIntRange(v, 1, 65535)
	}), func(v interface{}) { cfg.HTTPPort = v.(int) })

	apply("jgrants_api_url", LoadEnvWithFallback("JGRANTS_API_URL", cfg.JGrantsAPIURL, ValidateHTTPURL),
		func(v interface{}) { cfg.JGrantsAPIURL = v.(string) })

	apply("tokyo_subsidy_url", LoadEnvWithFallback("TOKYO_SUBSIDY_URL", cfg.TokyoSubsidyURL, ValidateHTTPURL),
		func(v interface{}) { cfg.TokyoSubsidyURL = v.(string) })

	apply("request_timeout", LoadEnvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout, func(d time.Duration) error {
		return ValidateDuration(d, time.Second, 5*time.Minute)
	}), func(v interface{}) { cfg.RequestTimeout = v.(time.Duration) })

	apply("ingest_on_startup", LoadEnvBool("INGEST_ON_STARTUP", cfg.IngestOnStartup),
		func(v interface{}) { cfg.IngestOnStartup = v.(bool) })

	apply("tracing_enabled", LoadEnvBool("TRACING_ENABLED", cfg.TracingEnabled),
		func(v interface{}) { cfg.TracingEnabled = v.(bool) })

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return cfg
}
