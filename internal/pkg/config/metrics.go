package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Shared collectors, partitioned by component so the api and worker binaries
// (and tests) can each hold their own ConfigMetrics without re-registering.
var (
	configLoadTimestamp = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "config_load_timestamp_seconds",
		Help: "Unix timestamp of the last configuration load",
	}, []string{"component"})

	configValidationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "config_validation_errors_total",
		Help: "Total number of configuration validation errors by field",
	}, []string{"component", "field"})

	configFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "config_fallbacks_total",
		Help: "Total number of configuration fallbacks applied by field",
	}, []string{"component", "field"})

	configFallbackActive = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "config_fallback_active",
		Help: "Whether any configuration fallback is currently active (1) or not (0)",
	}, []string{"component"})
)

// ConfigMetrics tracks configuration loading behavior for one component, so
// a silently-ignored bad env var still shows up on a dashboard.
type ConfigMetrics struct {
	component string
}

// NewConfigMetrics creates configuration metrics for the named component
// ("api", "worker").
func NewConfigMetrics(componentName string) *ConfigMetrics {
	return &ConfigMetrics{component: componentName}
}

// RecordLoadTimestamp marks the time of the latest configuration load.
func (m *ConfigMetrics) RecordLoadTimestamp() {
	configLoadTimestamp.WithLabelValues(m.component).SetToCurrentTime()
}

// RecordValidationError counts a validation failure on the given field.
func (m *ConfigMetrics) RecordValidationError(field string) {
	configValidationErrorsTotal.WithLabelValues(m.component, field).Inc()
}

// RecordFallback counts a default value taking over for the given field.
func (m *ConfigMetrics) RecordFallback(field string) {
	configFallbacksTotal.WithLabelValues(m.component, field).Inc()
}

// SetFallbackActive flags whether this component is currently running on any
// fallback value.
func (m *ConfigMetrics) SetFallbackActive(active bool) {
	v := 0.0
	if active {
		v = 1.0
	}
	configFallbackActive.WithLabelValues(m.component).Set(v)
}
