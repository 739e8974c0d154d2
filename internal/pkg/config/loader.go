package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ConfigLoadResult reports how one configuration value was resolved.
// FallbackApplied means the environment value was missing the mark (unset
// counts as not applied; set-but-invalid counts as applied) and the default
// was used instead.
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString returns the environment value or the default when unset.
// No validation; use LoadEnvWithFallback for validated strings.
func LoadEnvString(envKey, defaultValue string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	return defaultValue
}

// LoadEnvWithFallback loads a validated string. An invalid value falls back
// to the default with a warning; the default itself is assumed valid.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	if err := validator(raw); err != nil {
		return ConfigLoadResult{
			Value:           defaultValue,
			FallbackApplied: true,
			Warnings: []string{fmt.Sprintf(
				"%s=%q failed validation (%v), using default %q", envKey, raw, err, defaultValue)},
		}
	}
	return ConfigLoadResult{Value: raw}
}

// LoadEnvDuration loads a Go duration string ("30m", "1h30m").
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	d, err := time.ParseDuration(raw)
	if err == nil && validator != nil {
		err = validator(d)
	}
	if err != nil {
		return ConfigLoadResult{
			Value:           defaultValue,
			FallbackApplied: true,
			Warnings: []string{fmt.Sprintf(
				"%s=%q failed validation (%v), using default %v", envKey, raw, err, defaultValue)},
		}
	}
	return ConfigLoadResult{Value: d}
}

// LoadEnvInt loads an integer value.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	v, err := strconv.Atoi(raw)
	if err == nil && validator != nil {
		err = validator(v)
	}
	if err != nil {
		return ConfigLoadResult{
			Value:           defaultValue,
			FallbackApplied: true,
			Warnings: []string{fmt.Sprintf(
				"%s=%q failed validation (%v), using default %d", envKey, raw, err, defaultValue)},
		}
	}
	return ConfigLoadResult{Value: v}
}

// LoadEnvBool loads a boolean ("true", "1", "false", "0" and friends).
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return ConfigLoadResult{
			Value:           defaultValue,
			FallbackApplied: true,
			Warnings: []string{fmt.Sprintf(
				"%s=%q is not a boolean, using default %t", envKey, raw, defaultValue)},
		}
	}
	return ConfigLoadResult{Value: v}
}
