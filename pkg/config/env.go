// Package config provides environment variable helpers shared by the
// explorer's configuration loaders.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the value of an environment variable or the default value if not set.
//
// Example:
//
//	baseURL := GetEnvString("RESTCOUNTRIES_BASE_URL", "https://restcountries.com/v3.1")
func GetEnvString(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt returns the value of an environment variable as an integer.
// Unparseable values fall back to defaultValue with a warning.
func GetEnvInt(key string, defaultValue int) int {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		warnFallback(key, valueStr, strconv.Itoa(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvFloat returns the value of an environment variable as a float64.
// Unparseable values fall back to defaultValue with a warning.
func GetEnvFloat(key string, defaultValue float64) float64 {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		warnFallback(key, valueStr, strconv.FormatFloat(defaultValue, 'f', -1, 64), err)
		return defaultValue
	}
	return value
}

// GetEnvBool returns the value of an environment variable as a boolean.
// Accepts the values understood by strconv.ParseBool.
func GetEnvBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		warnFallback(key, valueStr, strconv.FormatBool(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvDuration returns the value of an environment variable as a time.Duration.
// The value must be parseable by time.ParseDuration (e.g., "15s", "1m").
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		warnFallback(key, valueStr, defaultValue.String(), err)
		return defaultValue
	}
	return value
}

// KeyFromEnv returns a function that reads key from the environment each time it is called.
// Credentials are resolved at call time so a missing key surfaces as a request failure.
func KeyFromEnv(key string) func() string {
	return func() string {
		return strings.TrimSpace(os.Getenv(key))
	}
}

func warnFallback(key, value, defaultValue string, err error) {
	slog.Warn("invalid value for environment variable, using default",
		slog.String("key", key),
		slog.String("value", value),
		slog.String("default", defaultValue),
		slog.String("error", err.Error()))
}

// ValidateOneOf returns an error unless value is one of allowed.
func ValidateOneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", field, strings.Join(allowed, ", "), value)
}
