// Package timeouts provides centralized timeout values for handler operations.
//
// Handlers wrap backend calls, cache lookups and audit writes in
// context.WithTimeout using these values so that a slow dependency never
// holds a request open indefinitely.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks (Mongo, Redis, backend reachability)
//   - Short: single-record reads and cache lookups
//   - Medium: list fetches and ordinary mutations
//   - Long: dashboard fan-out, exports, multi-call workflows
//   - Upload: streaming a file to the CDN
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
	DefaultUpload = 5 * time.Minute
)

// Config holds timeout configuration values.
// Zero values are ignored (current values are kept).
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
	Upload time.Duration
}

func defaults() Config {
	return Config{
		Ping:   DefaultPing,
		Short:  DefaultShort,
		Medium: DefaultMedium,
		Long:   DefaultLong,
		Upload: DefaultUpload,
	}
}

var (
	mu  sync.RWMutex
	cur = defaults()
)

// Ping returns the timeout for health checks and connectivity verification.
func Ping() time.Duration { return Current().Ping }

// Short returns the timeout for single-record reads.
func Short() time.Duration { return Current().Short }

// Medium returns the timeout for list fetches and simple mutations.
func Medium() time.Duration { return Current().Medium }

// Long returns the timeout for fan-out reads and exports.
func Long() time.Duration { return Current().Long }

// Upload returns the timeout for CDN uploads.
func Upload() time.Duration { return Current().Upload }

// Current returns the active timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cur
}

// Configure overrides timeout values. Zero fields are ignored. Call during
// startup before handlers are registered.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	apply(&cur, cfg)
}

// Reset restores all timeouts to their default values. Used by tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cur = defaults()
}

func apply(dst *Config, src Config) {
	if src.Ping > 0 {
		dst.Ping = src.Ping
	}
	if src.Short > 0 {
		dst.Short = src.Short
	}
	if src.Medium > 0 {
		dst.Medium = src.Medium
	}
	if src.Long > 0 {
		dst.Long = src.Long
	}
	if src.Upload > 0 {
		dst.Upload = src.Upload
	}
}

// ConfigureFromEnv reads LEARNADMIN_TIMEOUT_{PING,SHORT,MEDIUM,LONG,UPLOAD}
// as Go durations ("2s", "500ms", "2m"). Missing or invalid values are
// skipped. Returns the number of values applied.
func ConfigureFromEnv() int {
	var cfg Config
	targets := []struct {
		env string
		dst *time.Duration
	}{
		{"LEARNADMIN_TIMEOUT_PING", &cfg.Ping},
		{"LEARNADMIN_TIMEOUT_SHORT", &cfg.Short},
		{"LEARNADMIN_TIMEOUT_MEDIUM", &cfg.Medium},
		{"LEARNADMIN_TIMEOUT_LONG", &cfg.Long},
		{"LEARNADMIN_TIMEOUT_UPLOAD", &cfg.Upload},
	}

	n := 0
	for _, t := range targets {
		v := os.Getenv(t.env)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*t.dst = d
			n++
		}
	}
	Configure(cfg)
	return n
}

// WithTimeout creates a context with timeout and returns a cancel function that
// logs a warning if the context ended because the deadline passed.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "dashboard fan-out")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
