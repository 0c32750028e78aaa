// Package config provides environment-driven configuration for followscope.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	Port          string
	ListenHost    string
	CORSOrigins   []string
	LogLevel      string
	LogBufferSize int

	FnamesURL        string
	HubURL           string
	HubAPIKey        Secret
	UpstreamRPS      float64
	UpstreamBurst    int
	UpstreamTimeout  time.Duration
	FetchConcurrency int
	MaxUsernames     int
	LinkPageSize     int
	MaxLinkPages     int
	MaxGraphNodes    int
	AssembleTimeout  time.Duration

	SessionTTL   time.Duration
	MaxSessions  int
	FIDCacheSize int
	FIDCacheTTL  time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       envOrDefault("PORT", "8000"),
		ListenHost: envOrDefault("LISTEN_HOST", "127.0.0.1"),
		LogLevel:   envOrDefault("LOG_LEVEL", "info"),
		FnamesURL:  strings.TrimRight(envOrDefault("FNAMES_URL", "https://fnames.farcaster.xyz"), "/"),
		HubURL:     strings.TrimRight(envOrDefault("HUB_URL", "https://hub.farcaster.standardcrypto.vc:2281"), "/"),
		HubAPIKey:  Secret(envOrDefault("HUB_API_KEY", "")),
	}

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:8000")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.loadNumbers(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadNumbers() error {
	ints := []struct {
		key      string
		fallback string
		min, max int
		dst      *int
	}{
		{"LOG_BUFFER_SIZE", "100", 1, 10000, &c.LogBufferSize},
		{"UPSTREAM_BURST", "40", 1, 1000, &c.UpstreamBurst},
		{"FETCH_CONCURRENCY", "4", 1, 64, &c.FetchConcurrency},
		{"MAX_USERNAMES", "25", 1, 500, &c.MaxUsernames},
		{"LINK_PAGE_SIZE", "1000", 1, 10000, &c.LinkPageSize},
		{"MAX_LINK_PAGES", "10", 1, 1000, &c.MaxLinkPages},
		{"MAX_GRAPH_NODES", "2000", 2, 20000, &c.MaxGraphNodes},
		{"MAX_SESSIONS", "1000", 1, 1000000, &c.MaxSessions},
		{"FID_CACHE_SIZE", "4096", 1, 1000000, &c.FIDCacheSize},
	}

	for _, f := range ints {
		v, err := strconv.Atoi(envOrDefault(f.key, f.fallback))
		if err != nil || v < f.min || v > f.max {
			return fmt.Errorf("%s must be an integer between %d and %d", f.key, f.min, f.max)
		}

		*f.dst = v
	}

	rps, err := strconv.ParseFloat(envOrDefault("UPSTREAM_RPS", "20"), 64)
	if err != nil || rps <= 0 {
		return fmt.Errorf("UPSTREAM_RPS must be a positive number")
	}

	c.UpstreamRPS = rps

	durations := []struct {
		key      string
		fallback string
		dst      *time.Duration
	}{
		{"UPSTREAM_TIMEOUT", "15s", &c.UpstreamTimeout},
		{"ASSEMBLE_TIMEOUT", "2m", &c.AssembleTimeout},
		{"SESSION_TTL", "30m", &c.SessionTTL},
		{"FID_CACHE_TTL", "1h", &c.FIDCacheTTL},
	}

	for _, f := range durations {
		d, err := time.ParseDuration(envOrDefault(f.key, f.fallback))
		if err != nil || d <= 0 {
			return fmt.Errorf("%s must be a positive duration (e.g. 30s, 5m)", f.key)
		}

		*f.dst = d
	}

	return nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
