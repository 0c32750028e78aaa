package config_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/followscope/followscope/internal/config"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CORS_ORIGINS", "http://localhost:8000")
	t.Setenv("HUB_API_KEY", "")
}

func TestLoad_Defaults(t *testing.T) {
	setValidEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Addr() != "127.0.0.1:8000" {
		t.Errorf("expected addr 127.0.0.1:8000, got %s", cfg.Addr())
	}

	if cfg.LogBufferSize != 100 {
		t.Errorf("expected default LOG_BUFFER_SIZE 100, got %d", cfg.LogBufferSize)
	}

	if cfg.FnamesURL != "https://fnames.farcaster.xyz" {
		t.Errorf("unexpected FnamesURL default: %s", cfg.FnamesURL)
	}

	if cfg.HubURL != "https://hub.farcaster.standardcrypto.vc:2281" {
		t.Errorf("unexpected HubURL default: %s", cfg.HubURL)
	}

	if cfg.UpstreamRPS != 20 || cfg.UpstreamBurst != 40 {
		t.Errorf("unexpected upstream rate defaults: %v/%d", cfg.UpstreamRPS, cfg.UpstreamBurst)
	}

	if cfg.UpstreamTimeout != 15*time.Second {
		t.Errorf("unexpected UpstreamTimeout default: %s", cfg.UpstreamTimeout)
	}

	if cfg.FetchConcurrency != 4 || cfg.MaxUsernames != 25 {
		t.Errorf("unexpected fan-out defaults: %d/%d", cfg.FetchConcurrency, cfg.MaxUsernames)
	}

	if cfg.LinkPageSize != 1000 || cfg.MaxLinkPages != 10 {
		t.Errorf("unexpected paging defaults: %d/%d", cfg.LinkPageSize, cfg.MaxLinkPages)
	}

	if cfg.SessionTTL != 30*time.Minute || cfg.MaxSessions != 1000 {
		t.Errorf("unexpected session defaults: %s/%d", cfg.SessionTTL, cfg.MaxSessions)
	}

	if cfg.FIDCacheSize != 4096 || cfg.FIDCacheTTL != time.Hour {
		t.Errorf("unexpected cache defaults: %d/%s", cfg.FIDCacheSize, cfg.FIDCacheTTL)
	}

	if cfg.MaxGraphNodes != 2000 || cfg.AssembleTimeout != 2*time.Minute {
		t.Errorf("unexpected assembly defaults: %d/%s", cfg.MaxGraphNodes, cfg.AssembleTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setValidEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LISTEN_HOST", "0.0.0.0")
	t.Setenv("HUB_URL", "http://localhost:2281/")
	t.Setenv("UPSTREAM_RPS", "2.5")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://scope.example.com")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:9000" {
		t.Errorf("addr = %s", cfg.Addr())
	}

	if cfg.HubURL != "http://localhost:2281" {
		t.Errorf("HubURL = %s, want trailing slash trimmed", cfg.HubURL)
	}

	if cfg.UpstreamRPS != 2.5 {
		t.Errorf("UpstreamRPS = %v", cfg.UpstreamRPS)
	}

	if cfg.SessionTTL != 5*time.Minute {
		t.Errorf("SessionTTL = %s", cfg.SessionTTL)
	}

	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://scope.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}

	hosts := cfg.OriginHosts()
	if len(hosts) != 2 || hosts[0] != "localhost:3000" || hosts[1] != "scope.example.com" {
		t.Errorf("OriginHosts = %v", hosts)
	}
}

func TestLoad_ErrorCases(t *testing.T) {
	tests := []struct {
		name         string
		envOverrides map[string]string
		wantErr      string
	}{
		{
			name:         "invalid PORT zero",
			envOverrides: map[string]string{"PORT": "0"},
			wantErr:      "PORT must be between 1 and 65535",
		},
		{
			name:         "invalid PORT text",
			envOverrides: map[string]string{"PORT": "abc"},
			wantErr:      "PORT must be a valid integer",
		},
		{
			name:         "public LISTEN_HOST",
			envOverrides: map[string]string{"LISTEN_HOST": "10.0.0.5"},
			wantErr:      "LISTEN_HOST must be a loopback address or 0.0.0.0/:: for containers",
		},
		{
			name:         "bad LOG_LEVEL",
			envOverrides: map[string]string{"LOG_LEVEL": "chatty"},
			wantErr:      "LOG_LEVEL is invalid",
		},
		{
			name:         "LOG_BUFFER_SIZE zero",
			envOverrides: map[string]string{"LOG_BUFFER_SIZE": "0"},
			wantErr:      "LOG_BUFFER_SIZE must be an integer between 1 and 10000",
		},
		{
			name:         "MAX_GRAPH_NODES too high",
			envOverrides: map[string]string{"MAX_GRAPH_NODES": "50000"},
			wantErr:      "MAX_GRAPH_NODES must be an integer between 2 and 20000",
		},
		{
			name:         "ASSEMBLE_TIMEOUT not a duration",
			envOverrides: map[string]string{"ASSEMBLE_TIMEOUT": "soon"},
			wantErr:      "ASSEMBLE_TIMEOUT must be a positive duration (e.g. 30s, 5m)",
		},
		{
			name:         "FETCH_CONCURRENCY too high",
			envOverrides: map[string]string{"FETCH_CONCURRENCY": "65"},
			wantErr:      "FETCH_CONCURRENCY must be an integer between 1 and 64",
		},
		{
			name:         "MAX_USERNAMES text",
			envOverrides: map[string]string{"MAX_USERNAMES": "many"},
			wantErr:      "MAX_USERNAMES must be an integer between 1 and 500",
		},
		{
			name:         "UPSTREAM_RPS negative",
			envOverrides: map[string]string{"UPSTREAM_RPS": "-1"},
			wantErr:      "UPSTREAM_RPS must be a positive number",
		},
		{
			name:         "UPSTREAM_TIMEOUT unparseable",
			envOverrides: map[string]string{"UPSTREAM_TIMEOUT": "soon"},
			wantErr:      "UPSTREAM_TIMEOUT must be a positive duration",
		},
		{
			name:         "SESSION_TTL negative",
			envOverrides: map[string]string{"SESSION_TTL": "-5m"},
			wantErr:      "SESSION_TTL must be a positive duration",
		},
		{
			name:         "HUB_URL not a URL",
			envOverrides: map[string]string{"HUB_URL": "hub"},
			wantErr:      "HUB_URL is not a valid URL",
		},
		{
			name:         "FNAMES_URL plain http remote",
			envOverrides: map[string]string{"FNAMES_URL": "http://fnames.example.com"},
			wantErr:      "FNAMES_URL must use HTTPS",
		},
		{
			name:         "CORS wildcard",
			envOverrides: map[string]string{"CORS_ORIGINS": "*"},
			wantErr:      "CORS_ORIGINS must not contain wildcard",
		},
		{
			name:         "CORS missing scheme",
			envOverrides: map[string]string{"CORS_ORIGINS": "localhost:3000"},
			wantErr:      "CORS_ORIGINS contains invalid origin",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setValidEnv(t)
			for k, v := range tc.envOverrides {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestSecret_Redacted(t *testing.T) {
	s := config.Secret("hub-key")

	if s.Value() != "hub-key" {
		t.Errorf("Value = %q", s.Value())
	}

	for _, got := range []string{s.String(), fmt.Sprintf("%v", s), fmt.Sprintf("%#v", s)} {
		if got != "[REDACTED]" {
			t.Errorf("secret leaked: %q", got)
		}
	}

	b, _ := s.MarshalText()
	if string(b) != "[REDACTED]" {
		t.Errorf("MarshalText = %q", b)
	}
}
