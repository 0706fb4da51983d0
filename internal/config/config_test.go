package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"numport/internal/config"
)

func clearRunEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DAILY_SOURCE_API_KEY", "DAILY_TARGET_API_KEY",
		"MAX_RETRIES", "INITIAL_DELAY", "BACKOFF_FACTOR", "TRANSFER_DELAY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaultsWithEnvKeys(t *testing.T) {
	clearRunEnv(t)
	t.Setenv("DAILY_SOURCE_API_KEY", "src-key")
	t.Setenv("DAILY_TARGET_API_KEY", "dst-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Daily.SourceAPIKey != "src-key" {
		t.Fatalf("expected source key from env, got %q", cfg.Daily.SourceAPIKey)
	}
	if cfg.Daily.TargetAPIKey != "dst-key" {
		t.Fatalf("expected target key from env, got %q", cfg.Daily.TargetAPIKey)
	}
	if cfg.Daily.BaseURL != "https://api.daily.co/v1" {
		t.Fatalf("unexpected base url: %q", cfg.Daily.BaseURL)
	}
	if cfg.Retry.MaxRetries != 3 || cfg.Retry.InitialDelay != 1 || cfg.Retry.BackoffFactor != 2.0 {
		t.Fatalf("unexpected retry defaults: %+v", cfg.Retry)
	}
	if cfg.Transfer.EntryDelay != 2 {
		t.Fatalf("unexpected entry delay: %d", cfg.Transfer.EntryDelay)
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "numport", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if !filepath.IsAbs(cfg.Paths.PlanFile) {
		t.Fatalf("expected plan file path to be absolute, got %q", cfg.Paths.PlanFile)
	}
	if got := filepath.Base(cfg.Paths.PlanFile); got != "transfer_plan.json" {
		t.Fatalf("unexpected plan file name: %q", got)
	}
	if cfg.LockFile() != filepath.Join(wantLogDir, "numport.lock") {
		t.Fatalf("unexpected lock file: %q", cfg.LockFile())
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if _, err := os.Stat(cfg.Paths.LogDir); err != nil {
		t.Fatalf("expected log dir to exist: %v", err)
	}
}

func TestLoadReadsTOMLFile(t *testing.T) {
	clearRunEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "config.toml")
	body := strings.Join([]string{
		"[daily]",
		`base_url = "https://platform.example.com/v2/"`,
		`source_api_key = "file-src"`,
		"[retry]",
		"max_retries = 5",
		"[transfer]",
		"entry_delay = 0",
		"[logging]",
		`format = "json"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected file at %q to be used, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Daily.BaseURL != "https://platform.example.com/v2" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Daily.BaseURL)
	}
	if cfg.Daily.SourceAPIKey != "file-src" {
		t.Fatalf("unexpected source key: %q", cfg.Daily.SourceAPIKey)
	}
	if cfg.Retry.MaxRetries != 5 {
		t.Fatalf("unexpected max retries: %d", cfg.Retry.MaxRetries)
	}
	if cfg.Transfer.EntryDelay != 0 {
		t.Fatalf("expected zero entry delay to be allowed, got %d", cfg.Transfer.EntryDelay)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
}

func TestEnvTunablesOverrideFile(t *testing.T) {
	clearRunEnv(t)
	t.Setenv("MAX_RETRIES", "6")
	t.Setenv("INITIAL_DELAY", "4")
	t.Setenv("BACKOFF_FACTOR", "1.5")
	t.Setenv("TRANSFER_DELAY", "9")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[retry]\nmax_retries = 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Retry.MaxRetries != 6 {
		t.Fatalf("expected MAX_RETRIES to win, got %d", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.InitialDelay != 4 {
		t.Fatalf("expected INITIAL_DELAY to win, got %d", cfg.Retry.InitialDelay)
	}
	if cfg.Retry.BackoffFactor != 1.5 {
		t.Fatalf("expected BACKOFF_FACTOR to win, got %v", cfg.Retry.BackoffFactor)
	}
	if cfg.Transfer.EntryDelay != 9 {
		t.Fatalf("expected TRANSFER_DELAY to win, got %d", cfg.Transfer.EntryDelay)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		body string
		want string
	}{
		{
			name: "bad max retries env",
			env:  map[string]string{"MAX_RETRIES": "lots"},
			want: "MAX_RETRIES",
		},
		{
			name: "zero retries",
			body: "[retry]\nmax_retries = 0\n",
			want: "retry.max_retries must be positive",
		},
		{
			name: "backoff below one",
			body: "[retry]\nbackoff_factor = 0.5\n",
			want: "retry.backoff_factor",
		},
		{
			name: "negative entry delay",
			body: "[transfer]\nentry_delay = -1\n",
			want: "transfer.entry_delay",
		},
		{
			name: "unknown log format",
			body: "[logging]\nformat = \"yaml\"\n",
			want: "logging.format",
		},
		{
			name: "relative base url",
			body: "[daily]\nbase_url = \"api.daily.co\"\n",
			want: "daily.base_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearRunEnv(t)
			t.Setenv("HOME", t.TempDir())
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestRequireKeys(t *testing.T) {
	clearRunEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if _, err := cfg.RequireSourceKey(); err == nil {
		t.Fatal("expected missing source key error")
	} else if !strings.Contains(err.Error(), "DAILY_SOURCE_API_KEY") {
		t.Fatalf("expected env var hint, got %v", err)
	}
	if _, err := cfg.RequireTargetKey(); err == nil {
		t.Fatal("expected missing target key error")
	}

	cfg.Daily.SourceAPIKey = "abc"
	key, err := cfg.RequireSourceKey()
	if err != nil || key != "abc" {
		t.Fatalf("expected key abc, got %q (err=%v)", key, err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	clearRunEnv(t)
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected sample at %q to be used, got %q", path, resolved)
	}

	want := config.Default()
	if cfg.Retry.MaxRetries != want.Retry.MaxRetries {
		t.Fatalf("sample max_retries diverges from default: %d", cfg.Retry.MaxRetries)
	}
	if cfg.Transfer.EntryDelay != want.Transfer.EntryDelay {
		t.Fatalf("sample entry_delay diverges from default: %d", cfg.Transfer.EntryDelay)
	}
	if cfg.Daily.BaseURL != want.Daily.BaseURL {
		t.Fatalf("sample base_url diverges from default: %q", cfg.Daily.BaseURL)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("sample logging diverges from defaults: %+v", cfg.Logging)
	}
}
