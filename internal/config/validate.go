package config

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
)

// Validate ensures the configuration is usable. API keys are checked at
// client construction instead, because each command needs a different subset
// of accounts.
func (c *Config) Validate() error {
	if err := c.validateDaily(); err != nil {
		return err
	}
	if err := c.validateRetry(); err != nil {
		return err
	}
	if err := c.validateTransfer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDaily() error {
	parsed, err := url.Parse(c.Daily.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("daily.base_url must be an absolute URL, got %q", c.Daily.BaseURL)
	}
	if c.Daily.RequestTimeout <= 0 {
		return errors.New("daily.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateRetry() error {
	if err := ensurePositiveMap(map[string]int{
		"retry.max_retries":   c.Retry.MaxRetries,
		"retry.initial_delay": c.Retry.InitialDelay,
	}); err != nil {
		return err
	}
	if c.Retry.BackoffFactor < 1 {
		return errors.New("retry.backoff_factor must be at least 1")
	}
	return nil
}

func (c *Config) validateTransfer() error {
	if c.Transfer.EntryDelay < 0 {
		return errors.New("transfer.entry_delay must not be negative (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if values[key] <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

// RequireSourceKey returns the source account credential or a configuration
// error explaining how to provide it.
func (c *Config) RequireSourceKey() (string, error) {
	if c.Daily.SourceAPIKey == "" {
		return "", missingKeyError("daily.source_api_key", "DAILY_SOURCE_API_KEY")
	}
	return c.Daily.SourceAPIKey, nil
}

// RequireTargetKey returns the target account credential or a configuration
// error explaining how to provide it.
func (c *Config) RequireTargetKey() (string, error) {
	if c.Daily.TargetAPIKey == "" {
		return "", missingKeyError("daily.target_api_key", "DAILY_TARGET_API_KEY")
	}
	return c.Daily.TargetAPIKey, nil
}

func missingKeyError(field, envVar string) error {
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/numport/config.toml"
	}
	return fmt.Errorf("%s is required. Set %s env var or edit %s (create with 'numport config init')", field, envVar, defaultPath)
}
