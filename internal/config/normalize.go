package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeDaily(); err != nil {
		return err
	}
	if err := c.normalizeRetry(); err != nil {
		return err
	}
	if err := c.normalizeTransfer(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeDaily() error {
	if c.Daily.SourceAPIKey == "" {
		if value, ok := os.LookupEnv("DAILY_SOURCE_API_KEY"); ok {
			c.Daily.SourceAPIKey = value
		}
	}
	if c.Daily.TargetAPIKey == "" {
		if value, ok := os.LookupEnv("DAILY_TARGET_API_KEY"); ok {
			c.Daily.TargetAPIKey = value
		}
	}
	c.Daily.SourceAPIKey = strings.TrimSpace(c.Daily.SourceAPIKey)
	c.Daily.TargetAPIKey = strings.TrimSpace(c.Daily.TargetAPIKey)
	c.Daily.BaseURL = strings.TrimRight(strings.TrimSpace(c.Daily.BaseURL), "/")
	if c.Daily.BaseURL == "" {
		c.Daily.BaseURL = defaultBaseURL
	}
	return nil
}

// normalizeRetry applies the environment tunables the migration scripts have
// always honoured. Unlike the API keys, these override file values: the
// environment is their primary interface.
func (c *Config) normalizeRetry() error {
	if value, ok := lookupTrimmed("MAX_RETRIES"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("MAX_RETRIES: invalid integer %q", value)
		}
		c.Retry.MaxRetries = parsed
	}
	if value, ok := lookupTrimmed("INITIAL_DELAY"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("INITIAL_DELAY: invalid integer %q", value)
		}
		c.Retry.InitialDelay = parsed
	}
	if value, ok := lookupTrimmed("BACKOFF_FACTOR"); ok {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("BACKOFF_FACTOR: invalid number %q", value)
		}
		c.Retry.BackoffFactor = parsed
	}
	return nil
}

func (c *Config) normalizeTransfer() error {
	if value, ok := lookupTrimmed("TRANSFER_DELAY"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("TRANSFER_DELAY: invalid integer %q", value)
		}
		c.Transfer.EntryDelay = parsed
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.PlanFile) == "" {
		c.Paths.PlanFile = defaultPlanFile
	}
	if c.Paths.PlanFile, err = expandPath(c.Paths.PlanFile); err != nil {
		return fmt.Errorf("paths.plan_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.CallerIDFile) == "" {
		c.Paths.CallerIDFile = defaultCallerIDFile
	}
	if c.Paths.CallerIDFile, err = expandPath(c.Paths.CallerIDFile); err != nil {
		return fmt.Errorf("paths.caller_id_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.SuccessFile) == "" {
		c.Paths.SuccessFile = defaultSuccessFile
	}
	if c.Paths.SuccessFile, err = expandPath(c.Paths.SuccessFile); err != nil {
		return fmt.Errorf("paths.success_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.FailureFile) == "" {
		c.Paths.FailureFile = defaultFailureFile
	}
	if c.Paths.FailureFile, err = expandPath(c.Paths.FailureFile); err != nil {
		return fmt.Errorf("paths.failure_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func lookupTrimmed(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}
