package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"numport/internal/config"
	"numport/internal/logging"
	"numport/internal/prompt"
	"numport/internal/services/daily"
)

const (
	accountSource = "source"
	accountTarget = "target"
)

// commandContext shares lazily constructed state across subcommands: the
// loaded configuration and one logger tagged with this invocation's run id.
// API clients are built on demand because each command needs a different
// subset of accounts.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// ensureConfig loads .env overrides and the configuration file once. The
// migration tooling has always honoured a local .env with its values winning
// over inherited environment.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		_ = godotenv.Overload(".env")

		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the logger once, tagged with a fresh run id so every
// record from one invocation can be correlated.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger.With(logging.String(logging.FieldRunID, uuid.NewString()))
	})
	return c.logger, c.loggerErr
}

// clientFor builds an API client for the named account role.
func (c *commandContext) clientFor(account string) (*daily.Client, error) {
	switch strings.ToLower(strings.TrimSpace(account)) {
	case accountSource:
		return c.sourceClient()
	case accountTarget:
		return c.targetClient()
	default:
		return nil, fmt.Errorf("unknown account %q (expected %s or %s)", account, accountSource, accountTarget)
	}
}

func (c *commandContext) sourceClient() (*daily.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	key, err := cfg.RequireSourceKey()
	if err != nil {
		return nil, err
	}
	return newPlatformClient(cfg, key)
}

func (c *commandContext) targetClient() (*daily.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	key, err := cfg.RequireTargetKey()
	if err != nil {
		return nil, err
	}
	return newPlatformClient(cfg, key)
}

// newPlatformClient applies the configured timeout and retry policy to a
// fresh client for one account key.
func newPlatformClient(cfg *config.Config, apiKey string) (*daily.Client, error) {
	policy := daily.DefaultRetryPolicy()
	policy.MaxAttempts = cfg.Retry.MaxRetries
	policy.InitialDelay = time.Duration(cfg.Retry.InitialDelay) * time.Second
	policy.BackoffFactor = cfg.Retry.BackoffFactor

	httpClient := &http.Client{Timeout: time.Duration(cfg.Daily.RequestTimeout) * time.Second}

	return daily.New(apiKey, cfg.Daily.BaseURL,
		daily.WithHTTPClient(httpClient),
		daily.WithRetryPolicy(policy))
}

// planPath resolves the transfer plan location, preferring an explicit
// override from a flag.
func (c *commandContext) planPath(override string) (string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	override = strings.TrimSpace(override)
	if override == "" {
		return cfg.Paths.PlanFile, nil
	}
	return config.ExpandPath(override)
}

// console returns a prompt console over the process terminal. Prompts go to
// stderr so they never mix with table or JSON output.
func (c *commandContext) console() *prompt.Console {
	return prompt.NewConsole(os.Stdin, os.Stderr)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
