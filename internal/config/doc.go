// Package config loads, normalizes, and validates numport configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the environment variables the
// migration scripts have always used: DAILY_SOURCE_API_KEY and
// DAILY_TARGET_API_KEY for credentials, plus MAX_RETRIES, INITIAL_DELAY,
// BACKOFF_FACTOR, and TRANSFER_DELAY for run tuning. The Config type
// centralizes every knob the CLI needs, from artifact file locations to
// retry pacing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
