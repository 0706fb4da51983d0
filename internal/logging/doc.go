// Package logging centralizes logger construction for the migration tool.
//
// Loggers are standard library slog loggers behind two handlers: a console
// handler that renders compact single-line output (timestamp, level,
// component prefix, message, k=v attributes) for interactive runs, and a
// JSON handler for machine-readable log files.
//
// The package also defines the standardized attribute keys (component,
// identifier, account, phone_id, run_id) and helpers that lift annotations
// placed on a context by the services package into log attributes, so every
// line emitted during a run carries the same correlation fields.
package logging
