// Package services defines shared utilities consumed by the migration
// commands and the remote platform integrations.
//
// Key responsibilities:
//   - Context helpers that stamp plan entry identifiers, account roles, and
//     correlation identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (transient vs remote vs validation vs configuration)
//     consistent across the discovery, planning, and transfer layers.
//
// Use these helpers when wiring new command logic so operational behaviour
// (error handling, observability) stays uniform across the tool.
package services
