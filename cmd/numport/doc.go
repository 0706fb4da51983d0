// Package main hosts the numport CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into calls against
// the platform REST API for the two accounts involved in a migration:
// credential checks, discovery and plan building, plan execution, bulk number
// release, and caller ID registration. It centralizes configuration
// resolution, API client construction, and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
// That separation keeps the CLI declarative while the migration logic stays
// testable on its own.
package main
