// Package prompt implements the interactive decision points of a migration
// run: number selection, orphan inclusion, the room_creation_api repair
// value, and rollback confirmation.
//
// The console reads from any reader and writes prompts to any writer, so
// commands wire it to stdin/stderr and tests drive it with scripted input.
// Scripted runs use NonInteractiveDecisions instead, which never blocks on a
// terminal: it surfaces orphans in the log without including them and refuses
// to invent a repair value.
package prompt
