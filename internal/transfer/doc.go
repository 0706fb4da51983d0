// Package transfer executes a built plan against the two accounts.
//
// Entries run strictly in plan order, one at a time. Each entry is an
// isolated three-step mutation: move the number to the target account,
// best-effort delete the source copy of a domain-dialin-config, recreate the
// config on the target. A failed entry never aborts the batch; it records its
// failure and the run continues with the next identifier. When the target
// config create fails after the number has already moved, the human is asked
// whether to roll the entry back (return the number, recreate the deleted
// source config).
//
// Sequential order is a correctness property, not a throughput choice: the
// platform has no transactional isolation across these endpoints, so no two
// entries touching the same number or config may ever be in flight at once.
// The executor also paces entries with a configurable delay to stay under
// rate limits, and a file lock keeps two runs from mutating the same
// accounts concurrently.
package transfer
