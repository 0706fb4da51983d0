// Package plan reconciles purchased numbers with dial-in configs and builds
// the transfer plan consumed by the executor.
//
// Dial-in configs arrive from three places on the source account: the root
// domain's pinless list, the root domain's pin list, and the standalone
// domain-dialin-config collection. Reconcile folds them into one map keyed by
// phone number (or SIP URI when no number is set) with last-writer-wins
// precedence: domain-dialin-config overrides root pin overrides root pinless.
//
// Build pairs each selected number with its reconciled config. Numbers the
// platform issued no resource id for cannot be moved and are routed to a
// caller id seed list instead. Configs that matched no number and carry no
// phone number are orphans; they enter the plan only through an explicit
// decision, never silently. A final repair pass rewrites the known-bad
// "dailybots" room_creation_api value with a supplied replacement while
// preserving the original for restoration after a rollback.
//
// The plan file is the sole handoff between planning and execution. It
// serialises as a JSON object whose key order is the execution order, and it
// may be hand-edited between the two phases.
package plan
