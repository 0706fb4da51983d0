// Package release bulk-releases purchased numbers from one account.
//
// Releasing permanently gives a number back to the platform, so the command
// layer demands a double confirmation before calling in here. The batch
// itself mirrors the transfer executor's isolation rule: one number failing
// to release never stops the rest.
package release
