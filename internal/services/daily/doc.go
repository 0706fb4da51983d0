// Package daily provides access to the telephony platform REST API for one
// account. The migration tool holds two clients, one per account role, and
// every mutating call the transfer executor makes goes through this package.
//
// All calls share a status-based retry policy: 400 and 429 responses are
// retried with exponential backoff, anything else fails immediately. Retry
// exhaustion and terminal responses both surface as *APIError so callers can
// branch on the status and response text with errors.As.
package daily
