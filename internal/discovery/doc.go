// Package discovery snapshots the source account's telephony state.
//
// Discovery never fails a run: each fetch that errors is logged and yields an
// empty result for that source only, so a partial snapshot still feeds the
// plan builder. Callers treat an empty number list as "nothing to transfer",
// not as an error.
package discovery
