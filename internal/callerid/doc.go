// Package callerid manages the verified caller id seed list produced during
// plan building.
//
// Purchased numbers that have no platform resource id cannot be moved with a
// transfer call; the plan builder records them here so they can be registered
// on the target account as verified caller ids in a separate pass. The seed
// file is a JSON array of {number, name} objects and registration continues
// past individual failures so one bad number never blocks the rest.
package callerid
