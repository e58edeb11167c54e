// Package pipeline drives recipe creation from admission to a terminal
// status.
//
// Submission is synchronous up through URL normalization, the admission
// pre-check, lock acquisition, and creation of the recipe shell; the caller
// gets the recipe id immediately. A worker goroutine then runs the rest:
// metadata resolution and verification in sequence, followed by a
// concurrent fan-out of the four content generation stages. Every stage
// records a RUNNING progress event before it starts and exactly one
// SUCCESS or FAILED event after it resolves. The first stage failure
// drives the recipe to its terminal status without waiting for sibling
// stages; siblings are never cancelled, and compensation of partial
// content runs after the last of them settles.
package pipeline
