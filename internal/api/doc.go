// Package api defines wire-format types and converters for the IPC layer,
// plus the service facade that the daemon exposes to it. It translates
// internal recipe models into transport-friendly DTOs so consumers never
// couple to storage types.
//
// # Converters
//
// FromRecipe: recipe.Recipe -> RecipeSummary with RFC3339 timestamps.
//
// FromProgress: progress events in append order, states as upper-case
// strings matching the stored enum.
//
// # Design Notes
//
// DTOs use camelCase JSON tags. Describe counts the read before returning,
// so view counts reflect every successful lookup. Generated content is
// attached only for successful recipes; failed and in-flight recipes carry
// metadata and the progress log alone.
package api
