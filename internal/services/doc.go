// Package services provides the shared error taxonomy and context
// annotations used by the pipeline and the external service adapters.
//
// Errors are classified with sentinel markers so the orchestrator can map
// a stage failure to the correct terminal recipe status: a content-policy
// rejection resolves to BLOCKED while every other failure resolves to
// FAILED. Context annotations carry the recipe id, stage name, and request
// id so log records emitted deep inside an adapter stay correlated with
// the pipeline run that triggered them.
package services
