// Package logging builds the slog loggers used across the daemon and CLI.
// Two output formats are supported: a compact console format that colors
// levels when attached to a terminal, and line-delimited JSON for log
// shipping. WithContext enriches a logger with the recipe id, stage, and
// request id carried in the request context.
package logging
