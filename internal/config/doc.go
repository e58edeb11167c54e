// Package config loads and validates the TOML configuration shared by the
// daemon and the CLI. Values are resolved in three layers: built-in
// defaults, the configuration file, and normalization (tilde expansion,
// trimming) applied after decoding.
package config
