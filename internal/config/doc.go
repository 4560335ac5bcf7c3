// Package config loads and validates cinelist's TOML configuration.
//
// Configuration sections by subsystem:
//   - Paths: list directory, destination database, cache and log dirs
//   - Ingest: commit cadence, progress cadence, resolver cache modes
//   - Logging: log format and level
//
// Load falls back to built-in defaults when no config file exists; all
// path fields come back expanded and normalized.
package config
