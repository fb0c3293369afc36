// Package config loads, normalizes, and validates the TOML configuration
// that drives the portfolio pipeline.
package config
