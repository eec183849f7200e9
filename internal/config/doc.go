// Package config loads and validates the TOML configuration for the
// reconciler. Paths are expanded (including ~) and normalized at load time so
// downstream code never sees relative or user-shorthand paths.
package config
