// Package config loads, normalizes, and validates fftranscode configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The file provides per-machine defaults
// for codec parameters and tool paths; command-line flags override
// individual values per run.
package config
