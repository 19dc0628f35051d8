// Package config loads, normalizes, and validates trimmux configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: external tool names, encoder preferences, selection rules
// and policies, container overrides, and output locations.
//
// Two fields carry no default on purpose: selection.fallback and
// selection.unknown_streams. Silently keeping or dropping streams the user
// never decided on is worse than refusing to run, so validation fails until
// both are stated.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
