// Package config loads, normalizes, and validates yoloprep configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes the input and
// output roots, the sampling stride, the class table, and the external tool
// names so the CLI and pipeline discover them in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, a positive stride, and clear validation errors.
package config
