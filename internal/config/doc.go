// Package config loads, normalizes, and validates annconv configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and normalizes file suffixes so they always
// begin with a dot. Command-line flags override individual fields after
// loading. Always obtain settings through this package so downstream code
// receives sanitized suffixes, a validated tokenizer strategy, and clear
// validation errors.
package config
