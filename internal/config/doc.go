// Package config loads, normalizes, and validates framescan configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: scan defaults, logging, and the scan-history catalog. The
// engine itself never reads configuration or ambient state; the CLI
// resolves a Config into engine values.
package config
