// Package config handles configuration management for dedupe.
// It supports loading configuration from multiple sources including
// the embedded defaults, a TOML file, environment variables, and
// command-line flags, merged in that order.
package config
