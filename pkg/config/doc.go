// Package config handles configuration management for macgen.
// It loads layered TOML configuration (embedded defaults, the user's XDG
// config file, a per-project .macgen.toml) plus MACGEN_* environment
// variables through koanf.
package config
