// Package config handles configuration management for vpath.
//
// Configuration is layered with koanf: embedded defaults, an optional config
// file (TOML, YAML or JSON), VPATH_ environment variables and finally the
// command-line flags the user actually set.
package config
