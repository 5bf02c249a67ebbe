// Package config loads runtime settings from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > YAML config >
// Environment variables > Defaults. The filter file itself is not part of
// these settings; see package patterns.
package config
