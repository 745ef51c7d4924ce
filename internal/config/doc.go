// Package config loads and validates the livefeed configuration from a YAML
// file, expanding ${VAR} environment references and applying defaults for
// every optional field.
package config
