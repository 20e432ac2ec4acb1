// Package config handles loading and parsing of configuration from YAML
// files and environment variables. It defines the application configuration
// structure including server settings, provider routes, strategy selection,
// circuit breaker tuning, and the health check interval.
package config
