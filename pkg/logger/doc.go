// Package logger configures structured logging with slog. Output format
// switches between JSON (prod) and text (everything else), and every record
// carries the service and environment attributes.
package logger
