// Package httpserver wraps the standard HTTP server with address validation
// and graceful shutdown for the admin/observability surface.
package httpserver
