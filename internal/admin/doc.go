// Package admin exposes the router's administrative operations over HTTP:
// provider health, metrics snapshots, strategy selection, and breaker
// resets. None of them require a restart.
package admin
