// Package health watches provider availability by polling the router's
// health report at the configured advisory interval. It only observes; the
// dispatch loop never depends on it.
package health
