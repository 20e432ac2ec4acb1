// Package metrics collects routing observations through a buffered event
// channel. Emitting is non-blocking and lossy under pressure, so the
// dispatch path is never slowed down or failed by observability.
package metrics
