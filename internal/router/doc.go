// Package router dispatches language-model calls to one of several
// interchangeable backends. Failing backends are isolated by per-backend
// circuit breakers; the remaining candidates are ordered by a selectable
// strategy and attempted strictly in sequence until one succeeds.
//
// Breaker-level failures are always recovered locally by the fallback loop.
// Only two errors reach the caller: ErrNoAvailableBackend when every breaker
// is open before dispatch, and AllBackendsFailedError when every candidate
// was attempted and failed.
package router
