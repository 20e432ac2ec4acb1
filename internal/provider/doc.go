// Package provider defines backend routes and the executor capability used
// to call one named provider. The router is generic over the executor's
// result type; HTTPExecutor is the stock network implementation.
package provider
