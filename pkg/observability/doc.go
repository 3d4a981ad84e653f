/*
Package observability turns checker lifecycle events into Prometheus metrics.

Metrics.Hooks plugs into dfacheck.WithLifecycleHooks; Chain composes those
hooks with others, such as debug logging.
*/
package observability
