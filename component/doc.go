// Package component defines the lifecycle contract for infrastructure
// components (HTTP server, remote config store, telemetry) and a registry
// that starts them in order and stops them in reverse.
package component
