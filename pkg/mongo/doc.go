// Package mongo constructs the process-wide MongoDB client handle.
//
// The client is created once at startup from environment-driven Config and
// injected into storage implementations, so no package-level connection state
// exists anywhere else.
package mongo
