// Package redis constructs the process-wide Redis client handle, created once
// at startup and injected where needed.
package redis
