// Package httpserver runs the API's HTTP listener with graceful shutdown on
// SIGINT/SIGTERM and provides the health probe handler.
package httpserver
