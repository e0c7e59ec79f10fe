// Package logger builds configured log/slog loggers.
//
// Output format and level come from functional options or from an
// environment-driven Config (LOG_LEVEL, LOG_FORMAT). Attr helpers keep
// attribute keys consistent across the codebase.
package logger
