// Package logger configures structured JSON logging with log/slog and
// carries request-scoped loggers in a context.Context.
package logger
