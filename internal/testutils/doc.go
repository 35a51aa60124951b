// Package testutils provides in-memory collaborators and helpers shared by
// the package tests: a lazy relation and model over plain records, a
// log-capturing slog handler and JSON:API response decoders.
package testutils
