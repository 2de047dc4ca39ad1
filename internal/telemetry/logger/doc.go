// Package logger provides structured logging for pak.
//
// It wraps log/slog:
//
//   - logger.go: logger construction, levels and the process-wide default
//   - context.go: request ID propagation through context.Context
//   - redact.go: masking of API keys and sensitive fields
//
// Any string value that parses as a key with a registered prefix is
// written in its masked form (prefix_short_***), so a key accidentally
// passed to a log call never reaches the output in full.
package logger
