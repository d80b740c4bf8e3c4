// Package logger builds *slog.Logger instances for formguard binaries and
// libraries.
//
// New takes functional options (level, format, output, static attributes and
// context extractors) and wraps the chosen slog handler with
// LogHandlerDecorator, which copies request-scoped values such as a request id
// from the context into every record. NewFromConfig does the same from a
// Config loaded with pkg/config.
//
// attr.go holds constructors for the attribute keys used across the module
// (component, field, rule, valid, ...) so log queries stay consistent.
//
//	log := logger.New(logger.WithService("formguard"), logger.WithLevel(slog.LevelDebug))
//	log.Debug("validation pass", logger.Component("validation"), logger.Valid(false))
package logger
