// Package logger wraps zerolog with the printf-style helpers used during
// startup and the structured logger used by request handling.
package logger

// Info logs a formatted informational message.
func Info(format string, args ...interface{}) {
	zlog.Info().Msgf(format, args...)
}

// Warn logs a formatted warning.
func Warn(format string, args ...interface{}) {
	zlog.Warn().Msgf(format, args...)
}

// Error logs a formatted error.
func Error(format string, args ...interface{}) {
	zlog.Error().Msgf(format, args...)
}

// Fatal logs a formatted message and exits the process.
func Fatal(format string, args ...interface{}) {
	zlog.Fatal().Msgf(format, args...)
}
