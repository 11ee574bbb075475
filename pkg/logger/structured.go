package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "pcmall-backend"

var zlog = zerolog.New(os.Stdout).With().Timestamp().Str("service", serviceName).Logger()

// InitStructured initializes the structured zerolog logger.
// Development environments get a human-readable console writer, everything
// else gets one JSON object per line.
func InitStructured(env string) {
	InitWithWriter(env, nil)
}

// InitWithWriter is InitStructured with an explicit output. A nil writer
// means stdout.
func InitWithWriter(env string, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}

	var w io.Writer = out
	if isDevelopment(env) {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zlog = zerolog.New(w).With().
		Timestamp().
		Str("service", serviceName).
		Str("env", env).
		Logger()
}

// GetLogger returns the global zerolog logger
func GetLogger() *zerolog.Logger {
	return &zlog
}

// WithRequestID returns a logger with request_id field
func WithRequestID(requestID string) zerolog.Logger {
	return zlog.With().Str("request_id", requestID).Logger()
}

// WithComponent returns a logger tagged with the emitting component
func WithComponent(name string) zerolog.Logger {
	return zlog.With().Str("component", name).Logger()
}

func isDevelopment(env string) bool {
	switch env {
	case "", "local", "dev", "development":
		return true
	}
	return false
}
