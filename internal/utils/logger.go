package utils

import (
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	baseMu     sync.Mutex
	baseLogger *zap.Logger
)

// InitLogger builds the process-wide zap logger. level accepts DEBUG, INFO,
// WARN and ERROR (any case); development switches to the console encoder.
func InitLogger(level string, development bool) *zap.Logger {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}

	baseMu.Lock()
	baseLogger = l
	baseMu.Unlock()
	return l
}

// SetBase replaces the process-wide logger, mostly for tests.
func SetBase(l *zap.Logger) {
	baseMu.Lock()
	baseLogger = l
	baseMu.Unlock()
}

// Sync flushes buffered log entries.
func Sync() {
	baseMu.Lock()
	l := baseLogger
	baseMu.Unlock()
	if l != nil {
		_ = l.Sync()
	}
}

func base() *zap.Logger {
	baseMu.Lock()
	l := baseLogger
	baseMu.Unlock()
	if l == nil {
		return InitLogger(os.Getenv("LOG_LEVEL"), false)
	}
	return l
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger is a named, printf-style view over the process zap logger
type Logger struct {
	sugar *zap.SugaredLogger
}

// NewLogger creates a new logger instance for a component
func NewLogger(prefix string) *Logger {
	return &Logger{sugar: base().Named(prefix).Sugar()}
}

// With returns a logger that attaches the given key/value pairs to every entry.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(keysAndValues...)}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// HTTPLoggingMiddleware logs method, path, status and duration of each request
func HTTPLoggingMiddleware(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapped, r)

			logger.sugar.Infow("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration", time.Since(start),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
