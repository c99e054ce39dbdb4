package logger

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// loggerContextKey is the context key under which a request-scoped logger is stored.
type loggerContextKey struct{}

//nolint:gochecknoglobals // A process-wide logger with an adjustable level is intentional here.
var (
	// globalLevel is the mutable logging level shared by every logger created by this package.
	globalLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	// globalLogger is the default logger used when the context carries no logger.
	globalLogger = New(globalLevel)
)

// New creates a console logger writing to stderr with the provided level enabler.
// A nil level falls back to the package-wide level.
func New(level zapcore.LevelEnabler) *zap.Logger {
	if level == nil {
		level = globalLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		level,
	)

	return zap.New(core)
}

// Logger returns the process-wide logger.
func Logger() *zap.Logger {
	return globalLogger
}

// SetLevel changes the logging level for every logger created by this package.
func SetLevel(level zapcore.Level) {
	globalLevel.SetLevel(level)
}

// Level returns the current package-wide logging level.
func Level() zapcore.Level {
	return globalLevel.Level()
}

// IsDebugLevel reports whether debug logging is enabled.
func IsDebugLevel() bool {
	return globalLevel.Level() <= zapcore.DebugLevel
}

// ParseLogLevel parses a textual log level (case-insensitive, surrounding
// whitespace ignored) into a zap level. The second return value reports
// whether the input was recognized.
func ParseLogLevel(level string) (zapcore.Level, bool) {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if normalized == "" {
		return zapcore.InvalidLevel, false
	}

	parsed, err := zapcore.ParseLevel(normalized)
	if err != nil {
		return zapcore.InvalidLevel, false
	}

	return parsed, true
}

// ToContext returns a copy of ctx carrying the provided logger.
func ToContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, l)
}

// FromContext returns the logger stored in ctx, or the process-wide logger.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerContextKey{}).(*zap.Logger); ok {
		return l
	}

	return globalLogger
}

// Debug logs a message at debug level.
func Debug(ctx context.Context, msg string) {
	FromContext(ctx).Debug(msg)
}

// Debugf logs a formatted message at debug level.
func Debugf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Debugf(format, args...)
}

// Info logs a message at info level.
func Info(ctx context.Context, msg string) {
	FromContext(ctx).Info(msg)
}

// Infof logs a formatted message at info level.
func Infof(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Infof(format, args...)
}

// Warnf logs a formatted message at warning level.
func Warnf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Warnf(format, args...)
}

// Errorf logs a formatted message at error level.
func Errorf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Errorf(format, args...)
}

// Fatalf logs a formatted message at fatal level and exits the process.
func Fatalf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Fatalf(format, args...)
}
