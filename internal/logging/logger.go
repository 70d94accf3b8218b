package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is our app-wide logging abstraction.
// We use key-value style args similar to zap.SugaredLogger.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
	With(args ...any) Logger
}

type zapLogger struct {
	s *zap.SugaredLogger
}

// New creates a JSON logger on stdout with service + env fields pre-attached.
// An unparsable level falls back to info.
func New(serviceName, env, level string) Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.OutputPaths = []string{"stdout"}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))

	core, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return fromZap(core, serviceName, env)
}

// NewWithCore builds a Logger on an existing zap core, e.g. an observer in tests.
func NewWithCore(c zapcore.Core, serviceName, env string) Logger {
	return fromZap(zap.New(c), serviceName, env)
}

func fromZap(z *zap.Logger, serviceName, env string) Logger {
	s := z.Sugar().With(
		"service", serviceName,
		"env", env,
	)
	return &zapLogger{s: s}
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() Logger {
	return &zapLogger{s: zap.NewNop().Sugar()}
}

func ParseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func (l *zapLogger) Info(msg string, args ...any) {
	l.s.Infow(msg, args...)
}

func (l *zapLogger) Error(msg string, args ...any) {
	l.s.Errorw(msg, args...)
}

func (l *zapLogger) Debug(msg string, args ...any) {
	l.s.Debugw(msg, args...)
}

func (l *zapLogger) With(args ...any) Logger {
	return &zapLogger{s: l.s.With(args...)}
}

// Sync flushes buffered entries; call it once on shutdown.
func Sync(l Logger) {
	if zl, ok := l.(*zapLogger); ok {
		_ = zl.s.Sync()
	}
}

// AsZap unwraps our Logger for Watermill. Other implementations get a no-op.
func AsZap(l Logger) *zap.Logger {
	if zl, ok := l.(*zapLogger); ok {
		return zl.s.Desugar()
	}
	return zap.NewNop()
}
