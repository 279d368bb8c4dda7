package logger

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap with context-aware level methods so call sites can pass
// the request context without caring whether it carries log fields.
type Logger struct {
	l *zap.Logger
}

var (
	mu     sync.RWMutex
	global = &Logger{l: zap.NewNop()}
)

// Init builds the process-wide logger. level is a zap level string
// ("debug", "info", ...); asJSON switches between JSON and console encoding.
func Init(level string, asJSON bool) error {
	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		return fmt.Errorf("logger.Init: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if !asJSON {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("logger.Init: %w", err)
	}

	mu.Lock()
	global = &Logger{l: l}
	mu.Unlock()

	return nil
}

func L() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func With(fields ...Field) *Logger {
	return &Logger{l: L().l.With(fields...)}
}

func (lg *Logger) With(fields ...Field) *Logger {
	return &Logger{l: lg.l.With(fields...)}
}

func (lg *Logger) Debug(_ context.Context, msg string, fields ...Field) {
	lg.l.Debug(msg, fields...)
}

func (lg *Logger) Info(_ context.Context, msg string, fields ...Field) {
	lg.l.Info(msg, fields...)
}

func (lg *Logger) Warn(_ context.Context, msg string, fields ...Field) {
	lg.l.Warn(msg, fields...)
}

func (lg *Logger) Error(_ context.Context, msg string, fields ...Field) {
	lg.l.Error(msg, fields...)
}

func (lg *Logger) Sync() error { return lg.l.Sync() }

func Debug(ctx context.Context, msg string, fields ...Field) { L().Debug(ctx, msg, fields...) }
func Info(ctx context.Context, msg string, fields ...Field)  { L().Info(ctx, msg, fields...) }
func Warn(ctx context.Context, msg string, fields ...Field)  { L().Warn(ctx, msg, fields...) }
func Error(ctx context.Context, msg string, fields ...Field) { L().Error(ctx, msg, fields...) }
