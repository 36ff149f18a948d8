package ioctx

import (
	"context"
	"io"
	"log/slog"
)

type ctxKey int

const (
	stdoutKey ctxKey = iota
	stderrKey
	loggerKey
)

func valueOr[T any](ctx context.Context, key ctxKey, fallback T) T {
	if v, ok := ctx.Value(key).(T); ok {
		return v
	}
	return fallback
}

// StdoutFromContext returns the writer traces and results are printed to,
// or io.Discard.
func StdoutFromContext(ctx context.Context) io.Writer {
	return valueOr[io.Writer](ctx, stdoutKey, io.Discard)
}

func StdoutToContext(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stdoutKey, w)
}

// StderrFromContext returns the writer diagnostics are printed to, or
// io.Discard.
func StderrFromContext(ctx context.Context) io.Writer {
	return valueOr[io.Writer](ctx, stderrKey, io.Discard)
}

func StderrToContext(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stderrKey, w)
}

// LoggerFromContext returns the logger stored in ctx, falling back to
// slog.Default.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return valueOr(ctx, loggerKey, slog.Default())
}

func LoggerToContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}
