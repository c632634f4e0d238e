package logger

import (
	"context"
	"io"
)

// Logger defines the logging operations used across the bot
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})

	// Writer returns an io.Writer that logs each line at info level.
	// It is used to bridge libraries that expect a *log.Logger.
	Writer() io.Writer
}
