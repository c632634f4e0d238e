// Package progress keeps the timestamped status log of one run and pushes
// the full text to the status message on every append.
package progress

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nguyentantai21042004/minutes-bot/internal/logger"
)

const timeLayout = "15:04:05.000"

// Publisher replaces the displayed text of the target message
type Publisher interface {
	Publish(ctx context.Context, text string) error
}

// PublisherFunc adapts a function to Publisher
type PublisherFunc func(ctx context.Context, text string) error

func (f PublisherFunc) Publish(ctx context.Context, text string) error { return f(ctx, text) }

// Log is an append-only list of "[HH:MM:SS.mmm] message" lines
type Log struct {
	mu    sync.Mutex
	now   func() time.Time
	lines []string
}

// NewLog creates an empty Log. now defaults to time.Now.
func NewLog(now func() time.Time) *Log {
	if now == nil {
		now = time.Now
	}
	return &Log{now: now}
}

// Add appends a timestamped line and returns it
func (l *Log) Add(format string, args ...interface{}) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("[%s] %s", l.now().Format(timeLayout), fmt.Sprintf(format, args...))
	l.lines = append(l.lines, line)
	return line
}

// Lines returns a copy of the lines in append order
func (l *Log) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// String joins all lines with newlines
func (l *Log) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}

// Reporter couples a Log with the message it is rendered into
type Reporter struct {
	log       *Log
	publisher Publisher
	logger    logger.Logger
}

func NewReporter(log *Log, publisher Publisher, l logger.Logger) *Reporter {
	return &Reporter{log: log, publisher: publisher, logger: l}
}

// Append adds a line and rewrites the target message with the whole log.
// A failed publish is logged only; the next Append carries every line.
func (r *Reporter) Append(ctx context.Context, format string, args ...interface{}) {
	line := r.log.Add(format, args...)
	r.logger.Info(ctx, "%s", line)

	if err := r.publisher.Publish(ctx, r.log.String()); err != nil {
		r.logger.Warn(ctx, "Failed to update progress message: %v", err)
	}
}

func (r *Reporter) Log() *Log { return r.log }
