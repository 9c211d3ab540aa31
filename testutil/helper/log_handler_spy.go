// Package helper provides observability test doubles for the client's
// Logger, MetricsCollector, and TracingCollector ports.
package helper

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// LogHandlerSpy is a slog.Handler that captures log records for testing.
// Wrap it with slog.New to obtain a geotab.Logger.
type LogHandlerSpy struct {
	mu          sync.Mutex
	records     []slog.Record
	logToStdout bool
}

// NewLogHandlerSpy creates a new LogHandlerSpy.
// Set logToStdout to also print records, which helps when debugging tests.
func NewLogHandlerSpy(logToStdout bool) *LogHandlerSpy {
	return &LogHandlerSpy{
		records:     make([]slog.Record, 0),
		logToStdout: logToStdout,
	}
}

// Handle implements slog.Handler.
func (s *LogHandlerSpy) Handle(ctx context.Context, record slog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)

	if s.logToStdout {
		jsonHandler := slog.NewJSONHandler(os.Stdout, nil)
		_ = jsonHandler.Handle(ctx, record)
	}

	return nil
}

// Enabled implements slog.Handler; the spy captures every level.
func (s *LogHandlerSpy) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler.
func (s *LogHandlerSpy) WithAttrs(_ []slog.Attr) slog.Handler {
	return s
}

// WithGroup implements slog.Handler.
func (s *LogHandlerSpy) WithGroup(_ string) slog.Handler {
	return s
}

// RecordCount returns the number of captured log records.
func (s *LogHandlerSpy) RecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Records returns a copy of all captured log records.
func (s *LogHandlerSpy) Records() []slog.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]slog.Record, len(s.records))
	copy(records, s.records)

	return records
}

// MessagesAtLevel returns the messages of all records logged at the given level.
func (s *LogHandlerSpy) MessagesAtLevel(level slog.Level) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]string, 0, len(s.records))

	for _, record := range s.records {
		if record.Level == level {
			messages = append(messages, record.Message)
		}
	}

	return messages
}

// Reset clears all captured log records.
func (s *LogHandlerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}
