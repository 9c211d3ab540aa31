package helper

import (
	"context"
	"sync"

	"telematics-hq/mygeotab-go/geotab"
)

// TracingCollectorSpy is a geotab.TracingCollector implementation that
// captures spans for inspection in tests.
type TracingCollectorSpy struct {
	mu    sync.Mutex
	spans []*SpySpan
}

// SpySpan is one captured span with its lifecycle recorded.
type SpySpan struct {
	Name       string
	Status     string
	Attributes map[string]string
	Finished   bool
}

// SetStatus implements the SpanContext interface.
func (s *SpySpan) SetStatus(status string) {
	s.Status = status
}

// AddAttribute implements the SpanContext interface.
func (s *SpySpan) AddAttribute(key, value string) {
	s.Attributes[key] = value
}

// NewTracingCollectorSpy creates a new TracingCollectorSpy.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{spans: make([]*SpySpan, 0)}
}

// StartSpan implements the TracingCollector interface.
func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, geotab.SpanContext) {
	span := &SpySpan{
		Name:       name,
		Attributes: copyLabels(attrs),
	}

	s.mu.Lock()
	s.spans = append(s.spans, span)
	s.mu.Unlock()

	return ctx, span
}

// FinishSpan implements the TracingCollector interface.
func (s *TracingCollectorSpy) FinishSpan(spanCtx geotab.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*SpySpan)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	span.Status = status
	span.Finished = true

	for key, value := range attrs {
		span.Attributes[key] = value
	}
}

// Spans returns all captured spans in start order.
func (s *TracingCollectorSpy) Spans() []*SpySpan {
	s.mu.Lock()
	defer s.mu.Unlock()

	spans := make([]*SpySpan, len(s.spans))
	copy(spans, s.spans)

	return spans
}

var _ geotab.TracingCollector = (*TracingCollectorSpy)(nil)
