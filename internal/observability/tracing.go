package observability

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type SpanStatus string

const (
	SpanStatusOK    SpanStatus = "OK"
	SpanStatusError SpanStatus = "ERROR"
)

// Span is a lightweight in-process timing record. Spans are only ever
// logged; there is no exporter.
type Span struct {
	TraceID   string
	SpanID    string
	ParentID  string
	Operation string
	Start     time.Time

	mu       sync.Mutex
	duration time.Duration
	attrs    []slog.Attr
	status   SpanStatus
	err      string
}

type spanContextKey struct{}

// StartSpan opens a span, nesting it under any span already in ctx.
func StartSpan(ctx context.Context, operation string) (context.Context, *Span) {
	span := &Span{
		SpanID:    newID()[:16],
		Operation: operation,
		Start:     time.Now(),
		status:    SpanStatusOK,
	}
	if parent := GetSpan(ctx); parent != nil {
		span.TraceID = parent.TraceID
		span.ParentID = parent.SpanID
	} else {
		span.TraceID = newID()
	}
	return context.WithValue(ctx, spanContextKey{}, span), span
}

func GetSpan(ctx context.Context) *Span {
	span, _ := ctx.Value(spanContextKey{}).(*Span)
	return span
}

// SetAttr records a key/value on the span. Safe for concurrent use, since
// report steps run in parallel under one span.
func (s *Span) SetAttr(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, slog.Any(key, value))
}

func (s *Span) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = SpanStatusError
	if err != nil {
		s.err = err.Error()
	}
}

func (s *Span) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duration = time.Since(s.Start)
}

func (s *Span) Status() SpanStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LogValue lets a span be passed directly as a slog attribute.
func (s *Span) LogValue() slog.Value {
	s.mu.Lock()
	defer s.mu.Unlock()

	attrs := []slog.Attr{
		slog.String("trace_id", s.TraceID),
		slog.String("span_id", s.SpanID),
		slog.String("operation", s.Operation),
		slog.String("status", string(s.status)),
	}
	if s.ParentID != "" {
		attrs = append(attrs, slog.String("parent_id", s.ParentID))
	}
	if s.duration > 0 {
		attrs = append(attrs, slog.Duration("duration", s.duration))
	}
	if s.err != "" {
		attrs = append(attrs, slog.String("error", s.err))
	}
	attrs = append(attrs, s.attrs...)
	return slog.GroupValue(attrs...)
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
