package observability

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type Field interface {
	Key() string
	Value() interface{}
}

type stringField struct{ key, val string }

func (f stringField) Key() string        { return f.key }
func (f stringField) Value() interface{} { return f.val }

type intField struct {
	key string
	val int
}

func (f intField) Key() string        { return f.key }
func (f intField) Value() interface{} { return f.val }

type float64Field struct {
	key string
	val float64
}

func (f float64Field) Key() string        { return f.key }
func (f float64Field) Value() interface{} { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string        { return f.key }
func (f errorField) Value() interface{} { return f.err }

func String(key, value string) Field          { return stringField{key, value} }
func Int(key string, value int) Field         { return intField{key, value} }
func Float64(key string, value float64) Field { return float64Field{key, value} }
func Error(key string, err error) Field       { return errorField{key, err} }

type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// WriterLogger writes one line per entry to an io.Writer. Debug entries are
// suppressed unless verbose is set. Writes are serialized.
type WriterLogger struct {
	mu      *sync.Mutex
	w       io.Writer
	verbose bool
	bound   []Field
}

// NewWriterLogger creates a logger over w.
func NewWriterLogger(w io.Writer, verbose bool) *WriterLogger {
	return &WriterLogger{mu: &sync.Mutex{}, w: w, verbose: verbose}
}

func (l *WriterLogger) Debug(msg string, fields ...Field) {
	if l.verbose {
		l.emit("DEBUG", msg, fields)
	}
}
func (l *WriterLogger) Info(msg string, fields ...Field)  { l.emit("INFO", msg, fields) }
func (l *WriterLogger) Warn(msg string, fields ...Field)  { l.emit("WARN", msg, fields) }
func (l *WriterLogger) Error(msg string, fields ...Field) { l.emit("ERROR", msg, fields) }

func (l *WriterLogger) With(fields ...Field) Logger {
	bound := make([]Field, 0, len(l.bound)+len(fields))
	bound = append(bound, l.bound...)
	bound = append(bound, fields...)
	return &WriterLogger{mu: l.mu, w: l.w, verbose: l.verbose, bound: bound}
}

func (l *WriterLogger) emit(level, msg string, fields []Field) {
	var sb strings.Builder
	sb.WriteString(level)
	sb.WriteByte(' ')
	sb.WriteString(msg)
	for _, f := range l.bound {
		fmt.Fprintf(&sb, " %s=%v", f.Key(), f.Value())
	}
	for _, f := range fields {
		fmt.Fprintf(&sb, " %s=%v", f.Key(), f.Value())
	}
	sb.WriteByte('\n')
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, sb.String())
}

// Tracer provides distributed tracing hooks for library operations.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, Span)
}

// Span represents a tracing span.
type Span interface {
	SetTag(key string, value interface{})
	SetError(err error)
	Finish()
}

type nopTracer struct{}

func (nopTracer) StartSpan(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, nopSpan{}
}

// NopTracer returns a tracer that does nothing.
func NopTracer() Tracer { return nopTracer{} }

type nopSpan struct{}

func (nopSpan) SetTag(string, interface{}) {}
func (nopSpan) SetError(error)             {}
func (nopSpan) Finish()                    {}

// Standard metric names emitted by the library.
const (
	MetricPaginationTime  = "layout.pagination.duration"
	MetricPageCount       = "layout.pages.count"
	MetricBreakCount      = "layout.breaks.count"
	MetricBlockCount      = "layout.blocks.count"
	MetricSectionMeasures = "layout.sections.measures"
	MetricFieldSegments   = "layout.fields.segments"
)
