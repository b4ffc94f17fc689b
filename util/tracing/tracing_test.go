package tracing

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/ulogger"
	"github.com/ordishs/gocore"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// initTestTracer installs a provider that records spans in memory.
func initTestTracer(t *testing.T) *tracetest.SpanRecorder {
	recorder := tracetest.NewSpanRecorder()

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(recorder),
	)

	otel.SetTracerProvider(provider)

	mu.Lock()
	tp = provider
	mu.Unlock()

	t.Cleanup(func() {
		_ = ShutdownTracer(context.Background())
	})

	return recorder
}

func TestUTracer_LogMessage(t *testing.T) {
	_ = initTestTracer(t)

	logger := newLineLogger()

	_, _, endFn := Tracer("asset").Start(context.Background(), "GetBlock",
		WithLogMessage(logger, "[GetBlock][%s] fetching", "123"),
	)

	assert.Equal(t, "[GetBlock][123] fetching", logger.lastLog)

	endFn()

	assert.Contains(t, logger.lastLog, "[GetBlock][123] fetching DONE in")
}

func TestUTracer_WithError(t *testing.T) {
	recorder := initTestTracer(t)

	logger := newLineLogger()

	_, _, endFn := Tracer("dashcore").Start(context.Background(), "Call",
		WithParentStat(gocore.NewStat("test")),
		WithTag("method", "getblock"),
		WithDebugLogMessage(logger, "calling"),
	)

	endFn(errors.NewNotFoundError("block not found"))

	assert.Equal(t, "DEBUG", logger.lastLevel)
	assert.Contains(t, logger.lastLog, "calling DONE in")
	assert.Contains(t, logger.lastLog, "with error:")
	assert.Contains(t, logger.lastLog, "block not found")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "Call", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestUTracer_ChildSpans(t *testing.T) {
	recorder := initTestTracer(t)

	tracer := Tracer("asset")

	ctx, parent, endParent := tracer.Start(context.Background(), "Parent")
	_, child, endChild := tracer.Start(ctx, "Child")

	endChild()
	endParent()

	assert.Equal(t, parent.SpanContext().TraceID(), child.SpanContext().TraceID())
	assert.Len(t, recorder.Ended(), 2)
}

func TestUTracer_Histogram(t *testing.T) {
	_ = initTestTracer(t)

	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{Name: "test_duration_seconds"})

	_, _, endFn := Tracer("asset").Start(context.Background(), "Timed", WithHistogram(histogram))
	endFn()

	m := &dto.Metric{}
	require.NoError(t, histogram.Write(m))
	assert.Equal(t, uint64(1), m.GetHistogram().GetSampleCount())
}

type lineLogger struct {
	lastLog   string
	lastLevel string
}

func newLineLogger() *lineLogger {
	return &lineLogger{}
}

func (l *lineLogger) New(service string, options ...ulogger.Option) ulogger.Logger { return l }
func (l *lineLogger) Duplicate(options ...ulogger.Option) ulogger.Logger       { return l }
func (l *lineLogger) LogLevel() int                                            { return 0 }
func (l *lineLogger) SetLogLevel(level string)                                 {}

func (l *lineLogger) Debugf(format string, args ...interface{}) { l.log("DEBUG", format, args...) }
func (l *lineLogger) Infof(format string, args ...interface{})  { l.log("INFO", format, args...) }
func (l *lineLogger) Warnf(format string, args ...interface{})  { l.log("WARN", format, args...) }
func (l *lineLogger) Errorf(format string, args ...interface{}) { l.log("ERROR", format, args...) }
func (l *lineLogger) Fatalf(format string, args ...interface{}) { l.log("FATAL", format, args...) }

func (l *lineLogger) log(level string, format string, args ...interface{}) {
	l.lastLevel = level
	l.lastLog = fmt.Sprintf(format, args...)
}

func TestExporterOptions(t *testing.T) {
	mustParse := func(raw string) *url.URL {
		u, err := url.Parse(raw)
		require.NoError(t, err)

		return u
	}

	assert.Len(t, exporterOptions(nil), 1)
	assert.Len(t, exporterOptions(mustParse("http://localhost:4318")), 2)
	assert.Len(t, exporterOptions(mustParse("https://otel.example.com")), 1)
	assert.Len(t, exporterOptions(mustParse("http://collector:4318/otlp/v1/traces")), 3)
}
