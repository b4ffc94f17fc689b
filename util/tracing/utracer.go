package tracing

import (
	"context"
	"fmt"
	"time"

	"github.com/dashbook/dashbook/ulogger"
	"github.com/dashbook/dashbook/util"
	"github.com/ordishs/gocore"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Options func(s *TraceOptions)

type TraceOptions struct {
	ParentStat *gocore.Stat
	Histogram  prometheus.Observer
	Tags       []attribute.KeyValue
	Logger     ulogger.Logger
	LogMessage string
	LogArgs    []interface{}
	debug      bool
}

func WithParentStat(stat *gocore.Stat) Options {
	return func(s *TraceOptions) {
		s.ParentStat = stat
	}
}

// WithHistogram observes the span duration in seconds when the span ends.
func WithHistogram(histogram prometheus.Observer) Options {
	return func(s *TraceOptions) {
		s.Histogram = histogram
	}
}

func WithTag(key, value string) Options {
	return func(s *TraceOptions) {
		s.Tags = append(s.Tags, attribute.String(key, value))
	}
}

// WithLogMessage logs the formatted message at INFO when the span starts and again with its duration when it ends.
func WithLogMessage(logger ulogger.Logger, format string, args ...interface{}) Options {
	return func(s *TraceOptions) {
		s.Logger = logger
		s.LogMessage = format
		s.LogArgs = args
	}
}

// WithDebugLogMessage is WithLogMessage at DEBUG level.
func WithDebugLogMessage(logger ulogger.Logger, format string, args ...interface{}) Options {
	return func(s *TraceOptions) {
		s.Logger = logger
		s.LogMessage = format
		s.LogArgs = args
		s.debug = true
	}
}

type UTracer struct {
	tracer trace.Tracer
}

// Tracer returns a tracer from the global provider, which is a no-op until InitTracer runs.
func Tracer(name string) *UTracer {
	return &UTracer{tracer: otel.Tracer(name)}
}

// Start opens a span and a gocore stat. The returned function ends both, optionally recording an error.
func (u *UTracer) Start(ctx context.Context, name string, setOptions ...Options) (context.Context, trace.Span, func(...error)) {
	options := &TraceOptions{}
	for _, opt := range setOptions {
		opt(options)
	}

	ctx, span := u.tracer.Start(ctx, name, trace.WithAttributes(options.Tags...))

	var (
		start time.Time
		stat  *gocore.Stat
	)

	if options.ParentStat != nil {
		start, stat, ctx = util.NewStatFromContext(ctx, name, options.ParentStat)
	} else {
		start, stat, ctx = util.StartStatFromContext(ctx, name)
	}

	logFn := func(format string, args ...interface{}) {}

	if options.Logger != nil && options.LogMessage != "" {
		logFn = options.Logger.Infof
		if options.debug {
			logFn = options.Logger.Debugf
		}

		logFn(options.LogMessage, options.LogArgs...)
	}

	return ctx, span, func(errs ...error) {
		var err error
		if len(errs) > 0 {
			err = errs[0]
		}

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()
		stat.AddTime(start)

		elapsed := util.TimeSince(start)

		if options.Histogram != nil {
			options.Histogram.Observe(elapsed.Seconds())
		}

		if options.Logger != nil && options.LogMessage != "" {
			done := fmt.Sprintf(" DONE in %s", elapsed.Truncate(time.Microsecond))
			if err != nil {
				done += fmt.Sprintf(" with error: %v", err)
			}

			logFn(options.LogMessage+done, options.LogArgs...)
		}
	}
}
