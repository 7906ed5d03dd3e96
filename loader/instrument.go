package loader

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// finishFunc closes the instrumentation opened by begin.
type finishFunc func(records int, err error)

// begin starts the span, timer and log entry of one Load call.
func (o *options) begin(ctx context.Context, name, path string) (context.Context, finishFunc) {
	start := time.Now()
	ctx, span := o.tracerProvider.Tracer(tracerName).Start(ctx, "loader."+name,
		trace.WithAttributes(
			attribute.String("loader", name),
			attribute.String("path", path),
		))

	return ctx, func(records int, err error) {
		elapsed := time.Since(start)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			o.logger.Debug("load failed",
				zap.String("loader", name),
				zap.String("path", path),
				zap.Duration("duration", elapsed),
				zap.Error(err))
		} else {
			span.SetAttributes(attribute.Int("records", records))
			o.logger.Debug("load finished",
				zap.String("loader", name),
				zap.String("path", path),
				zap.Int("records", records),
				zap.Duration("duration", elapsed))
		}
		span.End()
		o.metrics.RecordLoad(name, records, elapsed, err)
	}
}

// fileRead records that name opened one file.
func (o *options) fileRead(name, path string) {
	o.metrics.RecordFile(name)
	o.logger.Debug("reading file", zap.String("loader", name), zap.String("path", path))
}
