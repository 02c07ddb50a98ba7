// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tracing wraps OpenTelemetry so that a job run becomes one span with
// an event per step and a status that separates cancellation from failure.
package tracing

import (
	"context"
	"io"

	"github.com/walteh/filecomm/pkg/comm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"gitlab.com/tozd/go/errors"
)

const instrumentationName = "github.com/walteh/filecomm"

// 📡 Provider owns the tracer used for job spans
type Provider struct {
	tp     *sdktrace.TracerProvider
	tracer trace.Tracer
}

// 🏭 New creates a Provider that writes spans as JSON to w
func New(serviceName, serviceVersion string, w io.Writer) (*Provider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, errors.Errorf("creating stdout exporter: %w", err)
	}
	return NewWithExporter(serviceName, serviceVersion, exporter)
}

// 🏭 NewWithExporter creates a Provider backed by any span exporter
func NewWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) (*Provider, error) {
	if exporter == nil {
		return Noop(), nil
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return nil, errors.Errorf("creating resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	)

	return &Provider{tp: tp, tracer: tp.Tracer(instrumentationName)}, nil
}

// Noop returns a Provider whose spans record nothing.
func Noop() *Provider {
	return &Provider{tracer: noop.NewTracerProvider().Tracer(instrumentationName)}
}

// Shutdown flushes and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.tp == nil {
		return nil
	}
	if err := p.tp.Shutdown(ctx); err != nil {
		return errors.Errorf("shutting down tracer provider: %w", err)
	}
	return nil
}

// Span wraps trace.Span so callers do not import the upstream package.
type Span struct {
	span trace.Span
}

// 🎯 StartSpan starts an internal span named name
func (p *Provider) StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	tracer := p.tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(instrumentationName)
	}
	ctx, span := tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, &Span{span: span}
}

// WithAttributes attaches all provided attributes to the span.
func (s *Span) WithAttributes(attrs map[string]string) *Span {
	if s == nil || len(attrs) == 0 {
		return s
	}
	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kvs = append(kvs, attribute.String(k, v))
	}
	s.span.SetAttributes(kvs...)
	return s
}

// Step records that the worker moved to step current of total.
func (s *Span) Step(current, total int64) {
	if s == nil {
		return
	}
	s.span.AddEvent("step", trace.WithAttributes(
		attribute.Int64("step.current", current),
		attribute.Int64("step.total", total),
	))
}

// Progress records the final snapshot on the span.
func (s *Span) Progress(snap comm.Snapshot) {
	if s == nil {
		return
	}
	s.span.SetAttributes(
		attribute.Int64("progress.total_steps", snap.TotalSteps),
		attribute.Int64("progress.current_step", snap.CurrentStep),
		attribute.Int64("progress.total_records", snap.TotalRecords),
		attribute.Int64("progress.current_record", snap.CurrentRecord),
	)
}

// SetStatus records err on the span. Cancellation gets its own event and is not recorded as an exception.
func (s *Span) SetStatus(err error) {
	if s == nil {
		return
	}
	switch {
	case err == nil:
		s.span.SetStatus(codes.Ok, "")
	case comm.IsCancellation(err):
		s.span.AddEvent("cancelled")
		s.span.SetStatus(codes.Error, "cancelled")
	default:
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}
}

// EndSpan finalises the span and records status depending on the provided error.
func EndSpan(s *Span, err error) {
	if s == nil {
		return
	}
	s.SetStatus(err)
	s.span.End()
}
