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

package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filecomm/pkg/comm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gitlab.com/tozd/go/errors"
)

func TestStdoutProvider(t *testing.T) {
	var buf bytes.Buffer
	p, err := New("filecomm", "test", &buf)
	require.NoError(t, err, "creating provider should succeed")

	_, span := p.StartSpan(context.Background(), "job roads")
	span.WithAttributes(map[string]string{"job.name": "roads"})
	EndSpan(span, nil)
	require.NoError(t, p.Shutdown(context.Background()))

	assert.Contains(t, buf.String(), "job roads", "span should be written")
	assert.Contains(t, buf.String(), "job.name", "attributes should be written")
}

func TestSpanStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   codes.Code
		wantDesc   string
		wantEvents []string
	}{
		{
			name:     "success",
			wantCode: codes.Ok,
		},
		{
			name:       "cancelled",
			err:        errors.Errorf("copying: %w", comm.ErrCancelled),
			wantCode:   codes.Error,
			wantDesc:   "cancelled",
			wantEvents: []string{"cancelled"},
		},
		{
			name:       "failure",
			err:        errors.New("disk full"),
			wantCode:   codes.Error,
			wantDesc:   "disk full",
			wantEvents: []string{"exception"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter := tracetest.NewInMemoryExporter()
			p, err := NewWithExporter("filecomm", "test", exporter)
			require.NoError(t, err)

			_, span := p.StartSpan(context.Background(), "job")
			EndSpan(span, tt.err)

			spans := exporter.GetSpans()
			require.Len(t, spans, 1, "one span should be exported")
			assert.Equal(t, tt.wantCode, spans[0].Status.Code, "status code should match")
			assert.Equal(t, tt.wantDesc, spans[0].Status.Description, "status description should match")

			var events []string
			for _, e := range spans[0].Events {
				events = append(events, e.Name)
			}
			assert.Equal(t, tt.wantEvents, events, "events should match")
		})
	}
}

func TestStepAndProgress(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	p, err := NewWithExporter("filecomm", "test", exporter)
	require.NoError(t, err)

	_, span := p.StartSpan(context.Background(), "job")
	span.Step(1, 2)
	span.Step(2, 2)
	span.Progress(comm.Snapshot{TotalSteps: 2, CurrentStep: 2, TotalRecords: 10, CurrentRecord: 10})
	EndSpan(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 2, "each step should be an event")
	assert.Contains(t, spans[0].Events[1].Attributes, attribute.Int64("step.current", 2))
	assert.Contains(t, spans[0].Attributes, attribute.Int64("progress.current_record", 10))
}

func TestNilSafety(t *testing.T) {
	var span *Span
	assert.NotPanics(t, func() {
		span.WithAttributes(map[string]string{"a": "b"})
		span.Step(1, 1)
		span.Progress(comm.Snapshot{})
		EndSpan(span, nil)
	}, "nil spans should be no-ops")

	var p *Provider
	assert.NoError(t, p.Shutdown(context.Background()), "nil provider shutdown should be a no-op")

	_, s := Noop().StartSpan(context.Background(), "noop")
	assert.NotPanics(t, func() { EndSpan(s, errors.New("x")) })
}
