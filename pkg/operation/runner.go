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

package operation

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/filecomm/pkg/comm"
	"github.com/walteh/filecomm/pkg/config"
	"github.com/walteh/filecomm/pkg/log"
	"github.com/walteh/filecomm/pkg/platform"
	"github.com/walteh/filecomm/pkg/status"
	"github.com/walteh/filecomm/pkg/task"
	"github.com/walteh/filecomm/pkg/throttle"
	"github.com/walteh/filecomm/pkg/tracing"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

const defaultPollInterval = 10 * time.Millisecond

// Option configures a Runner.
type Option func(*Runner)

// WithDisplay sets where progress is shown.
func WithDisplay(d status.Display) Option {
	return func(r *Runner) { r.display = d }
}

// WithTracer sets the span provider.
func WithTracer(p *tracing.Provider) Option {
	return func(r *Runner) { r.tracer = p }
}

// WithWorker replaces the default LineCopier for every job.
func WithWorker(w task.Worker) Option {
	return func(r *Runner) { r.worker = w }
}

// WithConsole sets the logger push-mode messages are forwarded to.
func WithConsole(l *log.Logger) Option {
	return func(r *Runner) { r.console = l }
}

// WithClock sets the clock repaints are throttled against.
func WithClock(clock throttle.Clock) Option {
	return func(r *Runner) { r.clock = clock }
}

// WithPollInterval sets how often the host samples the snapshot.
func WithPollInterval(d time.Duration) Option {
	return func(r *Runner) { r.pollInterval = d }
}

// 🏃 Runner executes jobs as a worker/host pair
type Runner struct {
	display      status.Display
	tracer       *tracing.Provider
	worker       task.Worker
	console      *log.Logger
	clock        throttle.Clock
	pollInterval time.Duration
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		tracer:       tracing.Noop(),
		clock:        platform.Now,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.display == nil {
		nop := zerolog.Nop()
		r.display = status.NewLineDisplay(&nop, nil)
	}
	return r
}

// host is the host's view of one running job
type host struct {
	comm     comm.Communicator
	snapshot func() comm.Snapshot
}

// 🏃 Run executes one job and returns the last progress seen
func (r *Runner) Run(ctx context.Context, job *Job) (comm.Snapshot, error) {
	logger := zerolog.Ctx(ctx).With().Str("job_id", job.ID).Str("job", job.Config.Name).Logger()
	ctx = logger.WithContext(ctx)

	ctx, span := r.tracer.StartSpan(ctx, "job "+job.Config.Name)
	span.WithAttributes(map[string]string{
		"job.id":   job.ID,
		"job.name": job.Config.Name,
		"job.mode": job.Config.Mode,
	})

	r.display.Start(ctx, job.Config.Name, job.Attachments())
	if r.console != nil {
		r.console.StartJob(ctx, log.JobOperation{
			ID:      job.ID,
			Name:    job.Config.Name,
			Input:   job.inputSummary(),
			Output:  job.Config.Output,
			FileSet: len(job.Files),
		})
	}

	h := r.newHost(ctx, job, logger)
	ref := comm.Share(h.comm)

	snap, err := r.run(ctx, job, h, ref, span)

	if rerr := ref.Release(); rerr != nil {
		logger.Error().Err(rerr).Msg("releasing communicator")
		if err == nil {
			err = errors.Errorf("releasing communicator: %w", rerr)
		}
	}

	span.Progress(snap)
	tracing.EndSpan(span, err)
	r.display.Finish(ctx, err)
	if r.console != nil {
		r.console.EndJob(ctx)
	}

	return snap, err
}

func (r *Runner) run(ctx context.Context, job *Job, h host, ref *comm.Ref, span *tracing.Span) (comm.Snapshot, error) {
	if err := job.Attach(h.comm); err != nil {
		return comm.Snapshot{}, errors.Errorf("preparing job %s: %w", job.Config.Name, err)
	}

	// a context cancelled before the worker starts still sets the flag
	if ctx.Err() != nil {
		h.comm.Cancel()
	}

	worker := r.workerFor(job.Config)
	done := make(chan struct{})

	var g errgroup.Group

	// worker
	workerRef := ref.Retain()
	g.Go(func() error {
		defer close(done)
		defer func() {
			if err := workerRef.Release(); err != nil {
				zerolog.Ctx(ctx).Error().Err(err).Msg("releasing worker reference")
			}
		}()
		if err := worker.Process(ctx, workerRef.Communicator()); err != nil {
			return errors.Errorf("running job %s: %w", job.Config.Name, err)
		}
		return nil
	})

	// host
	g.Go(func() error {
		r.watch(ctx, job, h, span, done)
		return nil
	})

	err := g.Wait()
	snap := h.snapshot()
	r.display.Update(ctx, snap)

	return snap, err
}

// watch repaints until the worker is done. Context cancellation sets the flag once.
func (r *Runner) watch(ctx context.Context, job *Job, h host, span *tracing.Span, done <-chan struct{}) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	timer := throttle.New(r.clock)
	var last platform.Millis
	var step int64
	cancelled := ctx.Done()

	for {
		select {
		case <-done:
			return
		case <-cancelled:
			zerolog.Ctx(ctx).Warn().Msg("cancellation requested")
			h.comm.Cancel()
			cancelled = nil
		case <-ticker.C:
			if !timer.ShouldFire(&last, job.Config.RepaintIntervalMs) {
				continue
			}
			snap := h.snapshot()
			if snap.CurrentStep != step {
				step = snap.CurrentStep
				span.Step(snap.CurrentStep, snap.TotalSteps)
			}
			r.display.Update(ctx, snap)
		}
	}
}

func (r *Runner) newHost(ctx context.Context, job *Job, logger zerolog.Logger) host {
	if job.Config.Mode != config.ModePush {
		adapter := comm.NewHostAdapter(comm.WithLogger(logger))
		return host{comm: adapter, snapshot: adapter.Snapshot}
	}

	// push: every message reaches the console; record progress is throttled
	store := comm.NewHostAdapter()
	timer := throttle.New(r.clock)
	var last platform.Millis
	fc := comm.NewFuncCommunicator(comm.OwnedByHost, func(kind comm.Kind, value, secondary int64) {
		store.PostMessage(kind, value, secondary)
		if r.console == nil {
			return
		}
		if kind == comm.CurrentRecord && !timer.ShouldFire(&last, job.Config.RepaintIntervalMs) {
			return
		}
		r.console.LogProgress(ctx, log.ProgressEvent{Kind: kind.String(), Value: value})
	}, comm.WithLogger(logger))

	return host{comm: fc, snapshot: store.Snapshot}
}

func (r *Runner) workerFor(cfg config.Job) task.Worker {
	if r.worker != nil {
		return r.worker
	}
	return &task.LineCopier{
		CheckEvery: cfg.CheckEvery,
		Delimiter:  cfg.Delimiter,
	}
}

// 🏃 RunAll runs jobs in order. It stops at the first cancellation and
// otherwise reports every failure.
func (r *Runner) RunAll(ctx context.Context, jobs []*Job) error {
	var errs []error
	for _, job := range jobs {
		if ctx.Err() != nil {
			zerolog.Ctx(ctx).Warn().Str("job", job.Config.Name).Msg("interrupted, skipping remaining jobs")
			return errors.WithStack(comm.ErrCancelled)
		}
		if _, err := r.Run(ctx, job); err != nil {
			if comm.IsCancellation(err) {
				return err
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
