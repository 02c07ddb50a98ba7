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

package opts

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/filecomm/pkg/config"
	"github.com/walteh/filecomm/pkg/log"
	"github.com/walteh/filecomm/pkg/status"
	"github.com/walteh/filecomm/pkg/tracing"
	"gitlab.com/tozd/go/errors"
)

// Progress display choices for --progress
const (
	ProgressAuto   = "auto"
	ProgressBar    = "bar"
	ProgressLines  = "lines"
	ProgressSimple = "simple"
)

// 🔧 RootOpts contains the flags and writers shared by every command
type RootOpts struct {
	ConfigFile string
	Debug      bool
	TracePath  string // Write spans as JSON here when set
	Version    string

	Out io.Writer
	Err io.Writer
}

// LoadConfig returns the ad-hoc job when one is given, otherwise the config file.
func (o *RootOpts) LoadConfig(ctx context.Context, adhoc *config.Job) (*config.Config, error) {
	if adhoc != nil {
		cfg := &config.Config{Jobs: []config.Job{*adhoc}}
		if err := cfg.Validate(); err != nil {
			return nil, errors.Errorf("validating flags: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// Console returns the user-facing logger, mirrored to the context logger.
func (o *RootOpts) Console(ctx context.Context) *log.Logger {
	return log.NewWithZerolog(o.Out, *zerolog.Ctx(ctx))
}

// Display picks a progress display for mode.
func (o *RootOpts) Display(ctx context.Context, mode string) (status.Display, error) {
	switch mode {
	case ProgressBar:
		return status.NewBarDisplay(nil), nil
	case ProgressLines:
		return status.NewLineDisplay(zerolog.Ctx(ctx), nil), nil
	case ProgressSimple:
		return status.NewSimpleDisplay(o.Err, nil), nil
	case ProgressAuto, "":
		if isTerminal(o.Out) {
			return status.NewBarDisplay(nil), nil
		}
		return status.NewLineDisplay(zerolog.Ctx(ctx), nil), nil
	default:
		return nil, errors.Errorf("unknown progress display %q", mode)
	}
}

// Tracer opens the span provider; the returned func flushes and closes it.
func (o *RootOpts) Tracer(ctx context.Context) (*tracing.Provider, func(), error) {
	if o.TracePath == "" {
		return tracing.Noop(), func() {}, nil
	}

	f, err := os.Create(o.TracePath)
	if err != nil {
		return nil, nil, errors.Errorf("creating trace file: %w", err)
	}

	p, err := tracing.New("filecomm", o.Version, f)
	if err != nil {
		f.Close()
		return nil, nil, errors.Errorf("creating tracer: %w", err)
	}

	return p, func() {
		logger := zerolog.Ctx(ctx)
		if err := p.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Error().Err(err).Msg("flushing traces")
		}
		if err := f.Close(); err != nil {
			logger.Error().Err(err).Msg("closing trace file")
		}
	}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
