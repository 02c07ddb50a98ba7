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

package comm

import (
	"io"
	"os"
	"slices"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/walteh/filecomm/pkg/pathparts"
	"github.com/walteh/filecomm/pkg/platform"
	"gitlab.com/tozd/go/errors"
)

// Option configures a Base.
type Option func(*Base)

// WithLogger sets the logger attach and release events are written to.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Base) {
		b.logger = logger
	}
}

// WithFileSet installs the ordered batch of paths the operation spans.
func WithFileSet(paths []platform.Text) Option {
	return func(b *Base) {
		b.fileSet = slices.Clone(paths)
	}
}

// 🔧 Base holds the file handles and cancellation flag shared by every
// Communicator implementation. It has no PostMessage; embed it and add one.
type Base struct {
	cancelled atomic.Bool
	ownership Ownership
	logger    zerolog.Logger

	// worker-only state
	input      *os.File
	secondary  *os.File
	output     *os.File
	outputPath platform.Text
	inputName  platform.Text
	fileSet    []platform.Text
}

// 🏭 NewBase creates a Base disposed of by owner
func NewBase(owner Ownership, opts ...Option) *Base {
	b := &Base{
		ownership: owner,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Base) Ownership() Ownership {
	return b.ownership
}

func (b *Base) IsCancelled() bool {
	return b.cancelled.Load()
}

func (b *Base) Cancel() {
	if b.cancelled.CompareAndSwap(false, true) {
		b.logger.Debug().Msg("cancellation requested")
	}
}

func (b *Base) AttachInput(path platform.Text) error {
	f, err := openForRead(path)
	if err != nil {
		return err
	}

	prev := b.input
	b.input = f
	b.inputName = pathparts.Parse(path).Base
	b.logger.Debug().Str("path", path).Str("name", b.inputName).Msg("attached input")

	return closeReplaced(prev, "input")
}

func (b *Base) AttachSecondaryInput(path platform.Text) error {
	f, err := openForRead(path)
	if err != nil {
		return err
	}

	prev := b.secondary
	b.secondary = f
	b.logger.Debug().Str("path", path).Msg("attached secondary input")

	return closeReplaced(prev, "secondary input")
}

func (b *Base) AttachOutput(path platform.Text) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return openFailed(path, ModeWrite, err)
	}

	prev := b.output
	b.output = f
	b.outputPath = path
	b.logger.Debug().Str("path", path).Msg("attached output")

	return closeReplaced(prev, "output")
}

// InputSize measures the primary input by seeking to its end and back to its
// start. The input is left positioned at offset 0.
func (b *Base) InputSize() (int64, error) {
	if b.input == nil {
		return 0, nil
	}

	begin, err := b.input.Seek(0, io.SeekStart)
	if err != nil {
		return 0, errors.Errorf("seeking input start: %w", err)
	}
	end, err := b.input.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, errors.Errorf("seeking input end: %w", err)
	}
	if _, err := b.input.Seek(0, io.SeekStart); err != nil {
		return 0, errors.Errorf("rewinding input: %w", err)
	}

	return end - begin, nil
}

func (b *Base) DisplayName() platform.Text {
	if len(b.fileSet) > 0 {
		return platform.DefaultFileSetName
	}
	return b.inputName
}

func (b *Base) FileSet() []platform.Text {
	return slices.Clone(b.fileSet)
}

// SetFileSet replaces the batch of paths the operation spans.
func (b *Base) SetFileSet(paths []platform.Text) {
	b.fileSet = slices.Clone(paths)
}

func (b *Base) Input() io.ReadSeeker {
	if b.input == nil {
		return nil
	}
	return b.input
}

func (b *Base) SecondaryInput() io.ReadSeeker {
	if b.secondary == nil {
		return nil
	}
	return b.secondary
}

func (b *Base) Output() io.Writer {
	if b.output == nil {
		return nil
	}
	return b.output
}

func (b *Base) DiscardOutput() error {
	if b.output == nil {
		return nil
	}

	path := b.outputPath
	closeErr := b.output.Close()
	b.output = nil
	b.outputPath = ""

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Errorf("removing partial output: %w", err)
	}
	b.logger.Debug().Str("path", path).Msg("discarded partial output")

	if closeErr != nil {
		return errors.Errorf("closing partial output: %w", closeErr)
	}
	return nil
}

// Close releases every owned handle. The cancellation flag stays readable.
func (b *Base) Close() error {
	var errs []error
	for _, h := range []struct {
		f    **os.File
		name string
	}{
		{&b.input, "input"},
		{&b.secondary, "secondary input"},
		{&b.output, "output"},
	} {
		if *h.f == nil {
			continue
		}
		if err := (*h.f).Close(); err != nil {
			errs = append(errs, errors.Errorf("closing %s: %w", h.name, err))
		}
		*h.f = nil
	}
	b.outputPath = ""

	return errors.Join(errs...)
}

func openForRead(path platform.Text) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openFailed(path, ModeRead, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, openFailed(path, ModeRead, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, openFailed(path, ModeRead, errors.Errorf("is a directory"))
	}

	return f, nil
}

func closeReplaced(f *os.File, name string) error {
	if f == nil {
		return nil
	}
	if err := f.Close(); err != nil {
		return errors.Errorf("closing previous %s: %w", name, err)
	}
	return nil
}
