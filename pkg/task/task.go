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

package task

import (
	"bufio"
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/filecomm/pkg/comm"
	"gitlab.com/tozd/go/errors"
)

const (
	defaultCheckEvery = 64
	defaultDelimiter  = ","
	maxRecordBytes    = 1 << 20
)

// 🔌 Worker processes the files attached to a Communicator
type Worker interface {
	Process(ctx context.Context, c comm.Communicator) error
}

// WorkerFunc adapts a function to the Worker interface.
type WorkerFunc func(ctx context.Context, c comm.Communicator) error

func (f WorkerFunc) Process(ctx context.Context, c comm.Communicator) error {
	return f(ctx, c)
}

// 📝 LineCopier copies line records from the input(s) to the output
type LineCopier struct {
	CheckEvery int    // Records between cancellation checks
	Delimiter  string // Joins a primary record to its secondary record
}

var _ Worker = (*LineCopier)(nil)

// 🏭 NewLineCopier creates a LineCopier with default settings
func NewLineCopier() *LineCopier {
	return &LineCopier{
		CheckEvery: defaultCheckEvery,
		Delimiter:  defaultDelimiter,
	}
}

// 🚀 Process runs the copy. A cancelled or failed run leaves no output file.
func (lc *LineCopier) Process(ctx context.Context, c comm.Communicator) error {
	logger := zerolog.Ctx(ctx).With().Str("input", c.DisplayName()).Logger()

	if c.Output() == nil {
		return errors.Errorf("no output attached")
	}

	out := bufio.NewWriter(c.Output())

	var err error
	if files := c.FileSet(); len(files) > 0 {
		err = lc.processFileSet(ctx, c, out, files)
	} else {
		err = lc.processInput(ctx, c, out)
	}
	if err == nil {
		err = out.Flush()
		if err != nil {
			err = errors.Errorf("flushing output: %w", err)
		}
	}

	if err != nil {
		if comm.IsCancellation(err) {
			logger.Warn().Msg("cancelled, discarding partial output")
		} else {
			logger.Error().Err(err).Msg("processing failed, discarding partial output")
		}
		if derr := c.DiscardOutput(); derr != nil {
			logger.Error().Err(derr).Msg("discarding output")
		}
		return err
	}

	logger.Debug().Msg("processing complete")
	return nil
}

func (lc *LineCopier) processInput(ctx context.Context, c comm.Communicator, out *bufio.Writer) error {
	in := c.Input()
	if in == nil {
		return errors.Errorf("no input attached")
	}

	size, err := c.InputSize()
	if err != nil {
		return errors.Errorf("sizing input: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Int64("bytes", size).Msg("input attached")

	c.PostMessage(comm.TotalSteps, 2, 0)

	// Step 1: count
	if err := comm.Check(c).Err(); err != nil {
		return err
	}
	c.PostMessage(comm.CurrentStep, 1, 0)
	total, err := lc.count(c, in)
	if err != nil {
		return errors.Errorf("counting records: %w", err)
	}
	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return errors.Errorf("rewinding input: %w", err)
	}

	// Step 2: copy
	if err := comm.Check(c).Err(); err != nil {
		return err
	}
	c.PostMessage(comm.CurrentStep, 2, 0)
	if err := lc.copy(c, in, c.SecondaryInput(), out, total); err != nil {
		return errors.Errorf("copying records: %w", err)
	}

	return nil
}

func (lc *LineCopier) processFileSet(ctx context.Context, c comm.Communicator, out *bufio.Writer, files []string) error {
	logger := zerolog.Ctx(ctx)

	c.PostMessage(comm.TotalSteps, int64(len(files)), 0)

	for i, path := range files {
		if err := comm.Check(c).Err(); err != nil {
			return err
		}

		c.PostMessage(comm.CurrentStep, int64(i+1), 0)
		if err := c.AttachInput(path); err != nil {
			return errors.Errorf("step %d: %w", i+1, err)
		}
		logger.Debug().Str("path", path).Int("step", i+1).Msg("processing file set member")

		in := c.Input()
		total, err := lc.count(c, in)
		if err != nil {
			return errors.Errorf("counting records in %s: %w", path, err)
		}
		if _, err := in.Seek(0, io.SeekStart); err != nil {
			return errors.Errorf("rewinding %s: %w", path, err)
		}
		if err := lc.copy(c, in, nil, out, total); err != nil {
			return errors.Errorf("copying records from %s: %w", path, err)
		}
	}

	return nil
}

// count posts CurrentRecord while scanning and TotalRecords once done.
func (lc *LineCopier) count(c comm.Communicator, in io.Reader) (int64, error) {
	every := lc.checkEvery()

	c.PostMessage(comm.TotalRecords, 0, 0)
	c.PostMessage(comm.CurrentRecord, 0, 0)

	scanner := newScanner(in)
	var n int64
	for scanner.Scan() {
		n++
		if n%int64(every) == 0 {
			c.PostMessage(comm.CurrentRecord, n, 0)
			if err := comm.Check(c).Err(); err != nil {
				return n, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return n, err
	}
	if err := comm.Check(c).Err(); err != nil {
		return n, err
	}

	c.PostMessage(comm.TotalRecords, n, 0)
	c.PostMessage(comm.CurrentRecord, n, 0)
	return n, nil
}

func (lc *LineCopier) copy(c comm.Communicator, in, secondary io.Reader, out io.Writer, total int64) error {
	every := lc.checkEvery()
	delim := lc.Delimiter
	if delim == "" {
		delim = defaultDelimiter
	}

	c.PostMessage(comm.TotalRecords, total, 0)
	c.PostMessage(comm.CurrentRecord, 0, 0)

	scanner := newScanner(in)
	var pair *bufio.Scanner
	if secondary != nil {
		pair = newScanner(secondary)
	}

	var n int64
	for scanner.Scan() {
		n++

		if _, err := io.WriteString(out, scanner.Text()); err != nil {
			return errors.Errorf("writing record %d: %w", n, err)
		}
		if pair != nil {
			if !pair.Scan() {
				if err := pair.Err(); err != nil {
					return errors.Errorf("reading secondary record %d: %w", n, err)
				}
				return errors.Errorf("secondary input ended at record %d of %d", n, total)
			}
			if _, err := io.WriteString(out, delim+pair.Text()); err != nil {
				return errors.Errorf("writing record %d: %w", n, err)
			}
		}
		if _, err := io.WriteString(out, "\n"); err != nil {
			return errors.Errorf("writing record %d: %w", n, err)
		}

		if n%int64(every) == 0 {
			c.PostMessage(comm.CurrentRecord, n, 0)
			if err := comm.Check(c).Err(); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Errorf("reading record %d: %w", n+1, err)
	}
	if err := comm.Check(c).Err(); err != nil {
		return err
	}

	c.PostMessage(comm.CurrentRecord, n, 0)
	return nil
}

func (lc *LineCopier) checkEvery() int {
	if lc.CheckEvery <= 0 {
		return defaultCheckEvery
	}
	return lc.CheckEvery
}

func newScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)
	return s
}
