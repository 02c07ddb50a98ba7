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

package status

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/filecomm/pkg/comm"
)

// 📈 Display shows one job's progress to a user
type Display interface {
	Start(ctx context.Context, title string, files []Attachment)
	Update(ctx context.Context, snap comm.Snapshot)
	Finish(ctx context.Context, err error)
}

// 🔧 LineDisplay writes one log line per changed snapshot
type LineDisplay struct {
	logger    *zerolog.Logger
	formatter Formatter

	mu    sync.Mutex
	title string
	last  comm.Snapshot
	seen  bool
}

// 🏭 NewLineDisplay creates a LineDisplay writing to logger
func NewLineDisplay(logger *zerolog.Logger, formatter Formatter) *LineDisplay {
	if formatter == nil {
		formatter = NewDefaultFormatter()
	}
	return &LineDisplay{
		logger:    logger,
		formatter: formatter,
	}
}

func (d *LineDisplay) Start(ctx context.Context, title string, files []Attachment) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.title = title
	d.seen = false
	d.logger.Info().Str("job", title).Int("files", len(files)).Msg("starting job")
	for _, f := range files {
		d.logger.Info().Str("path", f.Path).Str("role", f.Role).Msg(FormatAttachment(f))
	}
}

func (d *LineDisplay) Update(ctx context.Context, snap comm.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seen && snap == d.last {
		return
	}
	d.last = snap
	d.seen = true

	d.logger.Info().
		Int64("step", snap.CurrentStep).
		Int64("steps", snap.TotalSteps).
		Int64("record", snap.CurrentRecord).
		Int64("records", snap.TotalRecords).
		Msg(d.formatter.FormatSnapshot(d.title, snap))
}

func (d *LineDisplay) Finish(ctx context.Context, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case err == nil:
		d.logger.Info().Str("job", d.title).Msg(d.formatter.FormatProgress(d.last.CurrentRecord, d.last.TotalRecords))
	case comm.IsCancellation(err):
		d.logger.Warn().Str("job", d.title).Msg(d.formatter.FormatError(err))
	default:
		d.logger.Error().Err(err).Str("job", d.title).Msg(d.formatter.FormatError(err))
	}
}
