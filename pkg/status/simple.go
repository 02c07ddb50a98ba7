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
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/walteh/filecomm/pkg/comm"
)

// 📊 SimpleDisplay draws a plain-text progress bar per step on any writer
type SimpleDisplay struct {
	out       io.Writer
	formatter Formatter

	mu    sync.Mutex
	title string
	bar   *progressbar.ProgressBar
	step  int64
	total int64
}

// 🏭 NewSimpleDisplay creates a SimpleDisplay writing to out
func NewSimpleDisplay(out io.Writer, formatter Formatter) *SimpleDisplay {
	if formatter == nil {
		formatter = NewDefaultFormatter()
	}
	return &SimpleDisplay{out: out, formatter: formatter}
}

func (d *SimpleDisplay) Start(ctx context.Context, title string, files []Attachment) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.title = title
	fmt.Fprintf(d.out, "📦 %s\n", title)
	for _, f := range files {
		fmt.Fprintln(d.out, FormatAttachment(f))
	}
}

func (d *SimpleDisplay) Update(ctx context.Context, snap comm.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case d.bar == nil || snap.CurrentStep != d.step:
		d.finishBar(ctx)
		d.newBar(snap)
	case snap.TotalRecords != d.total:
		d.total = snap.TotalRecords
		d.bar.ChangeMax64(max(snap.TotalRecords, 1))
	}

	current := min(max(snap.CurrentRecord, 0), max(d.total, 1))
	if err := d.bar.Set64(current); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("rendering progress bar")
	}
}

func (d *SimpleDisplay) newBar(snap comm.Snapshot) {
	d.step = snap.CurrentStep
	d.total = snap.TotalRecords

	desc := d.title
	if snap.TotalSteps > 1 {
		desc = fmt.Sprintf("%s [%d/%d]", d.title, snap.CurrentStep, snap.TotalSteps)
	}

	d.bar = progressbar.NewOptions64(max(snap.TotalRecords, 1),
		progressbar.OptionSetWriter(d.out),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
	)
}

func (d *SimpleDisplay) finishBar(ctx context.Context) {
	if d.bar == nil {
		return
	}
	if err := d.bar.Finish(); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("finishing progress bar")
	}
	fmt.Fprintln(d.out)
	d.bar = nil
}

func (d *SimpleDisplay) Finish(ctx context.Context, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.bar != nil {
		if err == nil {
			d.finishBar(ctx)
		} else {
			if xerr := d.bar.Clear(); xerr != nil {
				zerolog.Ctx(ctx).Debug().Err(xerr).Msg("stopping progress bar")
			}
			fmt.Fprintln(d.out)
			d.bar = nil
		}
	}

	if err == nil {
		fmt.Fprintf(d.out, "%s %s\n", d.title, d.formatter.FormatProgress(1, 1))
		return
	}
	fmt.Fprintf(d.out, "%s %s\n", d.title, d.formatter.FormatError(err))
}
