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
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/filecomm/pkg/comm"
)

// 📊 BarDisplay draws a pterm progress bar per step
type BarDisplay struct {
	formatter Formatter

	mu    sync.Mutex
	title string
	bar   *pterm.ProgressbarPrinter
	step  int64
	total int64
}

// 🏭 NewBarDisplay creates a BarDisplay
func NewBarDisplay(formatter Formatter) *BarDisplay {
	if formatter == nil {
		formatter = NewDefaultFormatter()
	}
	return &BarDisplay{formatter: formatter}
}

func (d *BarDisplay) Start(ctx context.Context, title string, files []Attachment) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.title = title
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(title)
	for _, f := range files {
		pterm.Println(FormatAttachment(f))
	}
}

func (d *BarDisplay) Update(ctx context.Context, snap comm.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.bar == nil || snap.CurrentStep != d.step || snap.TotalRecords != d.total {
		d.restart(ctx, snap)
	}
	if d.bar == nil {
		return
	}

	target := int(min(max(snap.CurrentRecord, 0), int64(d.bar.Total)))
	if delta := target - d.bar.Current; delta > 0 {
		d.bar.Add(delta)
	}
}

// restart replaces the bar when a new step begins or the record total changes
func (d *BarDisplay) restart(ctx context.Context, snap comm.Snapshot) {
	d.stop(ctx)

	d.step = snap.CurrentStep
	d.total = snap.TotalRecords

	title := d.title
	if snap.TotalSteps > 1 {
		title = fmt.Sprintf("%s [%d/%d]", d.title, snap.CurrentStep, snap.TotalSteps)
	}

	bar, err := pterm.DefaultProgressbar.
		WithTotal(int(max(snap.TotalRecords, 1))).
		WithTitle(title).
		Start()
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("starting progress bar")
		return
	}
	d.bar = bar
}

func (d *BarDisplay) stop(ctx context.Context) {
	if d.bar == nil {
		return
	}
	if _, err := d.bar.Stop(); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("stopping progress bar")
	}
	d.bar = nil
}

func (d *BarDisplay) Finish(ctx context.Context, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stop(ctx)

	switch {
	case err == nil:
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(d.title)
	case comm.IsCancellation(err):
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "🛑"}).Println(d.formatter.FormatError(err))
	default:
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(d.formatter.FormatError(err))
	}
}
