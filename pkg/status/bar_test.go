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
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/walteh/filecomm/pkg/comm"
)

func TestBarDisplayFollowsSteps(t *testing.T) {
	pterm.DisableOutput()
	defer pterm.EnableOutput()

	ctx := context.Background()
	d := NewBarDisplay(nil)
	d.Start(ctx, "roads", []Attachment{{Path: "roads.mif", Role: "input"}})

	d.Update(ctx, comm.Snapshot{TotalSteps: 2, CurrentStep: 1, TotalRecords: 10, CurrentRecord: 4})
	assert.Equal(t, int64(1), d.step, "first bar should belong to step 1")
	if assert.NotNil(t, d.bar, "bar should be running") {
		assert.Equal(t, 10, d.bar.Total, "bar total should follow the record total")
		assert.Equal(t, 4, d.bar.Current, "bar should follow the current record")
	}

	// records never move the bar backwards or past its total
	d.Update(ctx, comm.Snapshot{TotalSteps: 2, CurrentStep: 1, TotalRecords: 10, CurrentRecord: 2})
	if assert.NotNil(t, d.bar, "bar should be running") {
		assert.Equal(t, 4, d.bar.Current, "bar should not move backwards")
	}

	d.Update(ctx, comm.Snapshot{TotalSteps: 2, CurrentStep: 2, TotalRecords: 5, CurrentRecord: 1})
	assert.Equal(t, int64(2), d.step, "a new step should start a new bar")
	if assert.NotNil(t, d.bar, "bar should be running") {
		assert.Equal(t, 5, d.bar.Total, "new bar should use the new total")
		assert.Equal(t, 1, d.bar.Current, "new bar should start from the new record")
	}

	d.Finish(ctx, comm.Cancelled.Err())
	assert.Nil(t, d.bar, "finish should stop the bar")
}
