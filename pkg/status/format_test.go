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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/filecomm/pkg/comm"
	"gitlab.com/tozd/go/errors"
)

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		name        string
		current     int64
		total       int64
		want        string
		description string
	}{
		{
			name:        "in_progress",
			current:     25,
			total:       100,
			want:        "⏳ Progress: 25/100 (25%)",
			description: "should show hourglass while records remain",
		},
		{
			name:        "complete",
			current:     100,
			total:       100,
			want:        "✅ Progress: 100/100 (100%)",
			description: "should show check mark when done",
		},
		{
			name:        "unknown_total_nothing_done",
			current:     0,
			total:       0,
			want:        "✅ Progress: 0/0 (0%)",
			description: "should not divide by zero",
		},
		{
			name:        "unknown_total_some_done",
			current:     12,
			total:       0,
			want:        "✅ Progress: 12/0 (100%)",
			description: "should treat an unknown total as complete once records flow",
		},
		{
			name:        "rounding",
			current:     1,
			total:       3,
			want:        "⏳ Progress: 1/3 (33%)",
			description: "should round to whole percent",
		},
	}

	f := NewDefaultFormatter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatProgress(tt.current, tt.total), tt.description)
		})
	}
}

func TestFormatSnapshot(t *testing.T) {
	f := NewDefaultFormatter()
	got := f.FormatSnapshot("roads", comm.Snapshot{
		TotalSteps:    2,
		CurrentStep:   1,
		TotalRecords:  10,
		CurrentRecord: 5,
	})
	assert.Equal(t, "roads step 1/2 ⏳ Progress: 5/10 (50%)", got, "snapshot should show both axes")
}

func TestFormatError(t *testing.T) {
	f := NewDefaultFormatter()

	assert.Empty(t, f.FormatError(nil), "nil error should format as empty")
	assert.Equal(t, "❌ Error: disk full", f.FormatError(errors.Base("disk full")), "plain errors should be shown")
	assert.Equal(t, "🛑 Cancelled", f.FormatError(comm.Cancelled.Err()), "cancellation should not look like a failure")
	assert.Equal(t, "🛑 Cancelled", f.FormatError(errors.Errorf("copying: %w", comm.ErrCancelled)), "wrapped cancellation should be recognised")
}
