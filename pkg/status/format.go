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
	"fmt"

	"github.com/walteh/filecomm/pkg/comm"
)

// Formatter defines how progress and outcomes should be formatted
type Formatter interface {
	// FormatProgress formats a progress message
	FormatProgress(current, total int64) string

	// FormatSnapshot formats every counter of a snapshot
	FormatSnapshot(name string, snap comm.Snapshot) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// Percent returns current/total as a percentage. An unknown total reads as
// 0% until something has been processed, then 100%.
func Percent(current, total int64) float64 {
	if total <= 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return float64(current) / float64(total) * 100
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFormatter) FormatProgress(current, total int64) string {
	percentage := Percent(current, total)
	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatSnapshot formats the step and record axes of a snapshot
func (f *DefaultFormatter) FormatSnapshot(name string, snap comm.Snapshot) string {
	return fmt.Sprintf("%s step %d/%d %s",
		name,
		snap.CurrentStep,
		snap.TotalSteps,
		f.FormatProgress(snap.CurrentRecord, snap.TotalRecords))
}

// FormatError formats an error message with emoji
func (f *DefaultFormatter) FormatError(err error) string {
	switch {
	case err == nil:
		return ""
	case comm.IsCancellation(err):
		return "🛑 Cancelled"
	default:
		return fmt.Sprintf("❌ Error: %v", err)
	}
}
