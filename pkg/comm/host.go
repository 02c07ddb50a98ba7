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

import "sync/atomic"

var _ Communicator = (*HostAdapter)(nil)

// 📥 HostAdapter keeps the most recent value of each message kind for a host
// that polls. There is no queue and no history.
type HostAdapter struct {
	*Base

	totalSteps    atomic.Int64
	currentStep   atomic.Int64
	totalRecords  atomic.Int64
	currentRecord atomic.Int64
}

// 🏭 NewHostAdapter creates a HostAdapter. The host side disposes of it.
func NewHostAdapter(opts ...Option) *HostAdapter {
	return &HostAdapter{
		Base: NewBase(OwnedByHost, opts...),
	}
}

// PostMessage overwrites the stored value for kind. Unknown kinds are ignored.
func (h *HostAdapter) PostMessage(kind Kind, value int64, _ int64) {
	switch kind {
	case TotalSteps:
		h.totalSteps.Store(value)
	case CurrentStep:
		h.currentStep.Store(value)
	case TotalRecords:
		h.totalRecords.Store(value)
	case CurrentRecord:
		h.currentRecord.Store(value)
	}
}

// Snapshot reads the four counters. Each is individually current; the step
// and record pairs are not read atomically together.
func (h *HostAdapter) Snapshot() Snapshot {
	return Snapshot{
		TotalSteps:    h.totalSteps.Load(),
		CurrentStep:   h.currentStep.Load(),
		TotalRecords:  h.totalRecords.Load(),
		CurrentRecord: h.currentRecord.Load(),
	}
}
