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

	"github.com/walteh/filecomm/pkg/platform"
)

// 📨 Kind is the vocabulary of progress messages
type Kind int

const (
	TotalSteps    Kind = iota // Number of passes the worker will make
	CurrentStep               // Pass currently running
	TotalRecords              // Records expected in the current pass
	CurrentRecord             // Records processed in the current pass
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case TotalSteps:
		return "total_steps"
	case CurrentStep:
		return "current_step"
	case TotalRecords:
		return "total_records"
	case CurrentRecord:
		return "current_record"
	default:
		return "unknown"
	}
}

// 🏷️ Ownership records who disposes of a Communicator
type Ownership int

const (
	OwnedByCreator Ownership = iota // Whoever constructed it closes it
	OwnedByHost                     // The host side closes it
)

// String returns a string representation of Ownership
func (o Ownership) String() string {
	if o == OwnedByHost {
		return "host"
	}
	return "creator"
}

// 🚦 CancelFlag is the cooperative cancellation half of the contract.
// Both methods are safe from any goroutine.
type CancelFlag interface {
	IsCancelled() bool
	Cancel()
}

// 📂 Streams exposes the attached handles to the worker. The Communicator keeps
// ownership; callers must not close them.
type Streams interface {
	Input() io.ReadSeeker
	SecondaryInput() io.ReadSeeker
	Output() io.Writer
	// DiscardOutput closes and removes a partially written output.
	DiscardOutput() error
}

// 🔌 Communicator is what a worker holds for the lifetime of one operation
type Communicator interface {
	CancelFlag
	Streams
	io.Closer

	// AttachInput opens path for reading, replacing the previous input.
	AttachInput(path platform.Text) error
	// AttachSecondaryInput opens the second half of a two-file format.
	AttachSecondaryInput(path platform.Text) error
	// AttachOutput opens path for writing, replacing the previous output.
	AttachOutput(path platform.Text) error

	// InputSize returns the byte length of the primary input, 0 without one.
	InputSize() (int64, error)
	DisplayName() platform.Text
	FileSet() []platform.Text
	// SetFileSet installs the ordered file set; the display name becomes the sentinel.
	SetFileSet(paths []platform.Text)

	// PostMessage reports progress. It must return promptly and never panic.
	// secondary is reserved; no current Kind uses it.
	PostMessage(kind Kind, value int64, secondary int64)

	Ownership() Ownership
}

// 📊 Snapshot is the latest value seen for each Kind
type Snapshot struct {
	TotalSteps    int64
	CurrentStep   int64
	TotalRecords  int64
	CurrentRecord int64
}

// Get returns the counter for kind.
func (s Snapshot) Get(kind Kind) int64 {
	switch kind {
	case TotalSteps:
		return s.TotalSteps
	case CurrentStep:
		return s.CurrentStep
	case TotalRecords:
		return s.TotalRecords
	case CurrentRecord:
		return s.CurrentRecord
	default:
		return 0
	}
}
