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
	"fmt"

	"github.com/walteh/filecomm/pkg/platform"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrFileOpenFailed matches every *FileOpenFailedError through errors.Is.
	ErrFileOpenFailed = errors.Base("file open failed")

	// ErrCancelled is the worker's own signal that the host asked it to stop.
	// It is never an I/O failure.
	ErrCancelled = errors.Base("cancellation requested")
)

// Mode is the access an attach call asked for.
type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
)

// String returns a string representation of Mode
func (m Mode) String() string {
	if m == ModeWrite {
		return "write"
	}
	return "read"
}

// ❌ FileOpenFailedError is returned by the attach calls when a handle cannot be obtained
type FileOpenFailedError struct {
	Path platform.Text
	Mode Mode
	Err  error
}

func (e *FileOpenFailedError) Error() string {
	return fmt.Sprintf("opening %s for %s: %v", e.Path, e.Mode, e.Err)
}

func (e *FileOpenFailedError) Unwrap() error {
	return e.Err
}

func (e *FileOpenFailedError) Is(target error) bool {
	return target == ErrFileOpenFailed
}

func openFailed(path platform.Text, mode Mode, err error) error {
	return errors.WithStack(&FileOpenFailedError{Path: path, Mode: mode, Err: err})
}

// 🚦 Status is the outcome of one cancellation check
type Status int

const (
	Continue Status = iota
	Cancelled
)

// String returns a string representation of Status
func (s Status) String() string {
	if s == Cancelled {
		return "cancelled"
	}
	return "continue"
}

// Err is nil for Continue and ErrCancelled for Cancelled.
func (s Status) Err() error {
	if s == Cancelled {
		return errors.WithStack(ErrCancelled)
	}
	return nil
}

// Check polls the cancellation flag. Workers call it at bounded intervals.
func Check(flag CancelFlag) Status {
	if flag.IsCancelled() {
		return Cancelled
	}
	return Continue
}

// IsCancellation reports whether err carries ErrCancelled.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrCancelled)
}
