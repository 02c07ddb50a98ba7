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
	"sync/atomic"

	"gitlab.com/tozd/go/errors"
)

// 🔗 Ref is a reference-counted handle to a Communicator shared by a worker
// and its host. The last Release closes the Communicator, so neither side has
// to ask who deletes it.
type Ref struct {
	c    Communicator
	refs atomic.Int32
}

// Share wraps c with a single reference held by the caller.
func Share(c Communicator) *Ref {
	r := &Ref{c: c}
	r.refs.Store(1)
	return r
}

// Retain adds a reference and returns r for chaining.
func (r *Ref) Retain() *Ref {
	r.refs.Add(1)
	return r
}

// Communicator returns the shared Communicator.
func (r *Ref) Communicator() Communicator {
	return r.c
}

// Release drops a reference and closes the Communicator when none remain.
func (r *Ref) Release() error {
	switch n := r.refs.Add(-1); {
	case n == 0:
		if err := r.c.Close(); err != nil {
			return errors.Errorf("closing communicator: %w", err)
		}
		return nil
	case n < 0:
		return errors.Errorf("communicator released %d times too many", -n)
	default:
		return nil
	}
}

// Dispose closes c when who is the party recorded as its owner, and reports
// whether it did. It serves hosts that still decide by Ownership instead of
// sharing a Ref.
func Dispose(c Communicator, who Ownership) (bool, error) {
	if c.Ownership() != who {
		return false, nil
	}
	if err := c.Close(); err != nil {
		return true, errors.Errorf("closing communicator: %w", err)
	}
	return true, nil
}
