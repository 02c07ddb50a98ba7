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

var _ Communicator = (*FuncCommunicator)(nil)

// MessageFunc receives one progress message. It runs on the worker's goroutine
// and must return promptly.
type MessageFunc func(kind Kind, value int64, secondary int64)

// 📤 FuncCommunicator pushes every message to a callback, for hosts that
// marshal progress across their own boundary.
type FuncCommunicator struct {
	*Base
	fn MessageFunc
}

// 🏭 NewFuncCommunicator creates a FuncCommunicator disposed of by owner
func NewFuncCommunicator(owner Ownership, fn MessageFunc, opts ...Option) *FuncCommunicator {
	return &FuncCommunicator{
		Base: NewBase(owner, opts...),
		fn:   fn,
	}
}

func (f *FuncCommunicator) PostMessage(kind Kind, value int64, secondary int64) {
	if f.fn == nil {
		return
	}
	// a misbehaving host callback must not take the worker down
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error().Interface("panic", r).Str("kind", kind.String()).Msg("progress callback panicked")
		}
	}()
	f.fn(kind, value, secondary)
}
