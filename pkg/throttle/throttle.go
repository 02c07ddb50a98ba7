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

// Package throttle decides when a periodic action such as a progress repaint
// may run again.
//
// A Timer performs no synchronisation. Each caller owns its own "last fired"
// cell; sharing one cell between goroutines is a data race.
package throttle

import "github.com/walteh/filecomm/pkg/platform"

// Clock reads the current time in milliseconds.
type Clock func() platform.Millis

// ⏱️ Timer fires at most once per interval against its clock
type Timer struct {
	clock Clock
}

// New creates a Timer reading clock. A nil clock uses platform.Now.
func New(clock Clock) *Timer {
	if clock == nil {
		clock = platform.Now
	}
	return &Timer{clock: clock}
}

// ShouldFire reports whether at least minIntervalMs have elapsed since *last.
// When it fires, *last is moved to now. A negative elapsed time (clock went
// backwards or wrapped) also fires so the caller resynchronises instead of
// waiting forever.
func (t *Timer) ShouldFire(last *platform.Millis, minIntervalMs int64) bool {
	now := t.clock()
	elapsed := now - *last
	if elapsed >= minIntervalMs || elapsed < 0 {
		*last = now
		return true
	}
	return false
}

var defaultTimer = New(platform.Now)

// ShouldFire runs the wall-clock Timer.
func ShouldFire(last *platform.Millis, minIntervalMs int64) bool {
	return defaultTimer.ShouldFire(last, minIntervalMs)
}
