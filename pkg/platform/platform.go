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

// Package platform pins the text and time representations used across filecomm.
// Build-tagged files supply the path separators for the target OS; nothing else
// in the module branches on the platform.
package platform

import "time"

// Text is the native path/text representation. Go strings are UTF-8 on every
// target, so the alias is the same everywhere.
type Text = string

// Millis is a millisecond timestamp as read by the throttle timer.
type Millis = int64

// DefaultFileSetName is shown instead of an input name when a job spans a file set.
const DefaultFileSetName Text = "File set"

// Now returns the wall clock in milliseconds since the Unix epoch.
func Now() Millis {
	return time.Now().UnixMilli()
}

// WrappedNow returns a millisecond clock that wraps every 100 seconds, the
// resolution the legacy desktop hosts used for repaint throttling. Callers
// must tolerate the value going backwards.
func WrappedNow() Millis {
	now := time.Now()
	return (now.Unix()%100)*1000 + int64(now.Nanosecond()/int(time.Millisecond))
}
