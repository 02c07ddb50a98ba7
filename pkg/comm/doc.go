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

/*
Package comm is the bridge between a file-processing worker and the host that
shows its progress.

	+-----------+   PostMessage    +-------------+
	|  Worker   | ---------------> |    Host     |
	| (reader/  |                  | (CLI / UI / |
	|  writer)  | <--------------- |   batch)    |
	+-----+-----+     Cancel       +-------------+
	      |
	+-----+------+
	|   Files    |
	| (owned by  |
	| the worker)|
	+------------+

🎯 Purpose:
- Owns the input, secondary input and output handles of one unit of work
- Carries four progress counters: total/current steps, total/current records
- Carries a sticky, cooperative cancellation flag

🔄 Flow:
1. The worker creates a Communicator and attaches its files
2. In its loop it calls Check, does a chunk of I/O, then PostMessage
3. The host reads the latest values whenever it likes and may call Cancel
4. The worker unwinds on Cancelled and closes the Communicator

⚡ Threading:
Only the cancellation flag and the progress counters cross goroutines; both are
atomics. File handles are touched by the worker alone.

🤝 Implementations:
- HostAdapter: stores the latest value per message kind for polling
- FuncCommunicator: forwards every message to a callback

🔍 Example:

	c := comm.NewHostAdapter()
	ref := comm.Share(c)
	defer ref.Release()

	if err := c.AttachInput("/data/roads.mif"); err != nil {
		return err
	}
	for record := int64(0); ; record++ {
		if err := comm.Check(c).Err(); err != nil {
			return err
		}
		// ... read and write one record ...
		c.PostMessage(comm.CurrentRecord, record, 0)
	}
*/
package comm
