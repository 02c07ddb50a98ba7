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
Package task holds the workers that drive a Communicator.

📦 Architecture:

	+------------+   PostMessage    +--------------+
	|   Worker   | ---------------> | Communicator |
	| LineCopier | <--------------- |  (host side) |
	+------------+   comm.Check     +--------------+
	      |
	      v
	 Input/SecondaryInput -> Output

🎯 Purpose:
- LineCopier is the reference worker: one record per line
- A single input runs in two steps, counting then copying
- A file set runs one step per file, appending every file to the output
- A secondary input is joined record by record onto the primary

🚦 Cancellation:
The worker polls the flag every CheckEvery records and at every step
boundary. A cancelled or failed run discards the partial output and returns
the error; comm.IsCancellation tells the two apart.
*/
package task
