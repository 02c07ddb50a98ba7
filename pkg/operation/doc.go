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
Package operation drives a job from the host side.

📦 Architecture:

	          +---------------- errgroup ----------------+
	          |                                          |
	+------+  |  +--------+   PostMessage   +---------+  |  +---------+
	| Job  |--+->| Worker | --------------> |  comm   |<-+--| host    |
	+------+  |  +--------+                 | Ref     |  |  | loop    |
	          |       ^     Check/Cancel    +---------+  |  +---------+
	          |       +--------------------------+       |    |     |
	          +------------------------------------------+    v     v
	                                                      Display  Span

🎯 Purpose:
- Resolves a config.Job into attached files (expanding file sets)
- Runs the worker and the host loop as a pair
- Polls the latest snapshot and repaints no faster than the repaint interval
- Forwards context cancellation (SIGINT in the CLI) to the cancel flag

🔄 Flow:
1. NewJob assigns an ID and expands the file set
2. Runner.Run builds a poll or push Communicator and shares it through a Ref
3. The worker and the host each hold a reference; the last release closes the files
4. Display.Finish and the span get the outcome

⚡ Modes:
- poll: a HostAdapter stores the latest values; the host loop samples them
- push: a FuncCommunicator forwards every message to the console logger

🔍 Example:

	job, err := operation.NewJob(ctx, cfg.Jobs[0])
	if err != nil {
		return err
	}
	runner := operation.NewRunner(operation.WithDisplay(status.NewBarDisplay(nil)))
	snap, err := runner.Run(ctx, job)
*/
package operation
