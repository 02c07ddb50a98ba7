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
Package status renders a job's progress for whoever is watching it.

	            +-------------+
	            |   Status    |
	            |  (Display)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +------+-------+
	|   Lines   | |   Bar   | |    Simple    |
	| (zerolog) | | (pterm) | | (progressbar)|
	+-----------+ +---------+ +--------------+

🎯 Purpose:
- Turns comm.Snapshot values into user-facing progress text
- Lists the files a job attached before it starts
- Reports how a job ended: done, failed or cancelled

🔄 Flow:
1. The operation runner calls Start with the job's title and files
2. It calls Update with each snapshot that passed the repaint throttle
3. It calls Finish with the worker's error, if any

🤝 Interfaces:
- Display: Start/Update/Finish, implemented by LineDisplay, BarDisplay and SimpleDisplay
- Formatter: formats progress, snapshots and errors

📝 Design Philosophy:
A display only reads snapshots. It never touches the worker's files and never
blocks the worker; the runner polls on the host goroutine and hands the latest
values over.
*/
package status
