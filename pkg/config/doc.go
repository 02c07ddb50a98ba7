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
Package config provides job configuration loading for filecomm.

📦 Architecture:

	+-----------+     +----------+     +------------+
	| job file  | --> |  Parser  | --> |   Config   |
	| yaml/hcl/ |     | registry |     |  []Job     |
	|   json    |     +----------+     +------------+
	+-----------+                            |
	                                         v
	                                   Validate + Resolve

🎯 Purpose:
- Describes which files a job attaches (input, secondary input, output or a file set)
- Carries how the host watches the job (mode, repaint interval, check cadence)
- Keeps one parser per format behind a small registry

🔄 Flow:
1. GetParser picks a parser by file extension
2. The parser decodes strictly (unknown fields are errors)
3. Validate fills in defaults and rejects impossible jobs
4. Resolve makes relative paths relative to the config file

📝 Formats:

	# job.yaml
	jobs:
	  - name: roads
	    input: roads.mif
	    secondary_input: roads.mid
	    output: roads.csv
	    mode: push

	# job.hcl
	job "roads" {
	  input           = "roads.mif"
	  secondary_input = "roads.mid"
	  output          = "roads.csv"
	}

🔍 Example:

	cfg, err := config.Load(ctx, "job.yaml")
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	for _, job := range cfg.Jobs {
		fmt.Println(job)
	}
*/
package config
