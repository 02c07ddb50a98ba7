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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/filecomm/cmd/filecomm/opts"
	"github.com/walteh/filecomm/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// 🔍 NewCheckCmd creates the check command
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	var flags jobFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that every job's files can be opened",
		Long: `Check opens each job's inputs read-only and verifies its output
directory without writing anything. It will:
1. Expand file sets
2. Report the combined input size
3. List every file that could not be opened`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := o.LoadConfig(ctx, flags.job())
			if err != nil {
				return err
			}

			console := o.Console(ctx)
			notReady := 0
			for _, jc := range cfg.Jobs {
				job, err := operation.NewJob(ctx, jc)
				if err != nil {
					console.Errorf("%s: %v", jc.Name, err)
					notReady++
					continue
				}

				report, err := operation.Check(ctx, job)
				if err != nil {
					return errors.Errorf("checking %s: %w", jc.Name, err)
				}

				if report.Ready {
					console.Successf("%s: ready (%d file(s), %d bytes)", report.Job, report.Files, report.InputBytes)
					continue
				}
				notReady++
				console.Warningf("%s: not ready", report.Job)
				for _, p := range report.Problems {
					console.Errorf("    %v", p)
				}
			}

			if notReady > 0 {
				return errors.Errorf("%d job(s) not ready", notReady)
			}
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
