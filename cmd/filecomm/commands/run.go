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
	"github.com/walteh/filecomm/pkg/platform"
	"gitlab.com/tozd/go/errors"
)

// 🏃 NewRunCmd creates the run command
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	var flags jobFlags
	var progress string
	var wrappedClock bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run jobs and report their progress",
		Long: `Run processes every job in the config file, or a single job described
by flags. It will:
1. Attach the job's input, secondary input and output
2. Run the worker while the host polls and repaints progress
3. Cancel cooperatively on interrupt, leaving no partial output`,
		Example: `  filecomm run --config jobs.yaml
  filecomm run --input roads.mif --secondary roads.mid --output roads.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := o.LoadConfig(ctx, flags.job())
			if err != nil {
				return err
			}

			jobs := make([]*operation.Job, 0, len(cfg.Jobs))
			for _, jc := range cfg.Jobs {
				job, err := operation.NewJob(ctx, jc)
				if err != nil {
					return errors.Errorf("resolving job: %w", err)
				}
				jobs = append(jobs, job)
			}

			display, err := o.Display(ctx, progress)
			if err != nil {
				return err
			}

			tracer, shutdown, err := o.Tracer(ctx)
			if err != nil {
				return err
			}
			defer shutdown()

			console := o.Console(ctx)
			console.Header("run")

			runnerOpts := []operation.Option{
				operation.WithDisplay(display),
				operation.WithTracer(tracer),
				operation.WithConsole(console),
			}
			if wrappedClock {
				runnerOpts = append(runnerOpts, operation.WithClock(platform.WrappedNow))
			}

			runner := operation.NewRunner(runnerOpts...)
			if err := runner.RunAll(ctx, jobs); err != nil {
				return err
			}

			console.Successf("%d job(s) complete", len(jobs))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&progress, "progress", opts.ProgressAuto, "progress display: auto, bar, simple or lines")
	cmd.Flags().BoolVar(&wrappedClock, "wrapped-clock", false, "throttle repaints against the 100 second wrapping clock of legacy hosts")

	return cmd
}
