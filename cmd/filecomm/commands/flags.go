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
	"github.com/walteh/filecomm/pkg/config"
)

// jobFlags describe an ad-hoc job given on the command line
type jobFlags struct {
	name       string
	input      string
	secondary  string
	output     string
	fileSet    []string
	exclude    []string
	mode       string
	delimiter  string
	checkEvery int
	repaintMs  int64
}

func (f *jobFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "job name (defaults to the input base name)")
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "primary input file")
	cmd.Flags().StringVarP(&f.secondary, "secondary", "s", "", "secondary input file")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file")
	cmd.Flags().StringSliceVar(&f.fileSet, "file-set", nil, "glob patterns processed as one file set")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "glob patterns removed from the file set")
	cmd.Flags().StringVar(&f.mode, "mode", config.ModePoll, "progress delivery: poll or push")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", config.DefaultDelimiter, "joins primary and secondary records")
	cmd.Flags().IntVar(&f.checkEvery, "check-every", config.DefaultCheckEvery, "records between cancellation checks")
	cmd.Flags().Int64Var(&f.repaintMs, "repaint-ms", config.DefaultRepaintIntervalMs, "minimum milliseconds between repaints")
}

// job returns nil when no input was given on the command line.
func (f *jobFlags) job() *config.Job {
	if f.input == "" && len(f.fileSet) == 0 {
		return nil
	}
	return &config.Job{
		Name:              f.name,
		Input:             f.input,
		SecondaryInput:    f.secondary,
		Output:            f.output,
		FileSet:           f.fileSet,
		Exclude:           f.exclude,
		Mode:              f.mode,
		Delimiter:         f.delimiter,
		CheckEvery:        f.checkEvery,
		RepaintIntervalMs: f.repaintMs,
	}
}
