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

package operation

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/filecomm/pkg/comm"
	"gitlab.com/tozd/go/errors"
)

// 📋 Report is what Check found for one job
type Report struct {
	Job        string
	InputBytes int64 // Size of the primary input, or the sum over the file set
	Files      int   // Inputs that opened, secondary included
	Ready      bool
	Problems   []error
}

// 🔍 Check opens every input read-only and verifies the output directory,
// without writing anything.
func Check(ctx context.Context, job *Job) (*Report, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("job", job.Config.Name).Msg("checking job")

	report := &Report{Job: job.Config.Name}

	c := comm.NewHostAdapter(comm.WithLogger(*logger))
	defer func() {
		if _, err := comm.Dispose(c, comm.OwnedByHost); err != nil {
			logger.Debug().Err(err).Msg("disposing check communicator")
		}
	}()

	inputs := job.Files
	if job.Config.Input != "" {
		inputs = []string{job.Config.Input}
	}

	for _, path := range inputs {
		if err := c.AttachInput(path); err != nil {
			report.Problems = append(report.Problems, err)
			continue
		}
		size, err := c.InputSize()
		if err != nil {
			return nil, errors.Errorf("sizing %s: %w", path, err)
		}
		report.InputBytes += size
		report.Files++
	}

	if job.Config.SecondaryInput != "" {
		if err := c.AttachSecondaryInput(job.Config.SecondaryInput); err != nil {
			report.Problems = append(report.Problems, err)
		} else {
			report.Files++
		}
	}

	dir := filepath.Dir(job.Config.Output)
	info, err := os.Stat(dir)
	switch {
	case err != nil:
		report.Problems = append(report.Problems, errors.Errorf("output directory %s: %w", dir, err))
	case !info.IsDir():
		report.Problems = append(report.Problems, errors.Errorf("output directory %s is not a directory", dir))
	}

	report.Ready = len(report.Problems) == 0

	logger.Debug().
		Str("job", report.Job).
		Int64("input_bytes", report.InputBytes).
		Int("files", report.Files).
		Bool("ready", report.Ready).
		Msg("check complete")

	return report, nil
}
