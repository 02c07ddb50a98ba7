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
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/filecomm/pkg/comm"
	"github.com/walteh/filecomm/pkg/config"
	"github.com/walteh/filecomm/pkg/fileset"
	"github.com/walteh/filecomm/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📦 Job is a config.Job resolved for one run
type Job struct {
	ID     string
	Config config.Job
	Files  []string // Expanded file set, empty for single-input jobs
}

// 🏭 NewJob assigns an ID and expands the file set
func NewJob(ctx context.Context, cfg config.Job) (*Job, error) {
	job := &Job{
		ID:     uuid.NewString(),
		Config: cfg,
	}

	if len(cfg.FileSet) > 0 {
		files, err := fileset.Expand(ctx, cfg.Root, cfg.FileSet, cfg.Exclude)
		if err != nil {
			return nil, errors.Errorf("expanding file set for %s: %w", cfg.Name, err)
		}
		job.Files = files
	}

	zerolog.Ctx(ctx).Debug().
		Str("job_id", job.ID).
		Str("job", cfg.Name).
		Int("files", len(job.Files)).
		Msg("job resolved")

	return job, nil
}

// Attach opens the job's files on c. On failure c keeps whatever it held before.
func (j *Job) Attach(c comm.Communicator) error {
	if len(j.Files) > 0 {
		c.SetFileSet(j.Files)
	}
	if j.Config.Input != "" {
		if err := c.AttachInput(j.Config.Input); err != nil {
			return errors.Errorf("attaching input: %w", err)
		}
	}
	if j.Config.SecondaryInput != "" {
		if err := c.AttachSecondaryInput(j.Config.SecondaryInput); err != nil {
			return errors.Errorf("attaching secondary input: %w", err)
		}
	}
	if err := c.AttachOutput(j.Config.Output); err != nil {
		return errors.Errorf("attaching output: %w", err)
	}
	return nil
}

// Attachments lists the job's files for display.
func (j *Job) Attachments() []status.Attachment {
	var out []status.Attachment
	if j.Config.Input != "" {
		out = append(out, status.Attachment{Path: filepath.Base(j.Config.Input), Role: "input"})
	}
	if j.Config.SecondaryInput != "" {
		out = append(out, status.Attachment{Path: filepath.Base(j.Config.SecondaryInput), Role: "secondary"})
	}
	for _, f := range j.Files {
		out = append(out, status.Attachment{Path: filepath.Base(f), Role: "set"})
	}
	out = append(out, status.Attachment{Path: filepath.Base(j.Config.Output), Role: "output"})
	return out
}

// inputSummary is the input column of console output.
func (j *Job) inputSummary() string {
	if len(j.Files) > 0 {
		return "file set"
	}
	return filepath.Base(j.Config.Input)
}
