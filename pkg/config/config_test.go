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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, dir string, cfg *Config)
	}{
		{
			name:     "valid_yaml",
			filename: "job.yaml",
			config: `
jobs:
  - name: roads
    input: roads.mif
    secondary_input: roads.mid
    output: out/roads.csv
    mode: push
    repaint_interval_ms: 250
    check_every: 10
    delimiter: ";"
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				require.Len(t, cfg.Jobs, 1, "should have 1 job")
				job := cfg.Jobs[0]
				assert.Equal(t, "roads", job.Name, "name should match")
				assert.Equal(t, filepath.Join(dir, "roads.mif"), job.Input, "input should be resolved")
				assert.Equal(t, filepath.Join(dir, "roads.mid"), job.SecondaryInput, "secondary input should be resolved")
				assert.Equal(t, filepath.Join(dir, "out/roads.csv"), job.Output, "output should be resolved")
				assert.Equal(t, ModePush, job.Mode, "mode should match")
				assert.Equal(t, int64(250), job.RepaintIntervalMs, "repaint interval should match")
				assert.Equal(t, 10, job.CheckEvery, "check every should match")
				assert.Equal(t, ";", job.Delimiter, "delimiter should match")
				assert.Equal(t, dir, job.Root, "root should be the config directory")
			},
		},
		{
			name:     "minimal_yaml_gets_defaults",
			filename: "job.yml",
			config: `
jobs:
  - input: /data/parcels.mif
    output: /data/parcels.csv
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				require.Len(t, cfg.Jobs, 1, "should have 1 job")
				job := cfg.Jobs[0]
				assert.Equal(t, "parcels", job.Name, "name should default to the input base name")
				assert.Equal(t, "/data/parcels.mif", job.Input, "absolute input should be kept")
				assert.Equal(t, ModePoll, job.Mode, "mode should default to poll")
				assert.Equal(t, int64(DefaultRepaintIntervalMs), job.RepaintIntervalMs, "repaint interval should default")
				assert.Equal(t, DefaultCheckEvery, job.CheckEvery, "check every should default")
				assert.Equal(t, DefaultDelimiter, job.Delimiter, "delimiter should default")
			},
		},
		{
			name:     "file_set_job",
			filename: "job.json",
			config: `{
  "jobs": [
    {"file_set": ["tiles/*.mif"], "exclude": ["tiles/skip.mif"], "output": "merged.txt"}
  ]
}`,
			check: func(t *testing.T, dir string, cfg *Config) {
				require.Len(t, cfg.Jobs, 1, "should have 1 job")
				job := cfg.Jobs[0]
				assert.Equal(t, "job-1", job.Name, "name should default to the job position")
				assert.Equal(t, []string{"tiles/*.mif"}, job.FileSet, "patterns should stay relative")
				assert.Equal(t, []string{"tiles/skip.mif"}, job.Exclude, "exclude should match")
				assert.Equal(t, dir, job.Root, "patterns should resolve against the config directory")
			},
		},
		{
			name:     "json_job_array",
			filename: "jobs.json",
			config:   `[{"input": "roads.mif", "output": "out/roads.csv"}]`,
			check: func(t *testing.T, dir string, cfg *Config) {
				require.Len(t, cfg.Jobs, 1, "should have 1 job")
				job := cfg.Jobs[0]
				assert.Equal(t, filepath.Join(dir, "roads.mif"), job.Input, "input should resolve against the config directory")
				assert.Equal(t, filepath.Join(dir, "out", "roads.csv"), job.Output, "output should resolve against the config directory")
				assert.Equal(t, "roads", job.Name, "name should default to the input base")
			},
		},
		{
			name:     "hcl_jobs",
			filename: "job.hcl",
			config: `
job "roads" {
  input  = "roads.mif"
  output = "roads.csv"
}

job "tiles" {
  file_set = ["tiles/*.mif"]
  output   = "tiles.csv"
  mode     = "push"
}
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				require.Len(t, cfg.Jobs, 2, "should have 2 jobs")
				assert.Equal(t, "roads", cfg.Jobs[0].Name, "first job name should come from the label")
				assert.Equal(t, "tiles", cfg.Jobs[1].Name, "second job name should come from the label")
				assert.Equal(t, ModePush, cfg.Jobs[1].Mode, "mode should match")
			},
		},
		{
			name:        "no_jobs",
			filename:    "job.yaml",
			config:      "jobs: []\n",
			wantErr:     true,
			errContains: "at least one job is required",
		},
		{
			name:     "missing_output",
			filename: "job.yaml",
			config: `
jobs:
  - input: a.mif
`,
			wantErr:     true,
			errContains: "jobs[0].output is required",
		},
		{
			name:     "missing_input",
			filename: "job.yaml",
			config: `
jobs:
  - output: a.csv
`,
			wantErr:     true,
			errContains: "jobs[0].input or jobs[0].file_set is required",
		},
		{
			name:     "secondary_without_input",
			filename: "job.yaml",
			config: `
jobs:
  - file_set: ["*.mif"]
    secondary_input: a.mid
    output: a.csv
`,
			wantErr:     true,
			errContains: "secondary_input requires",
		},
		{
			name:     "input_and_file_set",
			filename: "job.yaml",
			config: `
jobs:
  - input: a.mif
    file_set: ["*.mif"]
    output: a.csv
`,
			wantErr:     true,
			errContains: "mutually exclusive",
		},
		{
			name:     "bad_mode",
			filename: "job.yaml",
			config: `
jobs:
  - input: a.mif
    output: a.csv
    mode: stream
`,
			wantErr:     true,
			errContains: `got "stream"`,
		},
		{
			name:     "negative_interval",
			filename: "job.yaml",
			config: `
jobs:
  - input: a.mif
    output: a.csv
    repaint_interval_ms: -1
`,
			wantErr:     true,
			errContains: "repaint_interval_ms must not be negative",
		},
		{
			name:     "duplicate_names",
			filename: "job.yaml",
			config: `
jobs:
  - input: a.mif
    output: a.csv
  - input: other/a.mif
    output: b.csv
`,
			wantErr:     true,
			errContains: `name "a" is used twice`,
		},
		{
			name:     "unknown_field",
			filename: "job.yaml",
			config: `
jobs:
  - input: a.mif
    output: a.csv
    colour: blue
`,
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_extension",
			filename:    "job.toml",
			config:      "",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temporary config file
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, tt.filename)
			err := os.WriteFile(configPath, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			// Load config
			cfg, err := Load(ctx, configPath)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			assert.Equal(t, configPath, cfg.Location(), "location should be recorded")
			if tt.check != nil {
				tt.check(t, tmpDir, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err, "Load should fail for a missing file")
	assert.Contains(t, err.Error(), "reading config file", "error should mention reading")
}

func TestJobString(t *testing.T) {
	tests := []struct {
		name string
		job  Job
		want string
	}{
		{
			name: "single_input",
			job:  Job{Name: "roads", Input: "/d/roads.mif", Output: "/d/roads.csv"},
			want: "roads: /d/roads.mif -> /d/roads.csv",
		},
		{
			name: "paired_input",
			job:  Job{Name: "roads", Input: "/d/roads.mif", SecondaryInput: "/d/roads.mid", Output: "/d/roads.csv"},
			want: "roads: /d/roads.mif+roads.mid -> /d/roads.csv",
		},
		{
			name: "file_set",
			job:  Job{Name: "tiles", FileSet: []string{"a/*.mif", "b/*.mif"}, Output: "/d/t.csv"},
			want: "tiles: 2 pattern(s) -> /d/t.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.job.String(), "string should match")
		})
	}
}
