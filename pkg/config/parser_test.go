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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestParserRegistration tests the parser registration system
func TestParserRegistration(t *testing.T) {
	// Save original parsers
	originalParsers := parsers
	defer func() {
		parsers = originalParsers
	}()

	// Reset parsers
	parsers = nil
	assert.Nil(t, GetParser("job.yaml"), "no parser should be found before registration")

	Register(&JSONParser{})
	assert.Len(t, parsers, 1, "should have 1 parser registered")
	assert.IsType(t, &JSONParser{}, GetParser("job.json"), "registered parser should be selected")
	assert.Nil(t, GetParser("job.yaml"), "unregistered formats should stay unknown")
}

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{
			name:     "yaml_file",
			filename: "job.yaml",
			want:     &YAMLParser{},
		},
		{
			name:     "yml_file",
			filename: "job.yml",
			want:     &YAMLParser{},
		},
		{
			name:     "hcl_file",
			filename: "job.hcl",
			want:     &HCLParser{},
		},
		{
			name:     "json_file",
			filename: "job.JSON",
			want:     &JSONParser{},
		},
		{
			name:     "unknown_extension",
			filename: "job.txt",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "should return nil for unknown extension")
				return
			}
			require.NotNil(t, got, "should return a parser")
			assert.IsType(t, tt.want, got, "should return correct parser type")
		})
	}
}

// 🧪 TestHCLParsing tests HCL config parsing
func TestHCLParsing(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_hcl",
			config: `
job "roads" {
  input               = "roads.mif"
  secondary_input     = "roads.mid"
  output              = "roads.csv"
  repaint_interval_ms = 50
  check_every         = 8
  delimiter           = "|"
}
`,
			check: func(t *testing.T, cfg *Config) {
				require.Len(t, cfg.Jobs, 1)
				job := cfg.Jobs[0]
				assert.Equal(t, "roads", job.Name)
				assert.Equal(t, "roads.mif", job.Input)
				assert.Equal(t, "roads.mid", job.SecondaryInput)
				assert.Equal(t, "roads.csv", job.Output)
				assert.Equal(t, int64(50), job.RepaintIntervalMs)
				assert.Equal(t, 8, job.CheckEvery)
				assert.Equal(t, "|", job.Delimiter)
				assert.Equal(t, ModePoll, job.Mode)
			},
		},
		{
			name: "invalid_hcl_syntax",
			config: `
job "roads" {
  input =
}`,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name: "invalid_block_type",
			config: `
unknown_block {
  foo = "bar"
}`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name: "missing_label",
			config: `
job {
  input  = "a.mif"
  output = "a.csv"
}`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name: "validation_failure",
			config: `
job "a" {
  output = "a.csv"
}`,
			wantErr:     true,
			errContains: "validating config",
		},
	}

	parser := &HCLParser{}
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parser.Parse(ctx, []byte(tt.config))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

// 🧪 TestJSONParsing tests JSON config parsing
func TestJSONParsing(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:   "valid_json",
			config: `{"jobs": [{"name": "x", "input": "a.mif", "output": "a.csv", "mode": "push"}]}`,
			check: func(t *testing.T, cfg *Config) {
				require.Len(t, cfg.Jobs, 1)
				assert.Equal(t, "x", cfg.Jobs[0].Name)
				assert.Equal(t, ModePush, cfg.Jobs[0].Mode)
			},
		},
		{
			name:   "bare_job_array",
			config: ` [{"input": "roads.mif", "output": "roads.csv"}]`,
			check: func(t *testing.T, cfg *Config) {
				require.Len(t, cfg.Jobs, 1)
				assert.Equal(t, "roads", cfg.Jobs[0].Name, "name should default to the input base")
				assert.Equal(t, ModePoll, cfg.Jobs[0].Mode, "mode should default to poll")
				assert.Equal(t, DefaultCheckEvery, cfg.Jobs[0].CheckEvery)
				assert.Equal(t, DefaultDelimiter, cfg.Jobs[0].Delimiter)
			},
		},
		{
			name:        "bare_array_unknown_field",
			config:      `[{"input": "a.mif", "output": "a.csv", "speed": 2}]`,
			wantErr:     true,
			errContains: "parsing JSON job list",
		},
		{
			name:        "trailing_document",
			config:      `{"jobs": [{"input": "a.mif", "output": "a.csv"}]} {}`,
			wantErr:     true,
			errContains: "trailing data",
		},
		{
			name:        "empty_array",
			config:      `[]`,
			wantErr:     true,
			errContains: "at least one job is required",
		},
		{
			name:        "unknown_field",
			config:      `{"jobs": [{"input": "a.mif", "output": "a.csv", "speed": 2}]}`,
			wantErr:     true,
			errContains: "unknown field",
		},
		{
			name:        "malformed",
			config:      `{"jobs": [`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
	}

	parser := &JSONParser{}
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parser.Parse(ctx, []byte(tt.config))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
