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
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/filecomm/pkg/pathparts"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// Delivery modes for progress messages
const (
	ModePoll = "poll" // host polls the latest snapshot
	ModePush = "push" // every message is forwarded as it is posted
)

// Defaults applied by Validate
const (
	DefaultRepaintIntervalMs = 100
	DefaultCheckEvery        = 64
	DefaultDelimiter         = ","
)

// 📦 Job is one unit of file-processing work
type Job struct {
	Name              string   `json:"name,omitempty" yaml:"name,omitempty"`
	Input             string   `json:"input,omitempty" yaml:"input,omitempty"`                     // Primary input file
	SecondaryInput    string   `json:"secondary_input,omitempty" yaml:"secondary_input,omitempty"` // Second half of a two-file format
	Output            string   `json:"output" yaml:"output"`
	FileSet           []string `json:"file_set,omitempty" yaml:"file_set,omitempty"` // Glob patterns processed as one unit
	Exclude           []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`   // Glob patterns removed from the file set
	Mode              string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	RepaintIntervalMs int64    `json:"repaint_interval_ms,omitempty" yaml:"repaint_interval_ms,omitempty"`
	CheckEvery        int      `json:"check_every,omitempty" yaml:"check_every,omitempty"` // Records between cancellation checks
	Delimiter         string   `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`     // Joins primary and secondary records

	// Root is the directory file set patterns are resolved against.
	Root string `json:"-" yaml:"-"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Jobs []Job `json:"jobs" yaml:"jobs"`

	location string
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.location = path
	cfg.Resolve(filepath.Dir(path))

	logger.Debug().Str("path", path).Int("jobs", len(cfg.Jobs)).Msg("configuration loaded")
	return cfg, nil
}

// Location returns the file the config was loaded from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// Resolve makes relative job paths relative to dir.
func (cfg *Config) Resolve(dir string) {
	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]
		job.Input = resolvePath(dir, job.Input)
		job.SecondaryInput = resolvePath(dir, job.SecondaryInput)
		job.Output = resolvePath(dir, job.Output)
		if job.Root == "" {
			job.Root = dir
		}
	}
}

func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// 🔍 Validate checks if the configuration is valid and fills in defaults
func (cfg *Config) Validate() error {
	if len(cfg.Jobs) == 0 {
		return errors.Errorf("at least one job is required")
	}

	names := make(map[string]struct{}, len(cfg.Jobs))
	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]
		if err := job.Validate(i); err != nil {
			return err
		}
		if _, dup := names[job.Name]; dup {
			return errors.Errorf("jobs[%d].name %q is used twice", i, job.Name)
		}
		names[job.Name] = struct{}{}
	}

	return nil
}

// 🔍 Validate checks one job; i is its position, used in messages
func (job *Job) Validate(i int) error {
	// Check required fields
	if job.Input == "" && len(job.FileSet) == 0 {
		return errors.Errorf("jobs[%d].input or jobs[%d].file_set is required", i, i)
	}
	if job.Input != "" && len(job.FileSet) > 0 {
		return errors.Errorf("jobs[%d].input and jobs[%d].file_set are mutually exclusive", i, i)
	}
	if job.SecondaryInput != "" && job.Input == "" {
		return errors.Errorf("jobs[%d].secondary_input requires jobs[%d].input", i, i)
	}
	if job.Output == "" {
		return errors.Errorf("jobs[%d].output is required", i)
	}
	if job.RepaintIntervalMs < 0 {
		return errors.Errorf("jobs[%d].repaint_interval_ms must not be negative", i)
	}
	if job.CheckEvery < 0 {
		return errors.Errorf("jobs[%d].check_every must not be negative", i)
	}

	// Set defaults
	if job.Name == "" {
		if job.Input != "" {
			job.Name = pathparts.Parse(job.Input).Base
		} else {
			job.Name = fmt.Sprintf("job-%d", i+1)
		}
	}
	if job.Mode == "" {
		job.Mode = ModePoll
	}
	if job.RepaintIntervalMs == 0 {
		job.RepaintIntervalMs = DefaultRepaintIntervalMs
	}
	if job.CheckEvery == 0 {
		job.CheckEvery = DefaultCheckEvery
	}
	if job.Delimiter == "" {
		job.Delimiter = DefaultDelimiter
	}

	switch job.Mode {
	case ModePoll, ModePush:
	default:
		return errors.Errorf("jobs[%d].mode must be %q or %q, got %q", i, ModePoll, ModePush, job.Mode)
	}

	return nil
}

// 📝 String returns a string representation of the job
func (job Job) String() string {
	in := job.Input
	if len(job.FileSet) > 0 {
		in = fmt.Sprintf("%d pattern(s)", len(job.FileSet))
	}
	if job.SecondaryInput != "" {
		in += "+" + filepath.Base(job.SecondaryInput)
	}
	return fmt.Sprintf("%s: %s -> %s", job.Name, in, job.Output)
}
