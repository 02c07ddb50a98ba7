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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclJob struct {
		Name              string   `hcl:"name,label"`
		Input             string   `hcl:"input,optional"`
		SecondaryInput    string   `hcl:"secondary_input,optional"`
		Output            string   `hcl:"output"`
		FileSet           []string `hcl:"file_set,optional"`
		Exclude           []string `hcl:"exclude,optional"`
		Mode              string   `hcl:"mode,optional"`
		RepaintIntervalMs int64    `hcl:"repaint_interval_ms,optional"`
		CheckEvery        int      `hcl:"check_every,optional"`
		Delimiter         string   `hcl:"delimiter,optional"`
	}
	type hclConfig struct {
		Jobs []hclJob `hcl:"job,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{}
	for _, j := range hclCfg.Jobs {
		cfg.Jobs = append(cfg.Jobs, Job{
			Name:              j.Name,
			Input:             j.Input,
			SecondaryInput:    j.SecondaryInput,
			Output:            j.Output,
			FileSet:           j.FileSet,
			Exclude:           j.Exclude,
			Mode:              j.Mode,
			RepaintIntervalMs: j.RepaintIntervalMs,
			CheckEvery:        j.CheckEvery,
			Delimiter:         j.Delimiter,
		})
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
