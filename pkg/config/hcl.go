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
	"path/filepath"
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
	return strings.ToLower(filepath.Ext(filename)) == ".hcl"
}

// 📝 Parse parses the config from HCL.
//
//	name = "pen"
//	output {
//	  stdout = true
//	}
//	rule {
//	  from = "S1000"
//	  to   = "Z-1"
//	}
//
// The feed_rate variable holds FeedRate, so `to = "Z1 ${feed_rate}"` works.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "rules.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"feed_rate": cty.StringVal(FeedRate),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		Name   string `hcl:"name,optional"`
		Output *struct {
			Stdout bool   `hcl:"stdout,optional"`
			Path   string `hcl:"path,optional"`
		} `hcl:"output,block"`
		Rules []struct {
			From  string `hcl:"from"`
			To    string `hcl:"to"`
			Files string `hcl:"files,optional"`
		} `hcl:"rule,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{Name: hclCfg.Name}
	if hclCfg.Output != nil {
		cfg.Output = Output{
			Stdout: hclCfg.Output.Stdout,
			Path:   hclCfg.Output.Path,
		}
	}
	for _, r := range hclCfg.Rules {
		cfg.Rules = append(cfg.Rules, Rule{
			From:  r.From,
			To:    r.To,
			Files: r.Files,
		})
	}

	return cfg, nil
}
