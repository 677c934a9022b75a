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
	"fmt"
	"strings"

	"github.com/walteh/ncrewrite/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// DefaultOutputPath is where the file variant writes when no path is given
const DefaultOutputPath = "converted_output.nc"

// FeedRate is appended to the Z moves of the stdout variant
const FeedRate = "F1000"

// 🏷️ Built-in variant names
const (
	VariantFile   = "file"
	VariantStdout = "stdout"
)

// 🔄 Rule is a single literal replacement
type Rule struct {
	From  string `json:"from" yaml:"from"`                       // Literal text to find
	To    string `json:"to" yaml:"to"`                           // Literal replacement
	Files string `json:"files,omitempty" yaml:"files,omitempty"` // Optional doublestar glob on the input path
}

// 📤 Output selects where rewritten lines go
type Output struct {
	Stdout bool   `json:"stdout,omitempty" yaml:"stdout,omitempty"` // Write to the process stdout
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`     // File to create or truncate
}

// 📚 Config is one variant: an ordered rule list and an output sink
type Config struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Output Output `json:"output" yaml:"output"`
	Rules  []Rule `json:"rules" yaml:"rules"`
}

// FileVariant writes to converted_output.nc and swaps spindle words for Z moves
func FileVariant() *Config {
	return &Config{
		Name:   VariantFile,
		Output: Output{Path: DefaultOutputPath},
		Rules: []Rule{
			{From: "S1000", To: "Z-1"},
			{From: "S0", To: "Z1"},
		},
	}
}

// StdoutVariant streams to stdout and adds a feed rate to each Z move
func StdoutVariant() *Config {
	return &Config{
		Name:   VariantStdout,
		Output: Output{Stdout: true},
		Rules: []Rule{
			{From: "S1000", To: "Z-1 " + FeedRate},
			{From: "S0", To: "Z1 " + FeedRate},
		},
	}
}

// 🎯 Builtin returns a fresh copy of the named built-in variant
func Builtin(name string) (*Config, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case VariantFile:
		return FileVariant(), nil
	case VariantStdout:
		return StdoutVariant(), nil
	default:
		return nil, errors.Errorf("unknown variant %q", name)
	}
}

// 🔍 Validate checks the config and fills in defaults
func (cfg *Config) Validate() error {
	if len(cfg.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}

	if err := text.NewSimpleTextReplacer().ValidateRules(cfg.ReplacementRules()); err != nil {
		return errors.Errorf("rules: %w", err)
	}

	if cfg.Output.Stdout && cfg.Output.Path != "" {
		return errors.Errorf("output.path and output.stdout are mutually exclusive")
	}

	// Set defaults
	if !cfg.Output.Stdout && cfg.Output.Path == "" {
		cfg.Output.Path = DefaultOutputPath
	}

	return nil
}

// ReplacementRules converts the rules, in order, for use by the rewriter
func (cfg *Config) ReplacementRules() []text.ReplacementRule {
	rules := make([]text.ReplacementRule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		rules = append(rules, text.ReplacementRule{
			FromText:       r.From,
			ToText:         r.To,
			FileFilterGlob: r.Files,
		})
	}
	return rules
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	sink := cfg.Output.Path
	if cfg.Output.Stdout {
		sink = "<stdout>"
	}
	name := cfg.Name
	if name == "" {
		name = "custom"
	}
	return fmt.Sprintf("%s: %d rules -> %s", name, len(cfg.Rules), sink)
}
