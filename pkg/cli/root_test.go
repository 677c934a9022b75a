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

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/ncrewrite/pkg/config"
)

const sampleInput = "G21\r\nG1 S1000 X10\nG1 S0 Y5\n\nG0 X0 Y0"

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name       string
		variant    string
		files      map[string]string
		dirs       []string
		args       func(dir string) []string
		wantCode   int
		wantStdout string
		wantStderr []string
		wantFiles  map[string]string
		noFiles    []string
	}{
		{
			name:    "file_variant",
			variant: config.VariantFile,
			files:   map[string]string{"in.nc": sampleInput},
			args: func(dir string) []string {
				return []string{filepath.Join(dir, "in.nc")}
			},
			wantCode:   0,
			wantStdout: "Converted file written to converted_output.nc\n",
			wantFiles: map[string]string{
				"converted_output.nc": "G21\r\nG1 Z-1 X10\nG1 Z1 Y5\n\nG0 X0 Y0",
			},
		},
		{
			name:    "stdout_variant",
			variant: config.VariantStdout,
			files:   map[string]string{"in.nc": sampleInput},
			args: func(dir string) []string {
				return []string{filepath.Join(dir, "in.nc")}
			},
			wantCode:   0,
			wantStdout: "G21\r\nG1 Z-1 F1000 X10\nG1 Z1 F1000 Y5\n\nG0 X0 Y0",
			noFiles:    []string{"converted_output.nc"},
		},
		{
			name:    "truncates_existing_output",
			variant: config.VariantFile,
			files: map[string]string{
				"in.nc":               "G1 S0\n",
				"converted_output.nc": "old content that is much longer than the new one\n",
			},
			args: func(dir string) []string {
				return []string{filepath.Join(dir, "in.nc")}
			},
			wantCode:   0,
			wantStdout: "Converted file written to converted_output.nc\n",
			wantFiles:  map[string]string{"converted_output.nc": "G1 Z1\n"},
		},
		{
			name:    "no_arguments",
			variant: config.VariantFile,
			args: func(dir string) []string {
				return nil
			},
			wantCode:   1,
			wantStdout: "Usage: gconvert <input_file>\n",
			noFiles:    []string{"converted_output.nc"},
		},
		{
			name:    "too_many_arguments",
			variant: config.VariantFile,
			files:   map[string]string{"a.nc": "G1 S0\n", "b.nc": "G1 S0\n"},
			args: func(dir string) []string {
				return []string{filepath.Join(dir, "a.nc"), filepath.Join(dir, "b.nc")}
			},
			wantCode:   1,
			wantStdout: "Usage: gconvert <input_file>\n",
			noFiles:    []string{"converted_output.nc"},
		},
		{
			name:    "too_many_arguments_stdout",
			variant: config.VariantStdout,
			files:   map[string]string{"a.nc": "G1 S0\n"},
			args: func(dir string) []string {
				return []string{filepath.Join(dir, "a.nc"), filepath.Join(dir, "a.nc")}
			},
			wantCode:   1,
			wantStdout: "Usage: gconvert <input_file>\n",
		},
		{
			name:    "unknown_flag",
			variant: config.VariantFile,
			args: func(dir string) []string {
				return []string{"--mode", "x", "in.nc"}
			},
			wantCode:   1,
			wantStdout: "Usage: gconvert <input_file>\n",
			wantStderr: []string{"unknown flag: --mode"},
			noFiles:    []string{"converted_output.nc"},
		},
		{
			name:    "missing_input",
			variant: config.VariantFile,
			args: func(dir string) []string {
				return []string{filepath.Join(dir, "missing.nc")}
			},
			wantCode:   1,
			wantStderr: []string{"opening input"},
			noFiles:    []string{"converted_output.nc"},
		},
		{
			name:    "directory_input",
			variant: config.VariantFile,
			files:   map[string]string{"converted_output.nc": "previous run\n"},
			dirs:    []string{"sub"},
			args: func(dir string) []string {
				return []string{filepath.Join(dir, "sub")}
			},
			wantCode:   1,
			wantStderr: []string{"is a directory"},
			wantFiles:  map[string]string{"converted_output.nc": "previous run\n"},
		},
		{
			name:    "dash_input_after_double_dash",
			variant: config.VariantFile,
			files:   map[string]string{"-part.nc": "G1 S1000\n"},
			args: func(dir string) []string {
				return []string{"--", "-part.nc"}
			},
			wantCode:   0,
			wantStdout: "Converted file written to converted_output.nc\n",
			wantFiles:  map[string]string{"converted_output.nc": "G1 Z-1\n"},
		},
		{
			name:    "dash_input_without_double_dash",
			variant: config.VariantFile,
			files:   map[string]string{"-part.nc": "G1 S1000\n"},
			args: func(dir string) []string {
				return []string{"-part.nc"}
			},
			wantCode:   1,
			wantStdout: "Usage: gconvert <input_file>\n",
			noFiles:    []string{"converted_output.nc"},
		},
		{
			name:    "relative_input",
			variant: config.VariantStdout,
			files:   map[string]string{"in.nc": "G1 S0\n"},
			args: func(dir string) []string {
				return []string{"in.nc"}
			},
			wantCode:   0,
			wantStdout: "G1 Z1 F1000\n",
		},
		{
			name:    "debug_shows_resolved_rules",
			variant: config.VariantFile,
			files:   map[string]string{"in.nc": "G1 S0\n"},
			args: func(dir string) []string {
				return []string{"--debug", filepath.Join(dir, "in.nc")}
			},
			wantCode:   0,
			wantStdout: "Converted file written to converted_output.nc\n",
			wantStderr: []string{"using file: 2 rules -> converted_output.nc"},
			wantFiles:  map[string]string{"converted_output.nc": "G1 Z1\n"},
		},
		{
			name:    "unwritable_output",
			variant: config.VariantFile,
			files:   map[string]string{"in.nc": "G1 S0\n"},
			args: func(dir string) []string {
				return []string{"--output", filepath.Join(dir, "nope", "out.nc"), filepath.Join(dir, "in.nc")}
			},
			wantCode:   1,
			wantStderr: []string{"creating output"},
		},
		{
			name:    "output_override_to_stdout",
			variant: config.VariantFile,
			files:   map[string]string{"in.nc": "G1 S1000\n"},
			args: func(dir string) []string {
				return []string{"-o", "-", filepath.Join(dir, "in.nc")}
			},
			wantCode:   0,
			wantStdout: "G1 Z-1\n",
			noFiles:    []string{"converted_output.nc"},
		},
		{
			name:    "output_override_to_file",
			variant: config.VariantStdout,
			files:   map[string]string{"in.nc": "G1 S1000\n"},
			args: func(dir string) []string {
				return []string{"-o", "pen.nc", filepath.Join(dir, "in.nc")}
			},
			wantCode:   0,
			wantStdout: "Converted file written to pen.nc\n",
			wantFiles:  map[string]string{"pen.nc": "G1 Z-1 F1000\n"},
		},
		{
			name:    "variant_flag",
			variant: config.VariantFile,
			files:   map[string]string{"in.nc": "G1 S0\n"},
			args: func(dir string) []string {
				return []string{"--variant", "stdout", filepath.Join(dir, "in.nc")}
			},
			wantCode:   0,
			wantStdout: "G1 Z1 F1000\n",
			noFiles:    []string{"converted_output.nc"},
		},
		{
			name:    "unknown_variant",
			variant: config.VariantFile,
			files:   map[string]string{"in.nc": "G1 S0\n"},
			args: func(dir string) []string {
				return []string{"--variant", "laser", filepath.Join(dir, "in.nc")}
			},
			wantCode:   1,
			wantStderr: []string{`unknown variant "laser"`},
			noFiles:    []string{"converted_output.nc"},
		},
		{
			name:    "rule_file",
			variant: config.VariantFile,
			files: map[string]string{
				"in.nc": "M3 S1000\nM5 S0\n",
				"rules.yaml": `
output:
  path: laser.nc
rules:
  - from: M3 S1000
    to: M3 S255
  - from: S0
    to: S000
  - from: S000
    to: S1
`,
			},
			args: func(dir string) []string {
				return []string{"--config", filepath.Join(dir, "rules.yaml"), filepath.Join(dir, "in.nc")}
			},
			wantCode:   0,
			wantStdout: "Converted file written to laser.nc\n",
			wantFiles:  map[string]string{"laser.nc": "M3 S255\nM5 S1\n"},
			noFiles:    []string{"converted_output.nc"},
		},
		{
			name:    "rule_file_glob_skips_input",
			variant: config.VariantFile,
			files: map[string]string{
				"in.gcode": "G1 S0\n",
				"rules.json": `{"output":{"stdout":true},"rules":[
					{"from":"S0","to":"Z1","files":"*.nc"}
				]}`,
			},
			args: func(dir string) []string {
				return []string{"-c", filepath.Join(dir, "rules.json"), filepath.Join(dir, "in.gcode")}
			},
			wantCode:   0,
			wantStdout: "G1 S0\n",
			wantStderr: []string{"1 of 1 rules do not apply to"},
		},
		{
			name:    "bad_rule_file",
			variant: config.VariantFile,
			files: map[string]string{
				"in.nc":      "G1 S0\n",
				"rules.yaml": "rules: []\n",
			},
			args: func(dir string) []string {
				return []string{"-c", filepath.Join(dir, "rules.yaml"), filepath.Join(dir, "in.nc")}
			},
			wantCode:   1,
			wantStderr: []string{"at least one rule is required"},
			noFiles:    []string{"converted_output.nc"},
		},
		{
			name:    "summary",
			variant: config.VariantFile,
			files:   map[string]string{"in.nc": "G1 S1000 X10\nG1 S0 Y5\n"},
			args: func(dir string) []string {
				return []string{"--summary", filepath.Join(dir, "in.nc")}
			},
			wantCode:   0,
			wantStdout: "Converted file written to converted_output.nc\n",
			wantStderr: []string{"2 lines, 2 modified, 2 replacements", "(22B -> 20B)"},
			wantFiles:  map[string]string{"converted_output.nc": "G1 Z-1 X10\nG1 Z1 Y5\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range tt.dirs {
				require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0755), "creating %s", name)
			}
			for name, content := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644), "writing %s", name)
			}

			cmd := NewRootCommand(Options{
				Name:    "gconvert",
				Variant: tt.variant,
				WorkDir: dir,
			})

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}
			code := Execute(context.Background(), cmd, tt.args(dir), stdout, stderr)

			assert.Equal(t, tt.wantCode, code, "exit code should match (stderr: %s)", stderr.String())
			assert.Equal(t, tt.wantStdout, stdout.String(), "stdout should match")
			for _, want := range tt.wantStderr {
				assert.Contains(t, stderr.String(), want, "stderr should mention %q", want)
			}
			if len(tt.wantStderr) == 0 && tt.wantCode == 0 {
				assert.Empty(t, stderr.String(), "stderr should be empty")
			}

			for name, want := range tt.wantFiles {
				got, err := os.ReadFile(filepath.Join(dir, name))
				require.NoError(t, err, "reading %s", name)
				assert.Equal(t, want, string(got), "%s content should match", name)
			}
			for _, name := range tt.noFiles {
				_, err := os.Stat(filepath.Join(dir, name))
				assert.True(t, os.IsNotExist(err), "%s should not exist", name)
			}
		})
	}
}

func TestRootCommand_ListRules(t *testing.T) {
	cmd := NewRootCommand(Options{Name: "gconvert-stdout", Variant: config.VariantStdout, WorkDir: t.TempDir()})

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := Execute(context.Background(), cmd, []string{"--list-rules"}, stdout, stderr)

	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "stdout: 2 rules -> <stdout>")
	assert.Contains(t, out, `"S1000"`)
	assert.Contains(t, out, `"Z-1 F1000"`)
	assert.Contains(t, out, `"Z1 F1000"`)
}

func TestRootCommand_Version(t *testing.T) {
	cmd := NewRootCommand(Options{Name: "gconvert", Variant: config.VariantFile})

	stdout := &bytes.Buffer{}
	code := Execute(context.Background(), cmd, []string{"--version"}, stdout, &bytes.Buffer{})

	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "gconvert version info")
	assert.Contains(t, stdout.String(), "Go:")
}
