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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/ncrewrite/pkg/config"
	"github.com/walteh/ncrewrite/pkg/log"
	"github.com/walteh/ncrewrite/pkg/rewrite"
	"github.com/walteh/ncrewrite/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrUsage is returned when the command line is malformed
var ErrUsage = errors.Base("usage error")

// 🔧 Options configures a root command
type Options struct {
	// Name is the program name shown in usage text
	Name string
	// Variant is the built-in used when no rule file is given
	Variant string
	// WorkDir resolves relative input and output paths, empty means the process working directory
	WorkDir string
}

// rootOpts holds parsed flags for one command
type rootOpts struct {
	Options

	configFile string
	output     string
	listRules  bool
	summary    bool
	debug      bool
}

// 🏭 NewRootCommand creates the rewrite command for one program
func NewRootCommand(opts Options) *cobra.Command {
	o := &rootOpts{Options: opts}

	cmd := &cobra.Command{
		Use:   opts.Name + " <input_file>",
		Short: "Rewrite spindle words in a G-code file as Z moves",
		Long: fmt.Sprintf(`Reads the input file line by line and applies an ordered list of literal
replacements to every line. Line endings are kept exactly as they are.

The built-in "file" variant writes converted_output.nc with S1000 -> Z-1 and
S0 -> Z1. The built-in "stdout" variant prints to stdout with S1000 -> Z-1 F1000
and S0 -> Z1 F1000.

Put -- before an input path that starts with a dash:

  %[1]s -- -part.nc`, opts.Name),
		Args:          cobra.ArbitraryArgs,
		Version:       GetVersionInfo().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if o.debug {
				level = zerolog.DebugLevel
			}
			logger := log.New(cmd.ErrOrStderr(), level)
			cmd.SetContext(log.NewContext(cmd.Context(), logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.listRules {
				cfg, err := o.resolveConfig(cmd.Context())
				if err != nil {
					return err
				}
				return printRules(cmd.OutOrStdout(), cfg)
			}

			// nothing is opened before the argument check
			if len(args) != 1 {
				return ErrUsage
			}

			cfg, err := o.resolveConfig(cmd.Context())
			if err != nil {
				return err
			}

			return o.run(cmd.Context(), cmd.OutOrStdout(), cfg, args[0])
		},
	}

	cmd.SetVersionTemplate(FormatVersion(opts.Name))
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return errors.Errorf("%w: %s", ErrUsage, err.Error())
	})

	addRootFlags(cmd, o)

	return cmd
}

// addRootFlags adds the flags shared by every program
func addRootFlags(cmd *cobra.Command, o *rootOpts) {
	cmd.PersistentFlags().StringVarP(&o.configFile, "config", "c", "", "rule file (.yaml, .yml, .json or .hcl) replacing the built-in rules")
	cmd.PersistentFlags().StringVar(&o.Variant, "variant", o.Variant, "built-in variant to use when no rule file is given (file or stdout)")
	cmd.PersistentFlags().StringVarP(&o.output, "output", "o", "", "override the output path, - for stdout")
	cmd.PersistentFlags().BoolVar(&o.listRules, "list-rules", false, "print the active rules and exit")
	cmd.PersistentFlags().BoolVar(&o.summary, "summary", false, "print a summary line to stderr when done")
	cmd.PersistentFlags().BoolVarP(&o.debug, "debug", "d", false, "enable debug logging")
}

// resolveConfig picks the rule file or the built-in and applies flag overrides
func (o *rootOpts) resolveConfig(ctx context.Context) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if o.configFile != "" {
		cfg, err = config.LoadConfig(ctx, o.configFile)
	} else {
		cfg, err = config.Builtin(o.Variant)
	}
	if err != nil {
		return nil, errors.Errorf("loading rules: %w", err)
	}

	switch o.output {
	case "":
	case "-":
		cfg.Output = config.Output{Stdout: true}
	default:
		cfg.Output = config.Output{Path: o.output}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	if o.debug {
		log.FromContext(ctx).Infof("using %s", cfg)
	}

	return cfg, nil
}

// 🏃 run rewrites one input into the configured sink
func (o *rootOpts) run(ctx context.Context, stdout io.Writer, cfg *config.Config, inputPath string) error {
	all := cfg.ReplacementRules()
	rules := text.FilterRules(inputPath, all)
	if skipped := len(all) - len(rules); skipped > 0 {
		log.FromContext(ctx).Warningf("%d of %d rules do not apply to %s", skipped, len(all), inputPath)
	}

	rw, err := rewrite.New(rewrite.Options{Rules: rules})
	if err != nil {
		return errors.Errorf("creating rewriter: %w", err)
	}

	in, err := os.Open(o.resolve(inputPath))
	if err != nil {
		return errors.Errorf("opening input: %w", err)
	}
	defer in.Close()

	// a directory opens fine but fails on first read, after the sink is truncated
	info, err := in.Stat()
	if err != nil {
		return errors.Errorf("opening input: %w", err)
	}
	if info.IsDir() {
		return errors.Errorf("opening input: %s is a directory", inputPath)
	}

	sink, err := openSink(cfg.Output, o.resolve, stdout)
	if err != nil {
		return err
	}
	defer sink.Close()

	result, err := rw.Rewrite(ctx, in, sink)
	if err != nil {
		return errors.Errorf("rewriting %s: %w", inputPath, err)
	}

	if err := sink.Close(); err != nil {
		return errors.Errorf("closing output: %w", err)
	}

	if !cfg.Output.Stdout {
		fmt.Fprintf(stdout, "Converted file written to %s\n", cfg.Output.Path)
	}

	if o.summary {
		log.FromContext(ctx).LogRewrite(ctx, log.RewriteOperation{
			Input:         inputPath,
			Output:        cfg.Output.Path,
			Lines:         result.Lines,
			ModifiedLines: result.ModifiedLines,
			Replacements:  result.Replacements,
			BytesIn:       result.BytesIn,
			BytesOut:      result.BytesOut,
		})
	}

	return nil
}

// resolve joins relative paths onto WorkDir when one is set
func (o *rootOpts) resolve(path string) string {
	if o.WorkDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(o.WorkDir, path)
}
