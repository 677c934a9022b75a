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

// Package rewrite streams a text input line by line through an ordered list of
// literal replacement rules.
package rewrite

import (
	"bufio"
	"context"
	"io"
	"math"

	"github.com/rs/zerolog"
	"github.com/walteh/ncrewrite/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// maxLineSize leaves line length bounded only by memory
const maxLineSize = math.MaxInt

// 🔧 Options configures a Rewriter
type Options struct {
	// Rules are applied to every line in order
	Rules []text.ReplacementRule
	// Replacer performs the substitution, defaults to text.SimpleTextReplacer
	Replacer text.TextReplacer
}

// 📊 Result summarizes a rewrite run
type Result struct {
	Lines         int   // Lines read (and written)
	ModifiedLines int   // Lines that had at least one replacement
	Replacements  int   // Total replacements across all lines
	BytesIn       int64 // Bytes read from the input
	BytesOut      int64 // Bytes written to the output
}

// ✏️ Rewriter applies replacement rules to a line stream
type Rewriter struct {
	rules    []text.ReplacementRule
	replacer text.TextReplacer
}

// 🏭 New creates a Rewriter after validating the rules
func New(opts Options) (*Rewriter, error) {
	replacer := opts.Replacer
	if replacer == nil {
		replacer = text.NewSimpleTextReplacer()
	}

	if err := replacer.ValidateRules(opts.Rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	return &Rewriter{
		rules:    opts.Rules,
		replacer: replacer,
	}, nil
}

// 🏃 Rewrite copies in to out one line at a time, applying every rule to each
// line before it is written. Lines already written stay written if a later
// read or write fails.
func (r *Rewriter) Rewrite(ctx context.Context, in io.Reader, out io.Writer) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	scanner.Split(ScanLines)

	result := &Result{}
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return result, errors.Errorf("rewrite cancelled after %d lines: %w", result.Lines, err)
		}

		line := scanner.Text()
		result.Lines++
		result.BytesIn += int64(len(line))

		replaced, n := r.replacer.ReplaceLine(line, r.rules)
		if n > 0 {
			result.ModifiedLines++
			result.Replacements += n
			logger.Trace().Int("line", result.Lines).Int("replacements", n).Msg("line rewritten")
		}

		written, err := io.WriteString(out, replaced)
		result.BytesOut += int64(written)
		if err != nil {
			return result, errors.Errorf("writing line %d: %w", result.Lines, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return result, errors.Errorf("reading line %d: %w", result.Lines+1, err)
	}

	logger.Debug().
		Int("lines", result.Lines).
		Int("modified_lines", result.ModifiedLines).
		Int("replacements", result.Replacements).
		Int64("bytes_in", result.BytesIn).
		Int64("bytes_out", result.BytesOut).
		Msg("rewrite complete")

	return result, nil
}
