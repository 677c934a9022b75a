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

package text

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// SimpleTextReplacer implements TextReplacer using literal string replacement
type SimpleTextReplacer struct{}

var _ TextReplacer = (*SimpleTextReplacer)(nil)

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// ReplaceLine implements TextReplacer.ReplaceLine.
//
// Each rule sees the output of the rules before it, so a replacement that produces
// a later rule's pattern will be replaced again.
func (r *SimpleTextReplacer) ReplaceLine(line string, rules []ReplacementRule) (string, int) {
	count := 0
	for _, rule := range rules {
		// Skip empty rules
		if rule.FromText == "" {
			continue
		}

		n := strings.Count(line, rule.FromText)
		if n == 0 {
			continue
		}

		line = strings.ReplaceAll(line, rule.FromText, rule.ToText)
		count += n
	}
	return line, count
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from_text is required", i)
		}
		if rule.FileFilterGlob != "" && !doublestar.ValidatePattern(rule.FileFilterGlob) {
			return errors.Errorf("rule %d: invalid file_filter_glob %q", i, rule.FileFilterGlob)
		}
	}
	return nil
}

// FilterRules returns the rules that apply to path, keeping their order.
// Rules without a FileFilterGlob always apply. Globs are matched against the
// slash-separated path and, failing that, against its base name.
func FilterRules(path string, rules []ReplacementRule) []ReplacementRule {
	slashed := filepath.ToSlash(path)
	base := slashed
	if i := strings.LastIndex(slashed, "/"); i >= 0 {
		base = slashed[i+1:]
	}

	out := make([]ReplacementRule, 0, len(rules))
	for _, rule := range rules {
		if rule.FileFilterGlob == "" {
			out = append(out, rule)
			continue
		}
		if doublestar.MatchUnvalidated(rule.FileFilterGlob, slashed) || doublestar.MatchUnvalidated(rule.FileFilterGlob, base) {
			out = append(out, rule)
		}
	}
	return out
}
