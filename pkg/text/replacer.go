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

// ReplacementRule defines a single literal replacement
type ReplacementRule struct {
	// FromText is the literal text to replace
	FromText string

	// ToText is the replacement text
	ToText string

	// FileFilterGlob limits the rule to input paths matching this doublestar glob.
	// Empty matches every path.
	FileFilterGlob string
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceLine applies the rules, in order, to a single line and returns the new line
	// along with the number of replacements made
	ReplaceLine(line string, rules []ReplacementRule) (string, int)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []ReplacementRule) error
}
