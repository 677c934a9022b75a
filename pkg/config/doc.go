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

/*
Package config describes a rewrite variant: the ordered replacement rules and
the sink that rewritten lines go to.

	            +-------------+
	            |   Config    |
	            | rules, sink |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |  JSON   |   |   HCL   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+

🎯 Built-ins:
  - file: S1000 -> Z-1, S0 -> Z1, written to converted_output.nc
  - stdout: S1000 -> Z-1 F1000, S0 -> Z1 F1000, written to stdout

🔄 Flow:
 1. Pick a built-in with Builtin, or load a rule file with LoadConfig
 2. Validate fills in the default output path
 3. ReplacementRules hands the ordered rules to the rewriter

Rule order is significant. Every rule sees the output of the rules before it,
so S1000 has to come before S0.

🔍 Example:

	cfg, err := config.LoadConfig(ctx, "pen.yaml")
	if err != nil {
		return err
	}
	rw, err := rewrite.New(rewrite.Options{Rules: cfg.ReplacementRules()})
*/
package config
