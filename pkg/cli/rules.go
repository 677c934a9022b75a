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
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/walteh/ncrewrite/pkg/config"
	"github.com/walteh/ncrewrite/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 📋 printRules renders the active rules as a table
func printRules(w io.Writer, cfg *config.Config) error {
	if !log.IsTerminal(w) {
		pterm.DisableStyling()
		defer pterm.EnableStyling()
	}

	data := pterm.TableData{{"#", "from", "to", "files"}}
	for i, r := range cfg.Rules {
		files := r.Files
		if files == "" {
			files = "*"
		}
		data = append(data, []string{strconv.Itoa(i + 1), strconv.Quote(r.From), strconv.Quote(r.To), files})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering rules: %w", err)
	}

	fmt.Fprintln(w, cfg.String())
	fmt.Fprintln(w, table)
	return nil
}
