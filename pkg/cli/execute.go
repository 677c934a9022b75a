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

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/ncrewrite/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🚀 Execute runs cmd with args and returns the process exit code.
// Usage errors print the usage line to stdout, everything else is
// reported on stderr.
func Execute(ctx context.Context, cmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if errors.Is(err, ErrUsage) {
		if err.Error() != ErrUsage.Error() {
			log.New(stderr, zerolog.InfoLevel).Error(err.Error())
		}
		fmt.Fprintf(stdout, "Usage: %s <input_file>\n", cmd.Name())
		return 1
	}

	log.New(stderr, zerolog.InfoLevel).Error(err.Error())
	return 1
}
