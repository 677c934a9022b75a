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

// Command gconvert rewrites S1000/S0 as Z-1/Z1 into converted_output.nc.
package main

import (
	"context"
	"os"

	"github.com/walteh/ncrewrite/pkg/cli"
	"github.com/walteh/ncrewrite/pkg/config"
)

func main() {
	cmd := cli.NewRootCommand(cli.Options{
		Name:    "gconvert",
		Variant: config.VariantFile,
	})
	os.Exit(cli.Execute(context.Background(), cmd, os.Args[1:], os.Stdout, os.Stderr))
}
