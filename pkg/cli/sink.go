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
	"io"
	"os"
	"sync"

	"github.com/walteh/ncrewrite/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// sink is an output that can be closed more than once
type sink struct {
	io.Writer
	once  sync.Once
	close func() error
	err   error
}

func (s *sink) Close() error {
	s.once.Do(func() {
		if s.close != nil {
			s.err = s.close()
		}
	})
	return s.err
}

// openSink creates or truncates the output file, or wraps stdout which is
// never closed here
func openSink(out config.Output, resolve func(string) string, stdout io.Writer) (io.WriteCloser, error) {
	if out.Stdout {
		return &sink{Writer: stdout}, nil
	}

	f, err := os.Create(resolve(out.Path))
	if err != nil {
		return nil, errors.Errorf("creating output: %w", err)
	}

	return &sink{Writer: f, close: f.Close}, nil
}
