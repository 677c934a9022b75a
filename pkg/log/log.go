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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent the summary line
	nameWidth  = 30 // Base width for file names
)

// 🎯 RewriteOperation describes one finished rewrite for the summary line
type RewriteOperation struct {
	Input         string // Input path
	Output        string // Output path, empty for stdout
	Lines         int    // Lines processed
	ModifiedLines int    // Lines with at least one replacement
	Replacements  int    // Total replacements
	BytesIn       int64  // Bytes read
	BytesOut      int64  // Bytes written
}

// 🎯 Logger pairs human console lines with zerolog events
type Logger struct {
	zlog     zerolog.Logger
	console  io.Writer
	colorize bool
	mu       sync.Mutex
}

// 🏭 New creates a new logger. Both the console lines and the zerolog events go
// to console; colour is only used when console is a terminal.
func New(console io.Writer, level zerolog.Level) *Logger {
	colorize := IsTerminal(console)
	zlog := zerolog.New(zerolog.ConsoleWriter{
		Out:     console,
		NoColor: !colorize,
	}).With().Timestamp().Logger().Level(level)

	return &Logger{
		zlog:     zlog,
		console:  console,
		colorize: colorize,
		mu:       sync.Mutex{},
	}
}

// IsTerminal reports whether w is a terminal file
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context, along with its zerolog logger so
// that zerolog.Ctx works for packages that only know about zerolog
func NewContext(ctx context.Context, l *Logger) context.Context {
	ctx = l.zlog.WithContext(ctx)
	return context.WithValue(ctx, contextKey{}, l)
}

func (l *Logger) paint(s string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if l.colorize {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

// 📝 formatRewrite formats a rewrite summary for display
func (l *Logger) formatRewrite(op RewriteOperation) string {
	symbol, symbolColor := "-", color.FgYellow
	if op.Replacements > 0 {
		symbol, symbolColor = "⟳", color.FgBlue
	}

	output := op.Output
	if output == "" {
		output = "<stdout>"
	}

	return fmt.Sprintf("%*s%s %s %s %s",
		fileIndent, "",
		l.paint(symbol, symbolColor),
		fmt.Sprintf("%-*s", nameWidth, op.Input+" -> "+output),
		l.paint(fmt.Sprintf("%d lines, %d modified, %d replacements", op.Lines, op.ModifiedLines, op.Replacements), color.FgCyan),
		l.paint(fmt.Sprintf("(%s -> %s)", units.HumanSize(float64(op.BytesIn)), units.HumanSize(float64(op.BytesOut))), color.Faint))
}

// 📝 LogRewrite prints a one-line summary of a rewrite
func (l *Logger) LogRewrite(ctx context.Context, op RewriteOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatRewrite(op))

	l.zlog.Debug().
		Str("input", op.Input).
		Str("output", op.Output).
		Int("lines", op.Lines).
		Int("modified_lines", op.ModifiedLines).
		Int("replacements", op.Replacements).
		Int64("bytes_in", op.BytesIn).
		Int64("bytes_out", op.BytesOut).
		Msg("rewrite summary")
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", l.paint(msg, color.FgYellow))
	l.zlog.Debug().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", l.paint(msg, color.FgRed))
	l.zlog.Debug().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", l.paint(msg, color.FgCyan))
	l.zlog.Debug().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
