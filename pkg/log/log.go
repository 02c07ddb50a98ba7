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
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	eventIndent = 4  // spaces to indent progress events
	kindWidth   = 16 // Width for the message kind
	valueWidth  = 10 // Width for the value
)

// 📨 ProgressEvent is one progress message as seen by a pushing host
type ProgressEvent struct {
	Kind  string // total_steps, current_step, total_records, current_record
	Value int64
}

// 📦 JobOperation describes the job a worker is about to run
type JobOperation struct {
	ID      string // Job identifier
	Name    string // Display name
	Input   string // Primary input or file set summary
	Output  string // Output path
	FileSet int    // Number of files in the file set
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *JobOperation
	events    int
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return NewWithZerolog(console, zlog)
}

// 🏭 NewWithZerolog creates a logger that mirrors console output to zlog
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
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

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatProgressEvent formats a progress event for display
func (l *Logger) formatProgressEvent(ev ProgressEvent) string {
	var symbol rune
	var symbolColor color.Attribute
	switch ev.Kind {
	case "total_steps", "total_records":
		symbol = '◇'
		symbolColor = color.FgCyan
	case "current_step":
		symbol = '▶'
		symbolColor = color.FgMagenta
	default:
		symbol = '·'
		symbolColor = color.FgBlue
	}

	return fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", eventIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", kindWidth, ev.Kind),
		fmt.Sprintf("%*d", valueWidth, ev.Value))
}

// 📝 LogProgress logs a progress event
func (l *Logger) LogProgress(ctx context.Context, ev ProgressEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events++

	fmt.Fprintln(l.console, l.formatProgressEvent(ev))

	l.zlog.Debug().
		Str("kind", ev.Kind).
		Int64("value", ev.Value).
		Msg("progress")
}

// 📝 StartJob starts a new job
func (l *Logger) StartJob(ctx context.Context, op JobOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.events = 0

	fmt.Fprintf(l.console, "[running %s]\n",
		color.New(color.FgCyan).Sprint(op.Name))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Input),
		color.New(color.Faint).Sprint("→"),
		color.New(color.FgYellow).Sprint(op.Output))

	l.zlog.Info().
		Str("job_id", op.ID).
		Str("job", op.Name).
		Str("input", op.Input).
		Str("output", op.Output).
		Int("file_set", op.FileSet).
		Msg("starting job")
}

// 📝 EndJob ends the current job
func (l *Logger) EndJob(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	l.zlog.Info().
		Str("job_id", l.currentOp.ID).
		Str("job", l.currentOp.Name).
		Int("events", l.events).
		Msg("job complete")

	l.currentOp = nil
	l.events = 0
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nameText := color.New(color.Bold, color.FgCyan).Sprint("filecomm")
	fmt.Fprintf(l.console, "\n%s %s\n\n", nameText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
