// Copyright 2018 The Kura Authors.
// Copyright 2024 The Mountbox Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	fileNameRegexp = regexp.MustCompile(`^[\w.\-]+\.go$`)
	tracePointRe   = regexp.MustCompile(`^([\w.\-]+\.go):(\d+)$`)
)

// ModeFlag is a flag.Value for a Mode, e.g. -log-mode info|debug.
type ModeFlag struct {
	Mode  Mode
	Given bool // the flag appeared on the command line
}

func (f *ModeFlag) String() string {
	if f == nil || !f.Given {
		return DefaultMode.String()
	}
	return f.Mode.String()
}

func (f *ModeFlag) Set(value string) error {
	m, err := ParseMode(value)
	if err != nil {
		return err
	}
	f.Mode, f.Given = m, true
	return nil
}

// FileMode overrides the global mode for one file.
type FileMode struct {
	File string
	Mode Mode
}

// FilterFlag is a flag.Value for comma-separated file.go:mode overrides.
type FilterFlag []FileMode

func (f *FilterFlag) String() string {
	if f == nil {
		return ""
	}
	var parts []string
	for _, fm := range *f {
		parts = append(parts, fm.File+":"+fm.Mode.String())
	}
	return strings.Join(parts, ",")
}

func (f *FilterFlag) Set(value string) error {
	for _, setting := range strings.Split(value, ",") {
		parts := strings.SplitN(setting, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("improperly formatted filter %q, expected file.go:mode", setting)
		}
		if !fileNameRegexp.MatchString(parts[0]) {
			return fmt.Errorf("filter %q doesn't name a .go file", setting)
		}
		m, err := ParseMode(parts[1])
		if err != nil {
			return err
		}
		*f = append(*f, FileMode{File: parts[0], Mode: m})
	}
	return nil
}

// BacktraceFlag is a flag.Value for comma-separated file.go:line tracepoints.
type BacktraceFlag []string

func (f *BacktraceFlag) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(*f, ",")
}

func (f *BacktraceFlag) Set(value string) error {
	for _, tp := range strings.Split(value, ",") {
		m := tracePointRe.FindStringSubmatch(tp)
		if m == nil {
			return fmt.Errorf("improperly formatted tracepoint %q, expected file.go:line", tp)
		}
		if _, err := strconv.Atoi(m[2]); err != nil {
			return fmt.Errorf("tracepoint %q: %v", tp, err)
		}
		*f = append(*f, tp)
	}
	return nil
}

// CommandFlags are the logging flags every mountbox command accepts.
type CommandFlags struct {
	Dir            string
	SuppressStderr bool
	Mode           ModeFlag
	Filter         FilterFlag
	Backtrace      BacktraceFlag
}

// Register adds the flags to fs.
func (f *CommandFlags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Dir, "log-dir", "",
		"Write log files to the specified directory")
	fs.BoolVar(&f.SuppressStderr, "suppress-stderr", false,
		"Suppress standard error logging")
	fs.Var(&f.Mode, "log-mode",
		"Log mode for logs emitted globally (can be overridden using -log-filter)")
	fs.Var(&f.Filter, "log-filter",
		"Comma-separated list of file.go:mode settings for file-filtered logging")
	fs.Var(&f.Backtrace, "log-backtrace-at",
		"Comma-separated list of file.go:N settings to emit backtraces")
}

// Logger applies the parsed filters to the global state and returns a
// logger writing to stderr and, with -log-dir, to rotating files of 50 MiB.
func (f *CommandFlags) Logger() *Logger {
	if f.Mode.Given {
		SetGlobalLogMode(f.Mode.Mode)
	}
	for _, fm := range f.Filter {
		SetFileLogMode(fm.File, fm.Mode)
	}
	for _, tp := range f.Backtrace {
		SetTracePoint(tp)
	}

	var writer io.Writer = ioutil.Discard
	if f.Dir != "" {
		writer = LogRotationWriter(f.Dir, 50<<20)
	}
	if !f.SuppressStderr {
		writer = MultiWriter(writer, os.Stderr)
	}
	writer = SynchronizedWriter(writer)
	logf := Ldate | Ltime | Lmicroseconds | Llongfile | LUTC | Lmode
	return New(Writer(writer), Flags(logf), SkipBasePath())
}
