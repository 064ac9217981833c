// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in licenses/BSD-golang.txt.

// Portions of this file are additionally subject to the following
// license and copyright.
//
// Copyright 2018 Irfan Sharif.
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

// Portions of this code originated in the standard library 'log' package.

package log

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"
)

// Logger writes leveled messages to an io.Writer. Whether a message is
// written is decided by the global and per-file modes, see gstate.go.
type Logger struct {
	w        io.Writer
	flag     Flag
	basePath string // trimmed from Llongfile names, optional
	prefix   string // written after the header, see With
}

// configure sets up the defaults: a synchronized os.Stderr writer, no base
// path and LstdFlags, which produces headers like
//
//	I240419 06:33:04.606396 supervisor.go:42: message
func configure(l *Logger) {
	l.w = DefaultWriter()
	l.flag = LstdFlags
	l.basePath = ""
}

// New returns a new Logger, configured with the provided options, if any.
func New(options ...option) *Logger {
	l := &Logger{}
	configure(l)
	for _, option := range options {
		option(l)
	}
	return l
}

// Discarder returns a Logger configured to discard all writes.
func Discarder() *Logger {
	return New(Writer(ioutil.Discard))
}

// With returns a logger writing to the same destination whose messages are
// prefixed with tag, e.g. "[pid 4242] ". Prefixes accumulate.
func (l *Logger) With(tag string) *Logger {
	c := *l
	c.prefix = l.prefix + "[" + tag + "] "
	return &c
}

// Info logs at InfoMode in the manner of fmt.Println.
func (l *Logger) Info(v ...interface{}) {
	l.log(InfoMode, fmt.Sprintln(v...))
}

// Infof logs at InfoMode in the manner of fmt.Printf, appending a newline.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.log(InfoMode, fmt.Sprintf(format+"\n", v...))
}

func (l *Logger) Warn(v ...interface{}) {
	l.log(WarnMode, fmt.Sprintln(v...))
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.log(WarnMode, fmt.Sprintf(format+"\n", v...))
}

func (l *Logger) Error(v ...interface{}) {
	l.log(ErrorMode, fmt.Sprintln(v...))
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.log(ErrorMode, fmt.Sprintf(format+"\n", v...))
}

// Fatal logs at FatalMode, which is never filtered, followed by the stacks
// of all goroutines, and exits with status 255.
func (l *Logger) Fatal(v ...interface{}) {
	l.log(FatalMode, fmt.Sprintln(v...))
	l.fatal()
}

func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.log(FatalMode, fmt.Sprintf(format+"\n", v...))
	l.fatal()
}

func (l *Logger) Debug(v ...interface{}) {
	l.log(DebugMode, fmt.Sprintln(v...))
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.log(DebugMode, fmt.Sprintf(format+"\n", v...))
}

func (l *Logger) fatal() {
	buf := make([]byte, 1<<20)
	l.w.Write(buf[:runtime.Stack(buf, true)])
	os.Exit(255)
}

// enabled reports whether a message at lmode from file bfile passes the
// filters. A file mode, when set, overrides the global one.
func enabled(bfile string, lmode Mode) bool {
	if lmode&FatalMode != DisabledMode {
		return true
	}
	if fmode, ok := GetFileLogMode(bfile); ok {
		return fmode&lmode != DisabledMode
	}
	return GetGlobalLogMode()&lmode != DisabledMode
}

// log must only be called from the exported logging methods; the caller two
// frames up is the logging statement.
func (l *Logger) log(lmode Mode, data string) {
	file, line := caller(2)
	bfile := filepath.Base(file)

	if GetTracePoint(fmt.Sprintf("%s:%d", bfile, line)) {
		// Skip log and the exported wrapper.
		l.w.Write(stacktrace(2))
	}
	if !enabled(bfile, lmode) {
		return
	}

	var buf bytes.Buffer
	buf.Write(l.header(lmode, time.Now(), file, line))
	buf.WriteString(l.prefix)
	buf.WriteString(data)
	l.w.Write(buf.Bytes())
}

// header formats the header for a message as per l.flag. With Llongfile the
// base path, if any, is trimmed from file.
func (l *Logger) header(lmode Mode, t time.Time, file string, line int) []byte {
	var b []byte
	if l.flag&Lmode != 0 {
		b = append(b, lmode.byte())
	}
	if l.flag&LUTC != 0 {
		t = t.UTC()
	}
	if l.flag&Ldate != 0 {
		year, month, day := t.Date()
		if year < 2000 {
			year = 2000
		}
		itoa(&b, year-2000, 2)
		itoa(&b, int(month), 2)
		itoa(&b, day, 2)
		if l.flag&(Ltime|Lmicroseconds) != 0 {
			b = append(b, ' ')
		}
	}
	if l.flag&(Ltime|Lmicroseconds) != 0 {
		hour, min, sec := t.Clock()
		itoa(&b, hour, 2)
		b = append(b, ':')
		itoa(&b, min, 2)
		b = append(b, ':')
		itoa(&b, sec, 2)
		if l.flag&Lmicroseconds != 0 {
			b = append(b, '.')
			itoa(&b, t.Nanosecond()/1e3, 6)
		}
	}
	b = append(b, ' ')

	if l.flag&(Lshortfile|Llongfile) != 0 {
		switch {
		case l.flag&Lshortfile != 0:
			file = filepath.Base(file)
		case l.basePath != "":
			if rel, err := filepath.Rel(l.basePath, file); err == nil {
				file = rel
			}
		}
		b = append(b, file...)
		b = append(b, ':')
		itoa(&b, line, -1)
		b = append(b, ": "...)
	}
	return b
}

// itoa appends i in decimal, zero-padded to wid digits. A negative width
// avoids zero-padding.
func itoa(buf *[]byte, i int, wid int) {
	var b [20]byte
	bp := len(b) - 1
	for i >= 10 || wid > 1 {
		wid--
		q := i / 10
		b[bp] = byte('0' + i - q*10)
		bp--
		i = q
	}
	b[bp] = byte('0' + i)
	*buf = append(*buf, b[bp:]...)
}

// stacktrace returns the current goroutine's stack minus the skip innermost
// callers of stacktrace. The "goroutine N [running]:" line is kept.
func stacktrace(skip int) []byte {
	// Two lines per frame: debug.Stack, stacktrace and the skipped callers.
	skip = 2 * (skip + 2)

	lines := bytes.Split(debug.Stack(), []byte("\n"))
	copy(lines[1:], lines[1+skip:])
	lines = lines[:len(lines)-skip]
	return bytes.Join(lines, []byte("\n"))
}

// caller returns the call site depth frames above its own caller.
func caller(depth int) (file string, line int) {
	_, file, line, ok := runtime.Caller(depth + 1)
	if !ok {
		return "[???]", -1
	}
	return file, line
}
