// Copyright 2013 Google Inc. All Rights Reserved.
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

// Portions of this code originated in the github.com/golang/glog package.

package log

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"sync"
	"time"
)

var (
	program  = filepath.Base(os.Args[0])
	hostname = "?"
	username = "?"
	pid      = os.Getpid()
)

func init() {
	if host, err := os.Hostname(); err == nil {
		hostname = host
	}
	if u, err := user.Current(); err == nil {
		username = u.Username
	}
}

// DefaultWriter returns os.Stderr, safe for concurrent use.
func DefaultWriter() io.Writer {
	return SynchronizedWriter(os.Stderr)
}

// LogRotationWriter writes to files in dirname, starting a new one whenever
// the current file would grow past sizeThreshold bytes. A symlink named
// after the program points at the newest file. A single write larger than
// the threshold still goes to one file.
func LogRotationWriter(dirname string, sizeThreshold int) io.Writer {
	os.MkdirAll(dirname, os.ModePerm)
	return &logRotationWriter{
		dirname:       dirname,
		symlink:       program + ".log",
		sizeThreshold: sizeThreshold,
	}
}

// SynchronizedWriter serializes writes to w.
func SynchronizedWriter(w io.Writer) io.Writer {
	return &synchronizedWriter{w: w}
}

// MultiWriter duplicates writes to every writer given. Unlike io.MultiWriter
// a failing writer doesn't stop the others.
func MultiWriter(w io.Writer, ws ...io.Writer) io.Writer {
	return &multiWriter{ws: append([]io.Writer{w}, ws...)}
}

// logFilename names a log file
// <program>.<host>.<user>.<yyyy-mm-dd.hh:mm:ss.ms>.<pid>.log,
// e.g. mountbox.buildhost.alice.2024-04-10.22:43:54.717.7989.log
func logFilename(t time.Time) string {
	return fmt.Sprintf("%s.%s.%s.%s.%d.log",
		program, hostname, username, t.Format("2006-01-02.15:04:05.999"), pid)
}

type logRotationWriter struct {
	dirname, symlink string
	sizeThreshold    int

	file *os.File
	size int
}

func (r *logRotationWriter) rotate() error {
	fname := logFilename(time.Now())
	f, err := os.Create(filepath.Join(r.dirname, fname))
	if err != nil {
		return err
	}
	if r.file != nil {
		r.file.Close()
	}
	r.file, r.size = f, 0

	link := filepath.Join(r.dirname, r.symlink)
	os.Remove(link)
	os.Symlink(fname, link)
	return nil
}

func (r *logRotationWriter) Write(b []byte) (int, error) {
	if r.file == nil || r.size+len(b) > r.sizeThreshold {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := r.file.Write(b)
	r.size += n
	return n, err
}

type synchronizedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *synchronizedWriter) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(b)
}

type multiWriter struct {
	ws []io.Writer
}

// Write reports the smallest count written and the last error seen.
func (m *multiWriter) Write(b []byte) (n int, err error) {
	n = len(b)
	for _, w := range m.ws {
		wn, werr := w.Write(b)
		if wn < n {
			n = wn
		}
		if werr != nil {
			err = werr
		}
	}
	return n, err
}
