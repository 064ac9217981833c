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

// Package log implements leveled logs with runtime filtering. Commands
// register the shared flags with CommandFlags:
//
//	$ mountbox run -help
//	  -log-dir string
//	        Write log files to the specified directory
//	  -suppress-stderr
//	        Suppress standard error logging
//	  -log-mode value
//	        Log mode for logs emitted globally (can be overridden using -log-filter)
//	  -log-filter value
//	        Comma-separated list of file.go:mode settings for file-filtered logging
//	  -log-backtrace-at value
//	        Comma-separated list of file.go:N settings to emit backtraces
//
//	$ mountbox run -log-mode info -log-filter supervisor.go:debug \
//	        -log-backtrace-at exec.go:61 -mount /data=unix:/tmp/b.sock -- cat /data/f
//
// Filters live in package state so a long running server could change them
// at runtime.
//
// Loggers are configured with options:
//
//	writer := log.SynchronizedWriter(log.MultiWriter(os.Stderr,
//		log.LogRotationWriter("/logs", 50<<20)))
//	logger := log.New(log.Writer(writer), log.Flags(log.Lmode|log.Ltime|log.Lshortfile))
//	logger.With("pid 4242").Info("hello, world")
package log
