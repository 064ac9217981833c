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

package log

import (
	"sync"
	"sync/atomic"
)

// Global filtering state. Reads happen on every logging statement and are
// lock free; writers copy the map under a mutex and swap it in.
var gstate struct {
	gmode atomic.Value // Mode

	mu          sync.Mutex
	tracePoints atomic.Value // map[string]struct{}
	fileModes   atomic.Value // map[string]Mode
}

func init() {
	gstate.gmode.Store(DefaultMode)
	gstate.tracePoints.Store(map[string]struct{}{})
	gstate.fileModes.Store(map[string]Mode{})
}

// SetGlobalLogMode sets the modes logged by files without an override.
func SetGlobalLogMode(m Mode) {
	gstate.gmode.Store(m)
}

func GetGlobalLogMode() Mode {
	return gstate.gmode.Load().(Mode)
}

func updateTracePoints(f func(map[string]struct{})) {
	gstate.mu.Lock()
	defer gstate.mu.Unlock()

	cur := gstate.tracePoints.Load().(map[string]struct{})
	next := make(map[string]struct{}, len(cur)+1)
	for tp := range cur {
		next[tp] = struct{}{}
	}
	f(next)
	gstate.tracePoints.Store(next)
}

func updateFileModes(f func(map[string]Mode)) {
	gstate.mu.Lock()
	defer gstate.mu.Unlock()

	cur := gstate.fileModes.Load().(map[string]Mode)
	next := make(map[string]Mode, len(cur)+1)
	for fname, m := range cur {
		next[fname] = m
	}
	f(next)
	gstate.fileModes.Store(next)
}

// SetTracePoint enables a tracepoint, a logging statement named by
// file.go:line. Executing it emits a backtrace whatever its mode.
func SetTracePoint(tp string) {
	updateTracePoints(func(m map[string]struct{}) { m[tp] = struct{}{} })
}

// ResetTracePoint disables a tracepoint set by SetTracePoint.
func ResetTracePoint(tp string) {
	updateTracePoints(func(m map[string]struct{}) { delete(m, tp) })
}

func GetTracePoint(tp string) bool {
	_, ok := gstate.tracePoints.Load().(map[string]struct{})[tp]
	return ok
}

// SetFileLogMode overrides the global mode for statements in fname, a base
// file name like supervisor.go.
func SetFileLogMode(fname string, m Mode) {
	updateFileModes(func(fm map[string]Mode) { fm[fname] = m })
}

func GetFileLogMode(fname string) (Mode, bool) {
	m, ok := gstate.fileModes.Load().(map[string]Mode)[fname]
	return m, ok
}

// ResetFileLogMode removes the override set by SetFileLogMode.
func ResetFileLogMode(fname string) {
	updateFileModes(func(fm map[string]Mode) { delete(fm, fname) })
}
