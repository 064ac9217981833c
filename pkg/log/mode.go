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
	"fmt"
	"strings"
)

// Mode is a set of message severities. Loggers tag each message with a
// single mode; filters hold any combination.
type Mode int

const (
	InfoMode Mode = 1 << iota
	WarnMode
	ErrorMode
	FatalMode
	DebugMode

	// DisabledMode is the empty set, so (lmode&gmode) != DisabledMode checks
	// whether lmode passes gmode.
	DisabledMode = 0
	DefaultMode  = InfoMode | WarnMode | ErrorMode
)

var modeNames = []struct {
	m    Mode
	name string
}{
	{InfoMode, "info"},
	{WarnMode, "warn"},
	{ErrorMode, "error"},
	{DebugMode, "debug"},
}

func (m Mode) byte() byte {
	switch m {
	case InfoMode:
		return 'I'
	case WarnMode:
		return 'W'
	case ErrorMode:
		return 'E'
	case FatalMode:
		return 'F'
	case DebugMode:
		return 'D'
	}
	return '?'
}

// String renders m the way ParseMode reads it, e.g. "info|warn".
func (m Mode) String() string {
	if m == DisabledMode {
		return "disabled"
	}
	var names []string
	for _, mn := range modeNames {
		if m&mn.m != DisabledMode {
			names = append(names, mn.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseMode reads a '|'-separated list of info, warn, error and debug, or
// the single word disabled.
func ParseMode(value string) (Mode, error) {
	if value == "disabled" {
		return DisabledMode, nil
	}
	var m Mode
	for _, name := range strings.Split(value, "|") {
		found := false
		for _, mn := range modeNames {
			if mn.name == name {
				m |= mn.m
				found = true
			}
		}
		if !found {
			return DisabledMode, fmt.Errorf("unrecognized log mode %q", name)
		}
	}
	return m, nil
}
