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

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func newCommands(ran *[]string) Commands {
	var verbose bool
	echo := &Command{
		UsageLine: "echo [-v] args...",
		Short:     "echo arguments back",
		Long:      "Echo prints its arguments.",
	}
	echo.Run = func(cmd *Command, args []string) error {
		cmd.FlagSet.BoolVar(&verbose, "v", false, "Verbose output")
		if err := cmd.FlagSet.Parse(args); err != nil {
			return CmdParseError(err)
		}
		*ran = append(*ran, fmt.Sprintf("echo %t %s", verbose, strings.Join(cmd.FlagSet.Args(), " ")))
		return nil
	}
	fail := &Command{
		UsageLine: "fail",
		Short:     "exit with status 3",
		Run: func(cmd *Command, args []string) error {
			return &ExitError{Code: 3}
		},
	}
	topic := &Command{
		UsageLine: "topic",
		Short:     "a help topic",
		Long:      "Topic body.",
	}
	return Commands{echo, fail, topic}
}

func TestProcess(t *testing.T) {
	testCases := []struct {
		args     []string
		ran      string
		stdout   string
		stderr   string
		usageErr bool
		exitCode int
	}{
		{args: nil, stdout: "The commands are:"},
		{args: []string{"help"}, stdout: "Additional help topics:"},
		{args: []string{"help", "echo"}, stdout: "Usage: prog echo [-v] args..."},
		{args: []string{"help", "topic"}, stdout: "Topic: a help topic"},
		{args: []string{"help", "a", "b"}, stderr: "Too many arguments given.", usageErr: true, exitCode: 1},
		{args: []string{"help", "nope"}, stderr: "Unknown help topic 'nope'", usageErr: true, exitCode: 1},
		{args: []string{"echo", "-v", "a", "b"}, ran: "echo true a b"},
		{args: []string{"echo", "-h"}, stdout: "-v\tVerbose output"},
		{args: []string{"echo", "-x"}, stderr: "Flag provided but not defined: -x", usageErr: true, exitCode: 1},
		{args: []string{"fail"}, exitCode: 3},
		{args: []string{"topic"}, stderr: "Unknown command 'topic'", usageErr: true, exitCode: 1},
		{args: []string{"nope"}, stderr: "Unknown command 'nope'", usageErr: true, exitCode: 1},
	}

	for _, tc := range testCases {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			var ran []string
			var stdout, stderr bytes.Buffer
			p := processor{program: "prog", abstract: "Prog does things.", stdout: &stdout, stderr: &stderr}
			err := p.process(tc.args, newCommands(&ran))

			var ue *usageError
			if got := errors.As(err, &ue); got != tc.usageErr {
				t.Fatalf("expected usage error %t, got err=%v", tc.usageErr, err)
			}
			if got := ExitCode(err); got != tc.exitCode {
				t.Errorf("expected exit code %d, got %d", tc.exitCode, got)
			}
			if tc.ran != "" && (len(ran) != 1 || ran[0] != tc.ran) {
				t.Errorf("expected command to run as %q, got %q", tc.ran, ran)
			}
			if !strings.Contains(stdout.String(), tc.stdout) {
				t.Errorf("expected stdout to contain %q, got:\n%s", tc.stdout, stdout.String())
			}
			if !strings.Contains(stderr.String(), tc.stderr) {
				t.Errorf("expected stderr to contain %q, got:\n%s", tc.stderr, stderr.String())
			}
		})
	}
}

func TestCmdParseError(t *testing.T) {
	if CmdParseError(nil) != nil {
		t.Error("expected nil error to stay nil")
	}

	base := errors.New("bad flag")
	err := CmdParseError(base)
	if !errors.Is(err, base) {
		t.Errorf("expected %v to wrap %v", err, base)
	}
	var pe *cmdParseError
	if errors.As(errors.New("other"), &pe) {
		t.Error("plain errors shouldn't be treated as parse errors")
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Errorf("expected 0 for nil, got %d", got)
	}
	if got := ExitCode(errors.New("boom")); got != 1 {
		t.Errorf("expected 1 for plain errors, got %d", got)
	}
	wrapped := fmt.Errorf("run: %w", &ExitError{Code: 42})
	if got := ExitCode(wrapped); got != 42 {
		t.Errorf("expected 42 for wrapped exit error, got %d", got)
	}
}
