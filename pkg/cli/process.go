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

package cli

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"
)

// Process is the entry point for CLI commands. User provided arguments are captured and processed
// through the defined commands, and the appropriate one (if any), is executed.
// There's no root level command or flags; when <program> is invoked without any arguments, the
// full usage is printed out instead.
//
// All CLI errors are printed out to os.Stderr and follow with os.Exit(2). Command execution errors
// are propagated to the caller. All remaining printed output is directed at os.Stdout.
//
// The abstract is used in generating structured help messages. Example:
//
//      $ <program> -h
//      <abstract>
//
//      Usage of <program>:
//          ...
//
func Process(abstract string, commands Commands) error {
	// The program name is printed as invoked, relative paths included.
	program, args := os.Args[0], os.Args[1:]

	p := processor{program: program, abstract: abstract, stdout: os.Stdout, stderr: os.Stderr}
	err := p.process(args, commands)
	var ue *usageError
	if errors.As(err, &ue) {
		os.Exit(2)
	}
	return err
}

// usageError is returned once the usage problem has been reported to stderr.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

type processor struct {
	program, abstract string
	stdout, stderr    io.Writer
}

func (p *processor) process(args []string, commands Commands) error {
	// FlagSet outputs are discarded for composability with the rest of this package.
	for _, cmd := range commands {
		cmd.FlagSet.SetOutput(ioutil.Discard)
	}

	// We fall back to printing out default usage when no commands are provided.
	if len(args) == 0 {
		printFullUsage(p.stdout, p.program, p.abstract, commands)
		return nil
	}

	command := args[0]
	// '<program> help' and '<program> -h' both print out default usage.
	if (command == "help" || command == "-h") && len(args) == 1 {
		printFullUsage(p.stdout, p.program, p.abstract, commands)
		return nil
	}

	// If '<program> help cmd' is used, we ensure there's only one command provided.
	if command == "help" && len(args) > 2 {
		fmt.Fprintf(p.stderr, "Usage: %s help [command]\n", p.program)
		fmt.Fprintln(p.stderr)
		fmt.Fprintln(p.stderr, "Too many arguments given.")
		return &usageError{"too many arguments to help"}
	}

	// '<program> help' should also work with every other command (i.e. '<program> help cmd').
	if command == "help" && len(args) == 2 {
		cmd := args[1]
		if err := printCommandUsage(p.stdout, p.program, cmd, commands); err != nil {
			fmt.Fprintf(p.stderr, "Unknown help topic '%s'\n", cmd)
			fmt.Fprintln(p.stderr)
			fmt.Fprintf(p.stderr, "Run '%s help' for available topics.\n", p.program)
			return &usageError{"unknown help topic " + cmd}
		}
		return nil
	}

	// A non-help command is executed, we look to find the one provided and if runnable, we run it.
	for _, cmd := range commands {
		if cmd.Name() != command || !cmd.Runnable() {
			continue
		}

		err := cmd.Run(cmd, args[1:])
		var pe *cmdParseError
		if !errors.As(err, &pe) {
			return err
		}

		// The flag package reports -h as an error; it's a valid request for help. We check
		// after cmd.Run as the flags may have been defined there.
		if strings.Contains(pe.Error(), "help requested") {
			printCommandHelp(p.stdout, p.program, cmd)
			return nil
		}

		printCommandParsingError(p.stderr, p.program, cmd, pe)
		return &usageError{pe.Error()}
	}

	fmt.Fprintf(p.stderr, "Unknown command '%s'\n", command)
	fmt.Fprintln(p.stderr)
	fmt.Fprintf(p.stderr, "Run '%s help' for available commands.\n", p.program)
	return &usageError{"unknown command " + command}
}
