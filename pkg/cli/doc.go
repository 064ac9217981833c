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

// Package cli allows the construction of structured command-line interfaces with sub-commands and
// help topics. This is very similar to the interface in git where the top-level program name (git)
// is preceded by a qualifier that determines what sub-command to execute
// (git {reflog,commit,cherry-pick}).
//
// Package cli explicitly avoids init time global hooks.
//
// Example (from mountbox):
//
//	var commands cli.Commands
//	commands = append(commands, run.RunCmd)
//	commands = append(commands, backendserver.BackendServerCmd)
//	commands = append(commands, doc.ArchitectureCmd)
//
//	abstract := "Mountbox runs a program with remote file systems mounted into its view."
//	if err := cli.Process(abstract, commands); err != nil {
//		os.Exit(cli.ExitCode(err))
//	}
//
// This generates the following top-level behaviour:
//
//	$ mountbox {,-h,help}
//	Mountbox runs a program with remote file systems mounted into its view.
//
//	Usage:
//
//	    mountbox command [arguments]
//
//	The commands are:
//
//	        run                    run a program under the supervisor
//	        backend-server         serve a file store to supervisors
//
//	Use 'mountbox help [command]' for more information about a command.
//
//	Additional help topics:
//
//	        architecture           mountbox system architecture overview
//
//	Use "mountbox help [topic]" for more information about that topic.
//
// Individual commands also have their own '-h' switches for additional command details.
//
// Commands report flag parsing failures by returning CmdParseError(err); the usage is then printed
// and the program exits with status 2. A command that wants a specific exit status returns an
// *ExitError.
package cli
