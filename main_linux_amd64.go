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

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mountbox/mountbox/doc"
	"github.com/mountbox/mountbox/pkg/cli"

	backendserver "github.com/mountbox/mountbox/cmd/backend-server"
	"github.com/mountbox/mountbox/cmd/run"
	storeimport "github.com/mountbox/mountbox/cmd/store-import"
)

func main() {
	// We aggregate all the top-level commands (i.e. 'mountbox <command> ...')
	// as needed.
	var commands cli.Commands

	commands = append(commands, run.RunCmd)
	commands = append(commands, backendserver.BackendServerCmd)
	commands = append(commands, storeimport.StoreImportCmd)

	// Documentation pseudo-commands.
	commands = append(commands, doc.ArchitectureCmd)
	commands = append(commands, doc.WireProtocolCmd)

	abstract := "Mountbox runs a program with remote file trees mounted into its view."
	if err := cli.Process(abstract, commands); err != nil {
		var exit *cli.ExitError
		if !errors.As(err, &exit) {
			fmt.Fprintf(os.Stderr, "mountbox: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
