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

package storeimport

import (
	"errors"
	"fmt"
	"os"

	"github.com/mountbox/mountbox/pkg/backend"
	"github.com/mountbox/mountbox/pkg/cli"
	"github.com/mountbox/mountbox/pkg/log"
)

var StoreImportCmd = &cli.Command{
	Run:       storeImportCmdRun,
	UsageLine: "store-import [-db path] [-list] dir",
	Short:     "load a directory tree into a bolt store",
	Long: `
Store import copies every regular file below dir into the bolt database
-db, creating it if needed, so that 'backend-server -store bolt' can serve
it. Files already in the database are replaced; nothing is deleted. With
-list the database's files are printed afterwards.
    `,
}

func storeImportCmdRun(cmd *cli.Command, args []string) error {
	var (
		dbPath string
		list   bool

		logFlags log.CommandFlags
	)
	cmd.FlagSet.StringVar(&dbPath, "db", "mountbox.db", "Database to import into")
	cmd.FlagSet.BoolVar(&list, "list", false, "List the database's files after importing")
	logFlags.Register(&cmd.FlagSet)

	if err := cmd.FlagSet.Parse(args); err != nil {
		return cli.CmdParseError(err)
	}
	if cmd.FlagSet.NArg() != 1 {
		return cli.CmdParseError(errors.New("expected exactly one directory"))
	}
	logger := logFlags.Logger()

	n, err := importTree(logger, dbPath, cmd.FlagSet.Arg(0), list)
	if err != nil {
		return err
	}
	logger.Infof("imported %d files into %s", n, dbPath)
	return nil
}

func importTree(logger *log.Logger, dbPath, dir string, list bool) (int, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return 0, err
	}
	if !fi.IsDir() {
		return 0, fmt.Errorf("%s is not a directory", dir)
	}

	db, err := backend.OpenBoltStore(dbPath)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	n, err := backend.Import(logger, db, dir)
	if err != nil {
		return n, err
	}
	if list {
		err = db.Walk(func(path string, size int) error {
			_, err := fmt.Printf("%10d %s\n", size, path)
			return err
		})
	}
	return n, err
}
