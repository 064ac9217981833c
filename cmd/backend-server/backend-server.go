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

package backendserver

import (
	"fmt"

	"github.com/mountbox/mountbox/pkg/backend"
	"github.com/mountbox/mountbox/pkg/cli"
	"github.com/mountbox/mountbox/pkg/log"
	drive "google.golang.org/api/drive/v3"
)

var BackendServerCmd = &cli.Command{
	Run:       backendServerCmdRun,
	UsageLine: "backend-server [-store dir|mem|bolt|drive] [-ip ip] [-port port] [-unix path] [-unixpacket path]",
	Short:     "serve a file store to supervisors",
	Long: `
Backend server answers the mountbox wire protocol from a read-only file store.

The TCP port accepts three kinds of connection: gRPC (supervisors mounting
grpc:host:port), grpc-web over HTTP/1 (browsers and curl) and raw
length-prefixed frames (supervisors mounting tcp:host:port). With -unix and
-unixpacket the server also listens on stream and seqpacket unix sockets.

Stores:

    dir    the local directory -dir, read on every open
    mem    a snapshot of -dir taken at startup
    bolt   the bolt database -db, filled using 'store-import'
    drive  the Google Drive folder -drive-root, read-only

Every connection (or gRPC session) has its own table of open files.
    `,
}

func backendServerCmdRun(cmd *cli.Command, args []string) error {
	var (
		opts Options

		storeKind        string
		dir              string
		dbPath           string
		driveCredentials string
		driveToken       string
		driveRoot        string

		logFlags log.CommandFlags
	)
	cmd.FlagSet.StringVar(&opts.IP, "ip", "127.0.0.1", "IP on which the server will run on")
	cmd.FlagSet.IntVar(&opts.Port, "port", 10770, "Port which the server will run on (-1 disables TCP)")
	cmd.FlagSet.StringVar(&opts.Unix, "unix", "", "Also serve frames on a unix stream socket at this path")
	cmd.FlagSet.StringVar(&opts.UnixPacket, "unixpacket", "", "Also serve frames on a unix seqpacket socket at this path")

	cmd.FlagSet.StringVar(&storeKind, "store", "dir", "Store to serve: dir, mem, bolt or drive")
	cmd.FlagSet.StringVar(&dir, "dir", ".", "Directory served by the dir and mem stores")
	cmd.FlagSet.StringVar(&dbPath, "db", "mountbox.db", "Database served by the bolt store")
	cmd.FlagSet.StringVar(&driveCredentials, "drive-credentials", "credentials.json",
		"OAuth client credentials for the drive store")
	cmd.FlagSet.StringVar(&driveToken, "drive-token", "token.json",
		"Cached OAuth token for the drive store")
	cmd.FlagSet.StringVar(&driveRoot, "drive-root", "root", "Drive folder id served by the drive store")
	logFlags.Register(&cmd.FlagSet)

	if err := cmd.FlagSet.Parse(args); err != nil {
		return cli.CmdParseError(err)
	}
	logger := logFlags.Logger()

	var store backend.Store
	switch storeKind {
	case "dir":
		store = backend.DirStore{Root: dir}
	case "mem":
		mem := backend.NewMemStore()
		n, err := backend.Import(logger, mem, dir)
		if err != nil {
			return err
		}
		logger.Infof("loaded %d files from %s", n, dir)
		store = mem
	case "bolt":
		b, err := backend.OpenBoltStore(dbPath)
		if err != nil {
			return err
		}
		defer b.Close()
		store = b
	case "drive":
		client, err := backend.DriveClient(logger, driveCredentials, driveToken)
		if err != nil {
			return err
		}
		svc, err := drive.New(client)
		if err != nil {
			return fmt.Errorf("unable to create drive client: %w", err)
		}
		store = backend.NewDriveStore(svc, driveRoot)
	default:
		return cli.CmdParseError(fmt.Errorf("unknown store %q", storeKind))
	}

	_, wait, shutdown, err := Start(logger, store, opts)
	if err != nil {
		return err
	}

	wait()
	shutdown()

	return nil
}
