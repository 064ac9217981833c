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

//go:build linux && amd64

package run

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/mountbox/mountbox/pkg/channel"
	"github.com/mountbox/mountbox/pkg/cli"
	"github.com/mountbox/mountbox/pkg/log"
	"github.com/mountbox/mountbox/pkg/supervisor"
	"github.com/mountbox/mountbox/pkg/vfd"
	"golang.org/x/sys/unix"
)

// execFD is where the tracee inherits the exec memfd: the first entry of
// exec.Cmd.ExtraFiles.
const execFD = 3

var RunCmd = &cli.Command{
	Run:       runCmdRun,
	UsageLine: "run [-mount DIR=ADDR]... [-cwd dir] [-fd-floor n] [--] command [args...]",
	Short:     "run a program with backends mounted into its view",
	Long: `
Run starts command under the supervisor. Every -mount binds an absolute
directory to a backend address; the program's open, read, close, stat,
fstat, lstat, statx, getcwd and execve calls on paths under that directory
are answered by the backend instead of the kernel. Everything else goes to
the kernel untouched.

Backend addresses take the forms:

    unix:/path/to/socket        length-prefixed frames over a stream socket
    unixpacket:/path/to/socket  one frame per seqpacket datagram
    tcp:host:port               length-prefixed frames over TCP
    grpc:host:port              the mountbox.Backend gRPC service

The program's exit status becomes run's exit status; a program killed by a
signal exits with 128 plus the signal number.

Example:

    mountbox run -mount /data=unix:/tmp/backend.sock -- cat /data/file.txt
    `,
}

func runCmdRun(cmd *cli.Command, args []string) error {
	var (
		mounts  mountFlags
		cwd     string
		fdFloor int
		noExec  bool

		logFlags log.CommandFlags
	)
	cmd.FlagSet.Var(&mounts, "mount",
		"Mount a backend as DIR=ADDR (repeatable)")
	cmd.FlagSet.StringVar(&cwd, "cwd", "",
		"Working directory the program starts in (default: the current one)")
	cmd.FlagSet.IntVar(&fdFloor, "fd-floor", 512,
		"Lowest descriptor number handed out for backend files")
	cmd.FlagSet.BoolVar(&noExec, "no-exec", false,
		"Let the kernel handle execve of backend files")
	logFlags.Register(&cmd.FlagSet)

	if err := cmd.FlagSet.Parse(args); err != nil {
		return cli.CmdParseError(err)
	}
	argv := cmd.FlagSet.Args()
	if len(argv) == 0 {
		return cli.CmdParseError(errors.New("no command given"))
	}
	logger := logFlags.Logger()

	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		cwd = wd
	}

	reg, err := mounts.registry(channel.Dial)
	if err != nil {
		return err
	}
	defer reg.Close()
	for _, m := range reg.Mounts() {
		logger.Infof("mounted %v", m)
	}

	status, err := supervise(logger, supervisor.Config{
		Mounts:   reg,
		Cwd:      cwd,
		Reserver: vfd.DevNull{Floor: fdFloor},
		Logger:   logger,
	}, argv, !noExec)
	if err != nil {
		return err
	}
	if status != 0 {
		return &cli.ExitError{Code: status}
	}
	return nil
}

// supervise starts argv as a tracee and runs the supervisor over it. The
// calling goroutine stays locked to its thread: only the thread that
// started the tracee may trace it.
func supervise(logger *log.Logger, cfg supervisor.Config, argv []string, withExec bool) (int, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	c := exec.Command(argv[0], argv[1:]...)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	c.SysProcAttr = &syscall.SysProcAttr{Ptrace: true}
	if fi, err := os.Stat(cfg.Cwd); err == nil && fi.IsDir() {
		c.Dir = cfg.Cwd
	} else {
		logger.Warnf("%s isn't a local directory; the kernel's view of the working directory is unchanged", cfg.Cwd)
	}

	if withExec {
		fd, err := unix.MemfdCreate("mountbox-exec", unix.MFD_CLOEXEC)
		if err != nil {
			return -1, fmt.Errorf("creating exec image file: %w", err)
		}
		execFile := os.NewFile(uintptr(fd), "mountbox-exec")
		defer execFile.Close()
		c.ExtraFiles = []*os.File{execFile}
		cfg.ExecFile, cfg.ExecFD = execFile, execFD
	}

	// Terminal signals reach the whole process group. The tracee decides
	// what they mean; the supervisor stays around to report its status.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGQUIT)
	go func() {
		for sig := range sigs {
			logger.Infof("received %v", sig)
		}
	}()
	defer func() {
		signal.Stop(sigs)
		close(sigs)
	}()

	if err := c.Start(); err != nil {
		return -1, fmt.Errorf("starting %s: %w", argv[0], err)
	}
	cfg.Pid = c.Process.Pid
	logger.Infof("started %s as pid %d", argv[0], cfg.Pid)

	// The supervisor reaps the tracee itself; c.Wait is never called.
	return supervisor.New(cfg).Run()
}
