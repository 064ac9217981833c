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

// Package supervisor runs the trace loop that redirects a process's file
// operations under mounted prefixes to backends.
//
// The loop stops the tracee at every syscall entry and exit. At an entry
// stop an intercepted call is classified, resolved to a mount, and answered
// by a backend round trip; the call is then neutralised by replacing its
// number with -1 and, at the matching exit stop, the computed result is
// written to the return register. To the tracee the call simply returned.
//
// execve is the one exception: the backend file is copied into a memfd the
// tracee inherited and the call is rewritten into execveat on that memfd,
// then allowed to run.
package supervisor

import (
	"errors"
	"fmt"
	"os"

	"github.com/mountbox/mountbox/pkg/log"
	"github.com/mountbox/mountbox/pkg/mount"
	"github.com/mountbox/mountbox/pkg/protocol"
	"github.com/mountbox/mountbox/pkg/ptrace"
	"github.com/mountbox/mountbox/pkg/vfd"
	"golang.org/x/sys/unix"
)

// Config describes one supervised process.
type Config struct {
	// Pid is a process started with PTRACE_TRACEME by the calling thread
	// (SysProcAttr.Ptrace) that has not been waited on yet.
	Pid int
	// Mounts routes paths to backends. The caller keeps ownership and
	// closes it after Run returns.
	Mounts *mount.Registry
	// Cwd is the tracee's working directory at startup. The tracee's own
	// chdir calls are not observed.
	Cwd string
	// ExecFile is a memfd the tracee inherited as descriptor ExecFD. When
	// nil, execve of backend files is passed through to the kernel.
	ExecFile *os.File
	ExecFD   int
	// Reserver allocates virtual descriptor numbers; vfd.DevNull{} if nil.
	Reserver vfd.Reserver
	Logger   *log.Logger
}

// Supervisor drives a single tracee. It must be created and run on the OS
// thread that started the tracee.
type Supervisor struct {
	cfg      Config
	logger   *log.Logger
	tracee   *ptrace.Tracee
	mem      *ptrace.Memory
	table    *vfd.Table
	resolver *resolver
	clients  map[*mount.Mount]*protocol.Client
	handlers map[int64]handler

	inSyscall bool
	pending   *int64
}

func New(cfg Config) *Supervisor {
	tracee := ptrace.NewTracee(cfg.Pid)
	s := newSupervisor(cfg, tracee)
	s.tracee = tracee
	return s
}

func newSupervisor(cfg Config, words ptrace.WordAccessor) *Supervisor {
	if cfg.Reserver == nil {
		cfg.Reserver = vfd.DevNull{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Discarder()
	}
	if cfg.Cwd == "" {
		cfg.Cwd = "/"
	}
	if cfg.Mounts == nil {
		cfg.Mounts, _ = mount.New()
	}

	table := vfd.NewTable(cfg.Reserver)
	s := &Supervisor{
		cfg:      cfg,
		logger:   cfg.Logger.With(fmt.Sprintf("pid %d", cfg.Pid)),
		mem:      ptrace.NewMemory(words),
		table:    table,
		resolver: newResolver(cfg.Pid, cfg.Cwd, table),
		clients:  make(map[*mount.Mount]*protocol.Client),
		handlers: handlers(),
	}
	for _, m := range cfg.Mounts.Mounts() {
		s.clients[m] = protocol.NewClient(m.Channel)
	}
	return s
}

// Run traces the process until it exits and returns its exit status; a
// tracee killed by a signal reports 128 plus the signal number. A failure
// of ptrace or of a backend channel kills the tracee and is returned.
func (s *Supervisor) Run() (int, error) {
	defer s.table.Close()

	// The tracee stops with SIGTRAP once its initial exec completes.
	stop, err := s.tracee.Wait()
	if err != nil {
		return -1, fmt.Errorf("waiting for tracee %d: %w", s.cfg.Pid, err)
	}
	if status, done := exitStatus(stop); done {
		return status, nil
	}
	if err := s.tracee.SetOptions(); err != nil {
		s.tracee.Kill()
		return -1, fmt.Errorf("setting ptrace options: %w", err)
	}
	s.logger.Infof("tracing with cwd %s and %d mount(s)", s.cfg.Cwd, s.cfg.Mounts.Len())

	var sig unix.Signal
	for {
		if err := s.tracee.Resume(sig); err != nil && err != unix.ESRCH {
			s.tracee.Kill()
			return -1, fmt.Errorf("resuming tracee: %w", err)
		}

		stop, err := s.tracee.Wait()
		if err != nil {
			return -1, fmt.Errorf("lost tracee %d: %w", s.cfg.Pid, err)
		}
		if status, done := exitStatus(stop); done {
			s.logger.Infof("finished: %v", stop)
			return status, nil
		}

		sig = 0
		switch stop.Kind {
		case ptrace.SignalStop:
			sig = stop.Signal
		case ptrace.EventStop:
			s.logger.Debugf("absorbed %v", stop)
		case ptrace.SyscallStop:
			if err := s.syscallStop(); err != nil {
				s.logger.Errorf("killing tracee: %v", err)
				s.tracee.Kill()
				return -1, err
			}
		}
	}
}

func exitStatus(stop ptrace.Stop) (int, bool) {
	switch stop.Kind {
	case ptrace.Exited:
		return stop.ExitStatus, true
	case ptrace.Killed:
		return 128 + int(stop.Signal), true
	}
	return 0, false
}

// syscallStop alternates between entry and exit; a forged result is only
// ever pending between the two.
func (s *Supervisor) syscallStop() error {
	regs, err := s.tracee.Regs()
	if err != nil {
		return err
	}

	s.inSyscall = !s.inSyscall
	if !s.inSyscall {
		if s.pending == nil {
			return nil
		}
		regs.SetReturn(*s.pending)
		s.pending = nil
		return s.tracee.SetRegs(regs)
	}

	out, err := s.dispatch(regs)
	if err != nil {
		return err
	}
	switch out.kind {
	case forged:
		regs.SetSyscall(-1)
		ret := out.ret
		s.pending = &ret
		return s.tracee.SetRegs(regs)
	case rewritten:
		return s.tracee.SetRegs(regs)
	}
	return nil
}

// dispatch classifies the call in regs and, if it is intercepted and
// routed to a mount, performs it. regs may be edited for rewritten calls.
func (s *Supervisor) dispatch(regs *ptrace.Regs) (outcome, error) {
	nr := regs.Syscall()
	h, ok := s.handlers[nr]
	if !ok {
		return passThrough(), nil
	}

	c := &call{nr: nr, regs: regs}
	if dirfd, addr, ok := h.NeedsPath(regs); ok {
		path, err := s.mem.ReadString(addr, ptrace.PathMax)
		if err != nil {
			if !memFault(err) && !errors.Is(err, ptrace.ErrNameTooLong) {
				return outcome{}, fmt.Errorf("%s: reading path: %w", ptrace.SyscallName(nr), err)
			}
			// A bad path pointer is not a trace failure: the kernel
			// fails the call with EFAULT or ENAMETOOLONG itself.
			s.logger.Debugf("%s: unreadable path: %v", ptrace.SyscallName(nr), err)
			return passThrough(), nil
		}
		c.rawPath, c.pathAddr = path, addr

		if ep, ok := h.(emptyPather); ok && path == "" && ep.EmptyPath(regs) {
			hd, ok := s.table.Lookup(dirfd)
			if !ok {
				return passThrough(), nil
			}
			c.handle, c.mount = hd, hd.Mount
		} else {
			abs, err := s.resolver.resolve(dirfd, path)
			if errors.Is(err, errVirtualDirfd) {
				s.logger.Debugf("%s(%d, %q): virtual dirfd", ptrace.SyscallName(nr), dirfd, path)
				return forge(-int64(unix.ENOTDIR)), nil
			}
			if err != nil {
				return passThrough(), nil
			}
			m, rel, ok := s.cfg.Mounts.Lookup(abs)
			if !ok {
				return passThrough(), nil
			}
			c.mount, c.path = m, rel
		}
	}
	if fd, ok := h.NeedsHandle(regs); ok {
		hd, ok := s.table.Lookup(fd)
		if !ok {
			return passThrough(), nil
		}
		c.handle, c.mount = hd, hd.Mount
	}
	if c.mount != nil {
		c.client = s.clients[c.mount]
	}

	out, err := h.Handle(s, c)
	if err != nil {
		return outcome{}, fmt.Errorf("%s(%s): %w", ptrace.SyscallName(nr), c, err)
	}
	s.logger.Debugf("%s(%s) -> %v", ptrace.SyscallName(nr), c, out)
	return out, nil
}

// result maps an operation error to a forged return value. Backend errnos
// are returned as is and malformed responses as EACCES; anything else is a
// channel failure and is passed back as fatal.
// memFault reports whether a tracee memory access failed on the address
// itself. Other failures mean the tracee can no longer be controlled.
func memFault(err error) bool {
	return errors.Is(err, unix.EFAULT) || errors.Is(err, unix.EIO)
}

// faulted answers a call whose result could not be stored in the tracee:
// a bad buffer is the tracee's EFAULT, anything else is fatal.
func faulted(err error) (outcome, error) {
	if memFault(err) {
		return forge(-int64(unix.EFAULT)), nil
	}
	return outcome{}, err
}

// isErrno reports whether err is the backend refusing with errno.
func isErrno(err error, errno unix.Errno) bool {
	var berr *protocol.BackendError
	return errors.As(err, &berr) && berr.Errno == errno
}

func result(err error) (outcome, error) {
	var berr *protocol.BackendError
	switch {
	case errors.As(err, &berr):
		return forge(-int64(berr.Errno)), nil
	case errors.Is(err, protocol.ErrProtocol):
		return forge(-int64(unix.EACCES)), nil
	}
	return outcome{}, err
}
