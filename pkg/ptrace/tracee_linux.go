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

package ptrace

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"
)

// Options set on every tracee: syscall stops are marked with 0x80 so they
// can't be confused with a real SIGTRAP, exec events are reported instead of
// a bare SIGTRAP, and the tracee dies with its tracer.
const Options = unix.PTRACE_O_TRACESYSGOOD | unix.PTRACE_O_TRACEEXEC | unix.PTRACE_O_EXITKILL

type StopKind int

const (
	// Exited means the tracee is gone; ExitStatus holds its status.
	Exited StopKind = iota
	// Killed means the tracee was terminated by Signal.
	Killed
	// SyscallStop is a syscall entry or exit stop.
	SyscallStop
	// SignalStop is a signal-delivery stop; Signal is pending delivery.
	SignalStop
	// EventStop is a PTRACE_EVENT stop; Event holds the event.
	EventStop
)

// Stop describes why the tracee last stopped.
type Stop struct {
	Kind       StopKind
	ExitStatus int
	Signal     unix.Signal
	Event      int
}

func (s Stop) String() string {
	switch s.Kind {
	case Exited:
		return fmt.Sprintf("exited(%d)", s.ExitStatus)
	case Killed:
		return fmt.Sprintf("killed(%v)", s.Signal)
	case SyscallStop:
		return "syscall-stop"
	case SignalStop:
		return fmt.Sprintf("signal-stop(%v)", s.Signal)
	case EventStop:
		return fmt.Sprintf("event-stop(%d)", s.Event)
	}
	return "unknown-stop"
}

// Tracee is a process traced by the calling thread.
type Tracee struct {
	pid int
}

var _ WordAccessor = &Tracee{}

// NewTracee wraps a process that is already traced by this thread, e.g. one
// started with SysProcAttr.Ptrace.
func NewTracee(pid int) *Tracee {
	return &Tracee{pid: pid}
}

func (t *Tracee) Pid() int {
	return t.pid
}

// SetOptions applies Options. Call it once, at the first stop.
func (t *Tracee) SetOptions() error {
	return unix.PtraceSetOptions(t.pid, Options)
}

// Wait blocks until the tracee changes state and classifies the change.
func (t *Tracee) Wait() (Stop, error) {
	var ws unix.WaitStatus
	for {
		_, err := unix.Wait4(t.pid, &ws, unix.WALL, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return Stop{}, err
		}
		break
	}
	return classify(ws), nil
}

func classify(ws unix.WaitStatus) Stop {
	switch {
	case ws.Exited():
		return Stop{Kind: Exited, ExitStatus: ws.ExitStatus()}
	case ws.Signaled():
		return Stop{Kind: Killed, Signal: ws.Signal()}
	}

	sig := ws.StopSignal()
	switch {
	case sig == unix.SIGTRAP|0x80:
		return Stop{Kind: SyscallStop}
	case sig == unix.SIGTRAP && ws.TrapCause() > 0:
		return Stop{Kind: EventStop, Event: ws.TrapCause()}
	}
	return Stop{Kind: SignalStop, Signal: sig}
}

// Resume continues the tracee until the next syscall entry or exit,
// delivering sig if non-zero.
func (t *Tracee) Resume(sig unix.Signal) error {
	return unix.PtraceSyscall(t.pid, int(sig))
}

func (t *Tracee) Regs() (*Regs, error) {
	r := &Regs{}
	if err := unix.PtraceGetRegs(t.pid, &r.raw); err != nil {
		return nil, err
	}
	return r, nil
}

func (t *Tracee) SetRegs(r *Regs) error {
	return unix.PtraceSetRegs(t.pid, &r.raw)
}

func (t *Tracee) PeekWord(addr uintptr) (uint64, error) {
	var buf [WordSize]byte
	n, err := unix.PtracePeekData(t.pid, addr, buf[:])
	if err != nil {
		return 0, err
	}
	if n != WordSize {
		return 0, unix.EFAULT
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func (t *Tracee) PokeWord(addr uintptr, word uint64) error {
	var buf [WordSize]byte
	binary.LittleEndian.PutUint64(buf[:], word)
	n, err := unix.PtracePokeData(t.pid, addr, buf[:])
	if err != nil {
		return err
	}
	if n != WordSize {
		return unix.EFAULT
	}
	return nil
}

// Memory returns a bridge into the tracee's address space.
func (t *Tracee) Memory() *Memory {
	return NewMemory(t)
}

// Kill sends SIGKILL and reaps the tracee.
func (t *Tracee) Kill() error {
	if err := unix.Kill(t.pid, unix.SIGKILL); err != nil && err != unix.ESRCH {
		return err
	}
	for {
		stop, err := t.Wait()
		if err != nil {
			if err == unix.ECHILD {
				return nil
			}
			return err
		}
		if stop.Kind == Exited || stop.Kind == Killed {
			return nil
		}
	}
}
