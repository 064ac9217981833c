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
	"fmt"

	"golang.org/x/sys/unix"
)

// Regs is a snapshot of the tracee's register file, addressed by the role a
// register plays in the syscall ABI rather than by name. It is read once per
// stop, edited locally and written back before resuming.
type Regs struct {
	raw unix.PtraceRegs
}

// Syscall returns the syscall number of the current stop.
func (r *Regs) Syscall() int64 {
	return int64(r.raw.Orig_rax)
}

// SetSyscall replaces the syscall about to run; -1 makes the kernel skip it
// and fail with ENOSYS.
func (r *Regs) SetSyscall(nr int64) {
	r.raw.Orig_rax = uint64(nr)
}

// Arg returns syscall argument i, 0 through 5.
func (r *Regs) Arg(i int) uint64 {
	switch i {
	case 0:
		return r.raw.Rdi
	case 1:
		return r.raw.Rsi
	case 2:
		return r.raw.Rdx
	case 3:
		return r.raw.R10
	case 4:
		return r.raw.R8
	case 5:
		return r.raw.R9
	}
	panic(fmt.Sprintf("ptrace: syscall argument %d out of range", i))
}

func (r *Regs) SetArg(i int, v uint64) {
	switch i {
	case 0:
		r.raw.Rdi = v
	case 1:
		r.raw.Rsi = v
	case 2:
		r.raw.Rdx = v
	case 3:
		r.raw.R10 = v
	case 4:
		r.raw.R8 = v
	case 5:
		r.raw.R9 = v
	default:
		panic(fmt.Sprintf("ptrace: syscall argument %d out of range", i))
	}
}

// Return is the syscall's return value; only meaningful at an exit stop.
func (r *Regs) Return() int64 {
	return int64(r.raw.Rax)
}

func (r *Regs) SetReturn(v int64) {
	r.raw.Rax = uint64(v)
}
