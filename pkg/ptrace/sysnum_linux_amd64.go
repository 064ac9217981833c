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

// Syscall numbers of interest to the supervisor.
const (
	SysRead      = unix.SYS_READ
	SysOpen      = unix.SYS_OPEN
	SysClose     = unix.SYS_CLOSE
	SysStat      = unix.SYS_STAT
	SysFstat     = unix.SYS_FSTAT
	SysLstat     = unix.SYS_LSTAT
	SysExecve    = unix.SYS_EXECVE
	SysGetcwd    = unix.SYS_GETCWD
	SysOpenat    = unix.SYS_OPENAT
	SysExecveat  = unix.SYS_EXECVEAT
	SysStatx     = unix.SYS_STATX
	SysExit      = unix.SYS_EXIT
	SysExitGroup = unix.SYS_EXIT_GROUP
)

var syscallNames = map[int64]string{
	SysRead:      "read",
	SysOpen:      "open",
	SysClose:     "close",
	SysStat:      "stat",
	SysFstat:     "fstat",
	SysLstat:     "lstat",
	SysExecve:    "execve",
	SysGetcwd:    "getcwd",
	SysOpenat:    "openat",
	SysExecveat:  "execveat",
	SysStatx:     "statx",
	SysExit:      "exit",
	SysExitGroup: "exit_group",
}

// SyscallName returns a printable name for nr.
func SyscallName(nr int64) string {
	if name, ok := syscallNames[nr]; ok {
		return name
	}
	return fmt.Sprintf("syscall(%d)", nr)
}
