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

// Package doc holds the help topics of the mountbox binary.
package doc

import "github.com/mountbox/mountbox/pkg/cli"

var ArchitectureCmd = &cli.Command{
	UsageLine: "architecture",
	Short:     "mountbox system architecture overview",
	Long: `
Mountbox makes an unmodified program see remote file trees under chosen
directories, without kernel modules or mount namespaces. 'mountbox run'
starts the program as a ptrace tracee and stops it at every system call
entry and exit.

At each entry the supervisor looks the call up in a fixed table: open,
openat, close, read, stat, fstat, lstat, statx, getcwd and execve. Path
calls read the path out of the tracee's memory, make it absolute against
the working directory or the directory descriptor, and pick the mount with
the longest prefix owning it. Descriptor calls look the descriptor up in
the virtual descriptor table. Anything unrouted runs in the kernel as is.

Routed calls become a request to the mount's backend: Open, Close, Read,
Stat or Fstat. The kernel is then made to run nothing (the syscall number
is replaced with -1) and at the exit stop the return register is set to
the backend's answer, so the program sees an ordinary result or -errno.
Results with buffers (read, stat, statx) are written into tracee memory
first.

Opening a backend file reserves a real descriptor number in the
supervisor, so numbers never repeat while the handle lives. Use -fd-floor
to keep them clear of the program's own descriptors.

execve of a backend file loads the image into a memfd the tracee inherited
as descriptor 3 and rewrites the call to execveat(3, "", argv, envp,
AT_EMPTY_PATH); scripts work as their interpreter is looked up by the
kernel as usual.

Errors: a backend error is returned as its errno, an undecodable answer as
EACCES, and a broken channel or ptrace failure kills the program and ends
the supervisor with an error.

The supervisor is single threaded: one program, one thread, one request in
flight per backend.
`,
}
