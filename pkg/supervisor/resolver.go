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

package supervisor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mountbox/mountbox/pkg/vfd"
	"golang.org/x/sys/unix"
)

var (
	// errVirtualDirfd is returned for a relative path under a virtual
	// descriptor; backends have no directory handles.
	errVirtualDirfd = errors.New("relative to a virtual descriptor")
	errUnresolvable = errors.New("unresolvable path")
)

// resolver turns the (dirfd, path) pair of a syscall into an absolute path.
type resolver struct {
	pid      int
	cwd      string
	table    *vfd.Table
	readlink func(string) (string, error)
}

func newResolver(pid int, cwd string, table *vfd.Table) *resolver {
	return &resolver{pid: pid, cwd: cwd, table: table, readlink: os.Readlink}
}

// resolve returns path made absolute. Absolute paths ignore dirfd; relative
// ones are joined to the cwd for AT_FDCWD and otherwise to the target of a
// real descriptor as seen through /proc.
func (r *resolver) resolve(dirfd int, path string) (string, error) {
	if path == "" {
		return "", errUnresolvable
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if dirfd == unix.AT_FDCWD {
		return filepath.Join(r.cwd, path), nil
	}
	if _, ok := r.table.Lookup(dirfd); ok {
		return "", errVirtualDirfd
	}

	dir, err := r.readlink(fmt.Sprintf("/proc/%d/fd/%d", r.pid, dirfd))
	if err != nil || !filepath.IsAbs(dir) {
		// Sockets, pipes and closed descriptors.
		return "", errUnresolvable
	}
	return filepath.Join(dir, path), nil
}
