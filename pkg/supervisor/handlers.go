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
	"fmt"

	"github.com/mountbox/mountbox/pkg/mount"
	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
	"github.com/mountbox/mountbox/pkg/protocol"
	"github.com/mountbox/mountbox/pkg/ptrace"
	"github.com/mountbox/mountbox/pkg/vfd"
	"golang.org/x/sys/unix"
)

type outcomeKind int

const (
	passed outcomeKind = iota
	forged
	rewritten
)

// outcome is what happens to an intercepted call once its entry stop has
// been handled.
type outcome struct {
	kind outcomeKind
	ret  int64
}

func passThrough() outcome { return outcome{kind: passed} }
func forge(ret int64) outcome { return outcome{kind: forged, ret: ret} }
func rewrite() outcome { return outcome{kind: rewritten} }

func (o outcome) String() string {
	switch o.kind {
	case forged:
		if o.ret < 0 {
			return fmt.Sprintf("%d (%v)", o.ret, unix.Errno(-o.ret))
		}
		return fmt.Sprint(o.ret)
	case rewritten:
		return "rewritten"
	}
	return "passed"
}

// call is an intercepted syscall routed to a mount.
type call struct {
	nr   int64
	regs *ptrace.Regs

	// Set for path-based calls.
	rawPath  string
	pathAddr uintptr
	path     string

	// Set for handle-based calls and AT_EMPTY_PATH forms.
	handle *vfd.Handle

	mount  *mount.Mount
	client *protocol.Client
}

func (c *call) String() string {
	switch {
	case c.handle != nil:
		return fmt.Sprintf("fd %d [%s %s]", c.handle.ID, c.handle.Mount, c.handle.FileID)
	case c.mount != nil:
		return fmt.Sprintf("%q [%s %s]", c.rawPath, c.mount, c.path)
	}
	return ""
}

// handler classifies one syscall number. Calls that are neither routed by
// path nor by handle, like getcwd, are always handled.
type handler interface {
	// NeedsPath reports the directory descriptor and path address of a
	// path-based call.
	NeedsPath(r *ptrace.Regs) (dirfd int, addr uintptr, ok bool)
	// NeedsHandle reports the descriptor of a handle-based call.
	NeedsHandle(r *ptrace.Regs) (fd int, ok bool)
	Handle(s *Supervisor, c *call) (outcome, error)
}

// emptyPather is implemented by path-based calls accepting AT_EMPTY_PATH,
// which operate on the directory descriptor itself when the path is empty.
type emptyPather interface {
	EmptyPath(r *ptrace.Regs) bool
}

func handlers() map[int64]handler {
	return map[int64]handler{
		ptrace.SysOpen:   openHandler{pathArg: 0, flagsArg: 1, dirfdArg: -1},
		ptrace.SysOpenat: openHandler{pathArg: 1, flagsArg: 2, dirfdArg: 0},
		ptrace.SysClose:  closeHandler{},
		ptrace.SysRead:   readHandler{},
		ptrace.SysStat:   statHandler{},
		ptrace.SysLstat:  statHandler{},
		ptrace.SysFstat:  fstatHandler{},
		ptrace.SysStatx:  statxHandler{},
		ptrace.SysGetcwd: getcwdHandler{},
		ptrace.SysExecve: execHandler{},
	}
}

func fdArg(r *ptrace.Regs, i int) int {
	return int(int32(r.Arg(i)))
}

type noPath struct{}

func (noPath) NeedsPath(*ptrace.Regs) (int, uintptr, bool) { return 0, 0, false }

type noHandle struct{}

func (noHandle) NeedsHandle(*ptrace.Regs) (int, bool) { return 0, false }

type openHandler struct {
	noHandle
	pathArg, flagsArg int
	// dirfdArg is -1 for open, which is always relative to the cwd.
	dirfdArg int
}

func (h openHandler) NeedsPath(r *ptrace.Regs) (int, uintptr, bool) {
	dirfd := unix.AT_FDCWD
	if h.dirfdArg >= 0 {
		dirfd = fdArg(r, h.dirfdArg)
	}
	return dirfd, uintptr(r.Arg(h.pathArg)), true
}

func (h openHandler) Handle(s *Supervisor, c *call) (outcome, error) {
	if c.mount == nil {
		return passThrough(), nil
	}
	// Backends are read-only. O_CREAT only fails when there is something
	// to create, as on a read-only mount.
	flags := int(c.regs.Arg(h.flagsArg))
	if flags&unix.O_ACCMODE != unix.O_RDONLY || flags&unix.O_TRUNC != 0 {
		return forge(-int64(unix.EROFS)), nil
	}
	if flags&(unix.O_CREAT|unix.O_EXCL) == unix.O_CREAT|unix.O_EXCL {
		if _, err := c.client.Stat(c.path); err != nil {
			if isErrno(err, unix.ENOENT) {
				return forge(-int64(unix.EROFS)), nil
			}
			return result(err)
		}
		return forge(-int64(unix.EEXIST)), nil
	}

	fileID, err := c.client.Open(c.path)
	if err != nil {
		if flags&unix.O_CREAT != 0 && isErrno(err, unix.ENOENT) {
			return forge(-int64(unix.EROFS)), nil
		}
		return result(err)
	}
	fd, err := s.table.Allocate(c.mount, fileID)
	if err != nil {
		s.logger.Warnf("no descriptor for %s on %s: %v", fileID, c.mount, err)
		// The backend still holds the file open.
		if cerr := c.client.Close(fileID); cerr != nil {
			if _, ferr := result(cerr); ferr != nil {
				return outcome{}, ferr
			}
		}
		return forge(-int64(unix.EMFILE)), nil
	}
	return forge(int64(fd)), nil
}

type closeHandler struct{ noPath }

func (closeHandler) NeedsHandle(r *ptrace.Regs) (int, bool) { return fdArg(r, 0), true }

func (closeHandler) Handle(s *Supervisor, c *call) (outcome, error) {
	if c.handle == nil {
		return passThrough(), nil
	}
	if err := c.client.Close(c.handle.FileID); err != nil {
		return result(err)
	}
	if err := s.table.Release(c.handle.ID); err != nil {
		s.logger.Warnf("releasing descriptor %d: %v", c.handle.ID, err)
	}
	return forge(0), nil
}

type readHandler struct{ noPath }

func (readHandler) NeedsHandle(r *ptrace.Regs) (int, bool) { return fdArg(r, 0), true }

func (readHandler) Handle(s *Supervisor, c *call) (outcome, error) {
	if c.handle == nil {
		return passThrough(), nil
	}
	buf, count := uintptr(c.regs.Arg(1)), c.regs.Arg(2)
	if count == 0 {
		return forge(0), nil
	}
	if count > protocol.MaxReadLen {
		count = protocol.MaxReadLen
	}

	data, err := c.client.Read(c.handle.FileID, count)
	if err != nil {
		return result(err)
	}
	n, err := s.mem.WriteBytes(buf, data, int(count))
	if err != nil {
		// The bytes were consumed on the backend all the same.
		return faulted(err)
	}
	return forge(int64(n)), nil
}

// writeStat answers a stat-family call by storing native into the tracee
// buffer at addr.
func writeStat(s *Supervisor, addr uintptr, native []byte) (outcome, error) {
	if _, err := s.mem.WriteBytes(addr, native, len(native)); err != nil {
		return faulted(err)
	}
	return forge(0), nil
}

// statHandler serves stat and lstat. Backends have no symlinks, so both
// behave the same.
type statHandler struct{ noHandle }

func (statHandler) NeedsPath(r *ptrace.Regs) (int, uintptr, bool) {
	return unix.AT_FDCWD, uintptr(r.Arg(0)), true
}

func (statHandler) Handle(s *Supervisor, c *call) (outcome, error) {
	if c.mount == nil {
		return passThrough(), nil
	}
	st, err := c.client.Stat(c.path)
	if err != nil {
		return result(err)
	}
	return writeStat(s, uintptr(c.regs.Arg(1)), protocol.StatBytes(st))
}

type fstatHandler struct{ noPath }

func (fstatHandler) NeedsHandle(r *ptrace.Regs) (int, bool) { return fdArg(r, 0), true }

func (fstatHandler) Handle(s *Supervisor, c *call) (outcome, error) {
	if c.handle == nil {
		return passThrough(), nil
	}
	st, err := c.client.Fstat(c.handle.FileID)
	if err != nil {
		return result(err)
	}
	return writeStat(s, uintptr(c.regs.Arg(1)), protocol.StatBytes(st))
}

// statxHandler serves statx(dirfd, path, flags, mask, buf). The empty path
// form on a virtual descriptor is answered with an fstat.
type statxHandler struct{ noHandle }

func (statxHandler) NeedsPath(r *ptrace.Regs) (int, uintptr, bool) {
	return fdArg(r, 0), uintptr(r.Arg(1)), true
}

func (statxHandler) EmptyPath(r *ptrace.Regs) bool {
	return int(r.Arg(2))&unix.AT_EMPTY_PATH != 0
}

func (statxHandler) Handle(s *Supervisor, c *call) (outcome, error) {
	var err error
	var st *mbpb.StatResult
	switch {
	case c.handle != nil:
		st, err = c.client.Fstat(c.handle.FileID)
	case c.mount != nil:
		st, err = c.client.Stat(c.path)
	default:
		return passThrough(), nil
	}
	if err != nil {
		return result(err)
	}
	return writeStat(s, uintptr(c.regs.Arg(4)), protocol.StatxBytes(st))
}

// getcwdHandler answers every getcwd from the recorded working directory,
// which keeps mounted directories consistent with what the tracee sees.
type getcwdHandler struct {
	noPath
	noHandle
}

func (getcwdHandler) Handle(s *Supervisor, c *call) (outcome, error) {
	buf, size := uintptr(c.regs.Arg(0)), c.regs.Arg(1)
	data, ret := protocol.Getcwd(s.cfg.Cwd, size)
	if ret < 0 {
		return forge(ret), nil
	}
	if _, err := s.mem.WriteBytes(buf, data, len(data)); err != nil {
		return faulted(err)
	}
	return forge(ret), nil
}
