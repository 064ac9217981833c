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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"testing"
	"unsafe"

	"github.com/mountbox/mountbox/pkg/channel/channeltest"
	"github.com/mountbox/mountbox/pkg/log"
	"github.com/mountbox/mountbox/pkg/mount"
	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
	"github.com/mountbox/mountbox/pkg/protocol"
	"github.com/mountbox/mountbox/pkg/ptrace"
	"github.com/mountbox/mountbox/pkg/streaming"
	"github.com/mountbox/mountbox/pkg/vfd"
	"golang.org/x/sys/unix"
)

const (
	memBase  = 0x10000
	pathAddr = memBase + 0x100
	bufAddr  = memBase + 0x2000
)

// space is a flat, writable stand-in for the tracee's address space.
type space struct {
	mem []byte
	// gone fails every access, as for a tracee that has been killed.
	gone error
}

func newSpace() *space {
	return &space{mem: make([]byte, 0x4000)}
}

func (s *space) span(addr uintptr) ([]byte, error) {
	if s.gone != nil {
		return nil, s.gone
	}
	if addr < memBase || addr+ptrace.WordSize > memBase+uintptr(len(s.mem)) {
		return nil, unix.EFAULT
	}
	return s.mem[addr-memBase : addr-memBase+ptrace.WordSize], nil
}

func (s *space) PeekWord(addr uintptr) (uint64, error) {
	b, err := s.span(addr)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (s *space) PokeWord(addr uintptr, word uint64) error {
	b, err := s.span(addr)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b, word)
	return nil
}

func (s *space) putString(addr uintptr, v string) {
	off := addr - memBase
	copy(s.mem[off:], v)
	s.mem[off+uintptr(len(v))] = 0
}

func (s *space) at(addr uintptr, n int) []byte {
	return s.mem[addr-memBase : addr-memBase+uintptr(n)]
}

// counter hands out descriptor numbers from 100 up to a limit.
type counter struct {
	next, limit int
	live        map[int]bool
}

func (c *counter) Reserve() (int, error) {
	if len(c.live) >= c.limit {
		return -1, vfd.ErrExhausted
	}
	c.next++
	c.live[c.next] = true
	return c.next, nil
}

func (c *counter) Release(id int) error {
	delete(c.live, id)
	return nil
}

type fixture struct {
	sv     *Supervisor
	mem    *space
	script *channeltest.Script
}

func newFixture(t *testing.T, cwd string, limit int, exchanges ...channeltest.Exchange) *fixture {
	script := channeltest.New(exchanges...)
	mounts, err := mount.New(&mount.Mount{Prefix: "/data", Channel: script})
	if err != nil {
		t.Fatal(err)
	}
	mem := newSpace()
	sv := newSupervisor(Config{
		Mounts:   mounts,
		Cwd:      cwd,
		Reserver: &counter{next: 99, limit: limit, live: make(map[int]bool)},
		Logger:   log.New(log.Writer(ioutil.Discard)),
	}, mem)
	return &fixture{sv: sv, mem: mem, script: script}
}

func sysregs(nr int64, args ...uint64) *ptrace.Regs {
	r := &ptrace.Regs{}
	r.SetSyscall(nr)
	for i, a := range args {
		r.SetArg(i, a)
	}
	return r
}

func (f *fixture) call(t *testing.T, nr int64, args ...uint64) outcome {
	t.Helper()
	out, err := f.sv.dispatch(sysregs(nr, args...))
	if err != nil {
		t.Fatalf("%s: unexpected fatal error: %v", ptrace.SyscallName(nr), err)
	}
	return out
}

func (f *fixture) verify(t *testing.T) {
	t.Helper()
	if err := f.script.Verify(); err != nil {
		t.Error(err)
	}
}

func expectForged(t *testing.T, out outcome, ret int64) {
	t.Helper()
	if out.kind != forged || out.ret != ret {
		t.Errorf("expected forged result %v, got %v", forge(ret), out)
	}
}

func expectPassed(t *testing.T, out outcome) {
	t.Helper()
	if out.kind != passed {
		t.Errorf("expected the call to pass through, got %v", out)
	}
}

func fdResponse(id string) *mbpb.Response {
	return &mbpb.Response{Payload: mbpb.Response_FD, Fd: &mbpb.Fd{Id: id}}
}

func readResponse(data string) *mbpb.Response {
	return &mbpb.Response{Payload: mbpb.Response_READ, Read: &mbpb.ReadResult{Data: []byte(data)}}
}

func statResponse(t mbpb.FileType, size uint64) *mbpb.Response {
	return &mbpb.Response{Payload: mbpb.Response_STAT, Stat: &mbpb.StatResult{Type: t, Size: size}}
}

func errorResponse(errno unix.Errno) *mbpb.Response {
	return &mbpb.Response{Payload: mbpb.Response_ERROR, Error: &mbpb.Error{Code: int32(errno)}}
}

var emptyResponse = &mbpb.Response{Payload: mbpb.Response_EMPTY}

func TestOpenReadClose(t *testing.T) {
	f := newFixture(t, "/", 8,
		channeltest.Exchange{Request: protocol.NewOpen("/file.txt"), Response: fdResponse("test_id")},
		channeltest.Exchange{Request: protocol.NewRead("test_id", 4), Response: readResponse("hello world")},
		channeltest.Exchange{Request: protocol.NewClose("test_id"), Response: emptyResponse},
	)
	f.mem.putString(pathAddr, "/data/file.txt")

	expectForged(t, f.call(t, ptrace.SysOpen, pathAddr, unix.O_RDONLY), 100)
	if f.sv.table.Len() != 1 {
		t.Errorf("expected one live virtual descriptor, got %d", f.sv.table.Len())
	}

	copy(f.mem.at(bufAddr, 8), "XXXXXXXX")
	expectForged(t, f.call(t, ptrace.SysRead, 100, bufAddr, 4), 4)
	if got := string(f.mem.at(bufAddr, 8)); got != "hellXXXX" {
		t.Errorf("expected hellXXXX in the read buffer, got %q", got)
	}

	expectForged(t, f.call(t, ptrace.SysClose, 100), 0)
	if f.sv.table.Len() != 0 {
		t.Errorf("expected the descriptor to be released, %d still live", f.sv.table.Len())
	}
	// No longer virtual: the kernel gets it.
	expectPassed(t, f.call(t, ptrace.SysClose, 100))
	f.verify(t)
}

func TestUnroutedCallsPassThrough(t *testing.T) {
	f := newFixture(t, "/", 8)
	f.mem.putString(pathAddr, "/etc/passwd")

	expectPassed(t, f.call(t, ptrace.SysOpen, pathAddr, unix.O_RDONLY))
	expectPassed(t, f.call(t, ptrace.SysOpenat, uint64(0xffffffffffffff9c), pathAddr, unix.O_RDONLY))
	expectPassed(t, f.call(t, ptrace.SysStat, pathAddr, bufAddr))
	expectPassed(t, f.call(t, ptrace.SysRead, 0, bufAddr, 16))
	expectPassed(t, f.call(t, ptrace.SysFstat, 1, bufAddr))
	expectPassed(t, f.call(t, ptrace.SysClose, 2))
	expectPassed(t, f.call(t, unix.SYS_WRITE, 1, bufAddr, 16))

	f.mem.putString(pathAddr, "/database")
	expectPassed(t, f.call(t, ptrace.SysOpen, pathAddr, unix.O_RDONLY))

	// Unreadable paths are left for the kernel to fault on.
	expectPassed(t, f.call(t, ptrace.SysOpen, 0x10, unix.O_RDONLY))

	if f.script.Played() != 0 {
		t.Errorf("expected no backend traffic, got %d exchanges", f.script.Played())
	}
	f.verify(t)
}

func TestPathResolution(t *testing.T) {
	const atFdcwd = uint64(0xffffffffffffff9c) // AT_FDCWD as a register value

	f := newFixture(t, "/data/sub", 8,
		channeltest.Exchange{Request: protocol.NewOpen("/sub/a"), Response: fdResponse("a")},
		channeltest.Exchange{Request: protocol.NewOpen("/b"), Response: fdResponse("b")},
		channeltest.Exchange{Request: protocol.NewOpen("/real/c"), Response: fdResponse("c")},
		channeltest.Exchange{Request: protocol.NewOpen("/d"), Response: fdResponse("d")},
	)
	f.sv.resolver.readlink = func(name string) (string, error) {
		switch name {
		case "/proc/0/fd/7":
			return "/data/real", nil
		case "/proc/0/fd/8":
			return "socket:[1234]", nil
		}
		return "", unix.EBADF
	}

	f.mem.putString(pathAddr, "a")
	expectForged(t, f.call(t, ptrace.SysOpen, pathAddr, unix.O_RDONLY), 100)

	f.mem.putString(pathAddr, "../b")
	expectForged(t, f.call(t, ptrace.SysOpenat, atFdcwd, pathAddr, unix.O_RDONLY), 101)

	f.mem.putString(pathAddr, "c")
	expectForged(t, f.call(t, ptrace.SysOpenat, 7, pathAddr, unix.O_RDONLY), 102)

	// Relative to a socket or an unknown descriptor.
	expectPassed(t, f.call(t, ptrace.SysOpenat, 8, pathAddr, unix.O_RDONLY))
	expectPassed(t, f.call(t, ptrace.SysOpenat, 9, pathAddr, unix.O_RDONLY))

	// Relative to a virtual descriptor.
	expectForged(t, f.call(t, ptrace.SysOpenat, 100, pathAddr, unix.O_RDONLY), -int64(unix.ENOTDIR))

	// Absolute paths ignore the descriptor.
	f.mem.putString(pathAddr, "/data/./d")
	expectForged(t, f.call(t, ptrace.SysOpenat, 100, pathAddr, unix.O_RDONLY), 103)
	f.verify(t)
}

func TestOpenForWriting(t *testing.T) {
	f := newFixture(t, "/", 8)
	f.mem.putString(pathAddr, "/data/file.txt")

	for _, flags := range []uint64{
		unix.O_WRONLY,
		unix.O_RDWR,
		unix.O_RDONLY | unix.O_TRUNC,
		unix.O_WRONLY | unix.O_CREAT,
		unix.O_RDWR | unix.O_CREAT | unix.O_EXCL,
	} {
		expectForged(t, f.call(t, ptrace.SysOpen, pathAddr, flags), -int64(unix.EROFS))
	}
	f.verify(t)
}

func TestOpenWithCreate(t *testing.T) {
	f := newFixture(t, "/", 8,
		channeltest.Exchange{Request: protocol.NewOpen("/file.txt"), Response: fdResponse("existing")},
		channeltest.Exchange{Request: protocol.NewOpen("/new.txt"), Response: errorResponse(unix.ENOENT)},
		channeltest.Exchange{Request: protocol.NewOpen("/locked"), Response: errorResponse(unix.EACCES)},
		channeltest.Exchange{Request: protocol.NewStat("/file.txt"), Response: statResponse(mbpb.FileType_FILE, 5)},
		channeltest.Exchange{Request: protocol.NewStat("/new.txt"), Response: errorResponse(unix.ENOENT)},
		channeltest.Exchange{Request: protocol.NewStat("/locked"), Response: errorResponse(unix.EACCES)},
	)

	// Creating a file that is already there just opens it.
	f.mem.putString(pathAddr, "/data/file.txt")
	expectForged(t, f.call(t, ptrace.SysOpenat, uint64(0xffffffffffffff9c), pathAddr, unix.O_RDONLY|unix.O_CREAT), 100)
	if f.sv.table.Len() != 1 {
		t.Errorf("expected one live virtual descriptor, got %d", f.sv.table.Len())
	}

	f.mem.putString(pathAddr, "/data/new.txt")
	expectForged(t, f.call(t, ptrace.SysOpen, pathAddr, unix.O_RDONLY|unix.O_CREAT), -int64(unix.EROFS))
	// Other refusals come through as they are.
	f.mem.putString(pathAddr, "/data/locked")
	expectForged(t, f.call(t, ptrace.SysOpen, pathAddr, unix.O_RDONLY|unix.O_CREAT), -int64(unix.EACCES))

	// O_EXCL never opens anything.
	for _, test := range []struct {
		path string
		ret  int64
	}{
		{"/data/file.txt", -int64(unix.EEXIST)},
		{"/data/new.txt", -int64(unix.EROFS)},
		{"/data/locked", -int64(unix.EACCES)},
	} {
		f.mem.putString(pathAddr, test.path)
		expectForged(t, f.call(t, ptrace.SysOpen, pathAddr, unix.O_RDONLY|unix.O_CREAT|unix.O_EXCL), test.ret)
	}
	if f.sv.table.Len() != 1 {
		t.Errorf("expected failed creates to leave no descriptor, got %d", f.sv.table.Len())
	}
	f.verify(t)
}

func TestDescriptorExhaustion(t *testing.T) {
	f := newFixture(t, "/", 0,
		channeltest.Exchange{Request: protocol.NewOpen("/file.txt"), Response: fdResponse("orphan")},
		channeltest.Exchange{Request: protocol.NewClose("orphan"), Response: errorResponse(unix.EBADF)},
	)
	f.mem.putString(pathAddr, "/data/file.txt")

	expectForged(t, f.call(t, ptrace.SysOpen, pathAddr, unix.O_RDONLY), -int64(unix.EMFILE))
	f.verify(t)
}

func TestErrorMapping(t *testing.T) {
	f := newFixture(t, "/", 8,
		channeltest.Exchange{Request: protocol.NewOpen("/missing"), Response: errorResponse(unix.ENOENT)},
		channeltest.Exchange{Request: protocol.NewStat("/missing"), Response: &mbpb.Response{Payload: mbpb.Response_ERROR, Error: &mbpb.Error{Code: -int32(unix.ENOENT)}}},
		channeltest.Exchange{Request: protocol.NewStat("/odd"), Response: &mbpb.Response{Payload: mbpb.Response_ERROR, Error: &mbpb.Error{}}},
		channeltest.Exchange{Request: protocol.NewOpen("/garbled"), Raw: []byte{0xff, 0xff}},
		channeltest.Exchange{Request: protocol.NewOpen("/mismatch"), Response: statResponse(mbpb.FileType_FILE, 1)},
	)

	f.mem.putString(pathAddr, "/data/missing")
	expectForged(t, f.call(t, ptrace.SysOpen, pathAddr, unix.O_RDONLY), -int64(unix.ENOENT))
	expectForged(t, f.call(t, ptrace.SysStat, pathAddr, bufAddr), -int64(unix.ENOENT))

	f.mem.putString(pathAddr, "/data/odd")
	expectForged(t, f.call(t, ptrace.SysLstat, pathAddr, bufAddr), -int64(unix.EIO))

	f.mem.putString(pathAddr, "/data/garbled")
	expectForged(t, f.call(t, ptrace.SysOpen, pathAddr, unix.O_RDONLY), -int64(unix.EACCES))

	f.mem.putString(pathAddr, "/data/mismatch")
	expectForged(t, f.call(t, ptrace.SysOpen, pathAddr, unix.O_RDONLY), -int64(unix.EACCES))

	if f.sv.table.Len() != 0 {
		t.Errorf("expected no descriptors after failed opens, got %d", f.sv.table.Len())
	}
	f.verify(t)
}

func TestChannelFailureIsFatal(t *testing.T) {
	f := newFixture(t, "/", 8,
		channeltest.Exchange{Request: protocol.NewOpen("/file.txt"), Err: io.ErrUnexpectedEOF},
	)
	f.mem.putString(pathAddr, "/data/file.txt")

	_, err := f.sv.dispatch(sysregs(ptrace.SysOpen, pathAddr, unix.O_RDONLY))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected the channel failure to be fatal, got %v", err)
	}
}

func TestCloseFailureKeepsDescriptor(t *testing.T) {
	f := newFixture(t, "/", 8,
		channeltest.Exchange{Request: protocol.NewOpen("/file.txt"), Response: fdResponse("id")},
		channeltest.Exchange{Request: protocol.NewClose("id"), Response: errorResponse(unix.EIO)},
	)
	f.mem.putString(pathAddr, "/data/file.txt")

	expectForged(t, f.call(t, ptrace.SysOpen, pathAddr, unix.O_RDONLY), 100)
	expectForged(t, f.call(t, ptrace.SysClose, 100), -int64(unix.EIO))
	if _, ok := f.sv.table.Lookup(100); !ok {
		t.Error("expected the descriptor to survive a failed close")
	}
	f.verify(t)
}

func TestReadEdges(t *testing.T) {
	f := newFixture(t, "/", 8,
		channeltest.Exchange{Request: protocol.NewOpen("/big"), Response: fdResponse("big")},
		channeltest.Exchange{Request: protocol.NewRead("big", protocol.MaxReadLen), Response: readResponse("")},
		channeltest.Exchange{Request: protocol.NewRead("big", 16), Response: readResponse("data")},
	)
	f.mem.putString(pathAddr, "/data/big")
	expectForged(t, f.call(t, ptrace.SysOpen, pathAddr, unix.O_RDONLY), 100)

	// A zero-length read never reaches the backend.
	expectForged(t, f.call(t, ptrace.SysRead, 100, bufAddr, 0), 0)
	// Oversized reads are clamped; end of file reads zero bytes.
	expectForged(t, f.call(t, ptrace.SysRead, 100, bufAddr, 1<<40), 0)
	// An unmapped buffer faults.
	expectForged(t, f.call(t, ptrace.SysRead, 100, 0x10, 16), -int64(unix.EFAULT))
	f.verify(t)
}

func statFrom(b []byte) unix.Stat_t {
	var st unix.Stat_t
	copy((*[unsafe.Sizeof(st)]byte)(unsafe.Pointer(&st))[:], b)
	return st
}

func statxFrom(b []byte) unix.Statx_t {
	var stx unix.Statx_t
	copy((*[unsafe.Sizeof(stx)]byte)(unsafe.Pointer(&stx))[:], b)
	return stx
}

func TestStatFamily(t *testing.T) {
	f := newFixture(t, "/", 8,
		channeltest.Exchange{Request: protocol.NewStat("/file.txt"), Response: statResponse(mbpb.FileType_FILE, 24)},
		channeltest.Exchange{Request: protocol.NewStat("/"), Response: statResponse(mbpb.FileType_DIRECTORY, 0)},
		channeltest.Exchange{Request: protocol.NewOpen("/file.txt"), Response: fdResponse("fstat_id")},
		channeltest.Exchange{Request: protocol.NewFstat("fstat_id"), Response: statResponse(mbpb.FileType_FILE, 24)},
		channeltest.Exchange{Request: protocol.NewStat("/file.txt"), Response: statResponse(mbpb.FileType_FILE, 24)},
		channeltest.Exchange{Request: protocol.NewFstat("fstat_id"), Response: statResponse(mbpb.FileType_OTHER, 3)},
	)

	f.mem.putString(pathAddr, "/data/file.txt")
	expectForged(t, f.call(t, ptrace.SysStat, pathAddr, bufAddr), 0)
	st := statFrom(f.mem.at(bufAddr, protocol.StatSize))
	if st.Size != 24 || st.Mode&unix.S_IFMT != unix.S_IFREG {
		t.Errorf("expected a 24 byte regular file, got size %d mode %o", st.Size, st.Mode)
	}

	f.mem.putString(pathAddr, "/data")
	expectForged(t, f.call(t, ptrace.SysStat, pathAddr, bufAddr), 0)
	st = statFrom(f.mem.at(bufAddr, protocol.StatSize))
	if st.Mode&unix.S_IFMT != unix.S_IFDIR {
		t.Errorf("expected a directory, got mode %o", st.Mode)
	}

	f.mem.putString(pathAddr, "/data/file.txt")
	expectForged(t, f.call(t, ptrace.SysOpen, pathAddr, unix.O_RDONLY), 100)
	for i := range f.mem.at(bufAddr, protocol.StatSize) {
		f.mem.at(bufAddr, protocol.StatSize)[i] = 0
	}
	expectForged(t, f.call(t, ptrace.SysFstat, 100, bufAddr), 0)
	if st := statFrom(f.mem.at(bufAddr, protocol.StatSize)); st.Size != 24 {
		t.Errorf("expected fstat size 24, got %d", st.Size)
	}

	const mask = unix.STATX_TYPE | unix.STATX_SIZE
	expectForged(t, f.call(t, ptrace.SysStatx, uint64(0xffffffffffffff9c), pathAddr, 0, mask, bufAddr), 0)
	stx := statxFrom(f.mem.at(bufAddr, protocol.StatxSize))
	if stx.Size != 24 || stx.Mask&mask != mask {
		t.Errorf("expected statx size 24 with mask %#x, got size %d mask %#x", mask, stx.Size, stx.Mask)
	}

	f.mem.putString(pathAddr, "")
	expectForged(t, f.call(t, ptrace.SysStatx, 100, pathAddr, unix.AT_EMPTY_PATH, mask, bufAddr), 0)
	stx = statxFrom(f.mem.at(bufAddr, protocol.StatxSize))
	if stx.Size != 3 || uint32(stx.Mode)&unix.S_IFMT == unix.S_IFREG {
		t.Errorf("expected a 3 byte non-regular file, got size %d mode %o", stx.Size, stx.Mode)
	}
	// The empty path form on a real descriptor is the kernel's.
	expectPassed(t, f.call(t, ptrace.SysStatx, 5, pathAddr, unix.AT_EMPTY_PATH, mask, bufAddr))
	f.verify(t)
}

func TestGetcwd(t *testing.T) {
	f := newFixture(t, "/data/sub", 8)

	expectForged(t, f.call(t, ptrace.SysGetcwd, bufAddr, 64), int64(len("/data/sub")+1))
	if got := f.mem.at(bufAddr, 10); !bytes.Equal(got, []byte("/data/sub\x00")) {
		t.Errorf("expected /data/sub in the buffer, got %q", got)
	}
	expectForged(t, f.call(t, ptrace.SysGetcwd, bufAddr, 4), -int64(unix.ERANGE))
	expectForged(t, f.call(t, ptrace.SysGetcwd, 0x10, 64), -int64(unix.EFAULT))
	f.verify(t)
}

func TestMemoryFailures(t *testing.T) {
	f := newFixture(t, "/", 8,
		channeltest.Exchange{Request: protocol.NewStat("/file.txt"), Response: statResponse(mbpb.FileType_FILE, 5)},
		channeltest.Exchange{Request: protocol.NewStat("/file.txt"), Response: statResponse(mbpb.FileType_FILE, 5)},
	)

	// Bad addresses are the tracee's problem.
	f.mem.putString(pathAddr, "/data/file.txt")
	expectForged(t, f.call(t, ptrace.SysStat, pathAddr, 0x10), -int64(unix.EFAULT))
	expectPassed(t, f.call(t, ptrace.SysStat, 0x10, bufAddr))

	// Losing the tracee is not.
	f.mem.gone = unix.ESRCH
	for _, regs := range []*ptrace.Regs{
		sysregs(ptrace.SysOpen, pathAddr, unix.O_RDONLY),
		sysregs(ptrace.SysGetcwd, bufAddr, 64),
	} {
		if _, err := f.sv.dispatch(regs); !errors.Is(err, unix.ESRCH) {
			t.Errorf("%s: expected a fatal ESRCH, got %v", ptrace.SyscallName(regs.Syscall()), err)
		}
	}
	f.mem.gone = nil

	// A stat whose result can't be stored is fatal once the backend has
	// answered, too.
	f.mem.putString(pathAddr, "/data/file.txt")
	regs := sysregs(ptrace.SysStat, pathAddr, bufAddr)
	f.sv.mem = ptrace.NewMemory(&failingWrites{space: f.mem, err: unix.ESRCH})
	if _, err := f.sv.dispatch(regs); !errors.Is(err, unix.ESRCH) {
		t.Errorf("expected a fatal ESRCH storing the stat result, got %v", err)
	}
	f.verify(t)
}

// failingWrites reads from a space but fails every write.
type failingWrites struct {
	*space
	err error
}

func (f *failingWrites) PokeWord(addr uintptr, word uint64) error { return f.err }

func TestExecRewrite(t *testing.T) {
	const script = "#!/bin/sh\nexit 7\n"
	f := newFixture(t, "/", 8,
		channeltest.Exchange{Request: protocol.NewOpen("/tool"), Response: fdResponse("img")},
		channeltest.Exchange{Request: protocol.NewRead("img", streaming.ChunkSize), Response: readResponse(script)},
		channeltest.Exchange{Request: protocol.NewRead("img", streaming.ChunkSize), Response: readResponse("")},
		channeltest.Exchange{Request: protocol.NewClose("img"), Response: emptyResponse},
	)
	image, err := ioutil.TempFile("", "mountbox-exec")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(image.Name())
	defer image.Close()
	if _, err := image.WriteString("stale contents of a previous image"); err != nil {
		t.Fatal(err)
	}
	f.sv.cfg.ExecFile, f.sv.cfg.ExecFD = image, 3

	f.mem.putString(pathAddr, "/data/tool")
	regs := sysregs(ptrace.SysExecve, pathAddr, 0x1111, 0x2222)
	out, err := f.sv.dispatch(regs)
	if err != nil {
		t.Fatal(err)
	}
	if out.kind != rewritten {
		t.Fatalf("expected the execve to be rewritten, got %v", out)
	}

	var tests = []struct {
		name     string
		got      uint64
		expected uint64
	}{
		{"syscall", uint64(regs.Syscall()), ptrace.SysExecveat},
		{"dirfd", regs.Arg(0), 3},
		{"path", regs.Arg(1), pathAddr + uint64(len("/data/tool"))},
		{"argv", regs.Arg(2), 0x1111},
		{"envp", regs.Arg(3), 0x2222},
		{"flags", regs.Arg(4), unix.AT_EMPTY_PATH},
	}
	for _, test := range tests {
		if test.got != test.expected {
			t.Error(fmt.Sprintf("%s: expected %#x, got %#x", test.name, test.expected, test.got))
		}
	}

	contents, err := ioutil.ReadFile(image.Name())
	if err != nil {
		t.Fatal(err)
	}
	if string(contents) != script {
		t.Errorf("expected the image to hold the script, got %q", contents)
	}
	f.verify(t)
}

func TestExecErrors(t *testing.T) {
	f := newFixture(t, "/", 8,
		channeltest.Exchange{Request: protocol.NewOpen("/missing"), Response: errorResponse(unix.ENOENT)},
	)
	f.mem.putString(pathAddr, "/data/missing")

	// Without an exec file the kernel sees the original call.
	expectPassed(t, f.call(t, ptrace.SysExecve, pathAddr, 0, 0))

	image, err := ioutil.TempFile("", "mountbox-exec")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(image.Name())
	defer image.Close()
	f.sv.cfg.ExecFile, f.sv.cfg.ExecFD = image, 3

	expectForged(t, f.call(t, ptrace.SysExecve, pathAddr, 0, 0), -int64(unix.ENOENT))
	f.verify(t)
}

func TestExitStatus(t *testing.T) {
	var tests = []struct {
		stop     ptrace.Stop
		status   int
		finished bool
	}{
		{ptrace.Stop{Kind: ptrace.Exited, ExitStatus: 7}, 7, true},
		{ptrace.Stop{Kind: ptrace.Killed, Signal: unix.SIGKILL}, 137, true},
		{ptrace.Stop{Kind: ptrace.SyscallStop}, 0, false},
		{ptrace.Stop{Kind: ptrace.SignalStop, Signal: unix.SIGINT}, 0, false},
	}
	for _, test := range tests {
		status, finished := exitStatus(test.stop)
		if status != test.status || finished != test.finished {
			t.Errorf("%v: expected (%d, %v), got (%d, %v)", test.stop, test.status, test.finished, status, finished)
		}
	}
}
