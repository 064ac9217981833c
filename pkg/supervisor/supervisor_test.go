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
	"os"
	"os/exec"
	"runtime"
	"syscall"
	"testing"
	"unsafe"

	"github.com/mountbox/mountbox/pkg/channel/channeltest"
	"github.com/mountbox/mountbox/pkg/log"
	"github.com/mountbox/mountbox/pkg/mount"
	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
	"github.com/mountbox/mountbox/pkg/protocol"
	"github.com/mountbox/mountbox/pkg/streaming"
	"github.com/mountbox/mountbox/pkg/vfd"
	"golang.org/x/sys/unix"
)

// The test binary doubles as the tracee. Only the main thread is traced, so
// the child pins its main goroutine there before anything else runs.
const childEnv = "MOUNTBOX_SUPERVISOR_CHILD"

func init() {
	if os.Getenv(childEnv) != "" {
		runtime.LockOSThread()
	}
}

func TestMain(m *testing.M) {
	switch os.Getenv(childEnv) {
	case "":
		os.Exit(m.Run())
	case "files":
		os.Exit(childFiles())
	case "exec":
		os.Exit(childExec())
	}
	os.Exit(2)
}

func cstring(s string) *byte {
	p, err := unix.BytePtrFromString(s)
	if err != nil {
		panic(err)
	}
	return p
}

// childFiles exits with the number of the first check that failed.
func childFiles() int {
	fd, _, errno := unix.Syscall(unix.SYS_OPEN, uintptr(unsafe.Pointer(cstring("/data/file.txt"))), unix.O_RDONLY, 0)
	if errno != 0 {
		return 10
	}

	buf := make([]byte, 64)
	n, _, errno := unix.Syscall(unix.SYS_READ, fd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if errno != 0 || string(buf[:n]) != "hello" {
		return 11
	}

	var st unix.Stat_t
	_, _, errno = unix.Syscall(unix.SYS_FSTAT, fd, uintptr(unsafe.Pointer(&st)), 0)
	if errno != 0 || st.Size != 5 || st.Mode&unix.S_IFMT != unix.S_IFREG {
		return 12
	}

	if _, _, errno := unix.Syscall(unix.SYS_CLOSE, fd, 0, 0); errno != 0 {
		return 13
	}

	_, _, errno = unix.Syscall(unix.SYS_STAT, uintptr(unsafe.Pointer(cstring("/data/missing"))), uintptr(unsafe.Pointer(&st)), 0)
	if errno != unix.ENOENT {
		return 14
	}

	n, _, errno = unix.Syscall(unix.SYS_GETCWD, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)), 0)
	if errno != 0 || string(buf[:n]) != "/data\x00" {
		return 15
	}
	return 0
}

// childExec only returns if the execve failed.
func childExec() int {
	path := cstring("/data/tool")
	argv := []*byte{path, nil}
	envv := []*byte{nil}
	_, _, errno := unix.Syscall(unix.SYS_EXECVE, uintptr(unsafe.Pointer(path)),
		uintptr(unsafe.Pointer(&argv[0])), uintptr(unsafe.Pointer(&envv[0])))
	runtime.KeepAlive(argv)
	runtime.KeepAlive(envv)
	return 20 + int(errno)
}

func startTracee(t *testing.T, mode string, extra ...*os.File) *exec.Cmd {
	cmd := exec.Command(os.Args[0], "-test.run=^$")
	cmd.Env = append(os.Environ(), childEnv+"="+mode)
	cmd.Stdout, cmd.Stderr = os.Stderr, os.Stderr
	cmd.ExtraFiles = extra
	cmd.SysProcAttr = &syscall.SysProcAttr{Ptrace: true}
	if err := cmd.Start(); err != nil {
		if errors.Is(err, syscall.EPERM) {
			t.Skipf("ptrace unavailable: %v", err)
		}
		t.Fatal(err)
	}
	return cmd
}

func TestSuperviseFiles(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	script := channeltest.New(
		channeltest.Exchange{Request: protocol.NewOpen("/file.txt"), Response: fdResponse("f1")},
		channeltest.Exchange{Request: protocol.NewRead("f1", 64), Response: readResponse("hello")},
		channeltest.Exchange{Request: protocol.NewFstat("f1"), Response: statResponse(mbpb.FileType_FILE, 5)},
		channeltest.Exchange{Request: protocol.NewClose("f1"), Response: emptyResponse},
		channeltest.Exchange{Request: protocol.NewStat("/missing"), Response: errorResponse(unix.ENOENT)},
	)
	mounts, err := mount.New(&mount.Mount{Prefix: "/data", Channel: script})
	if err != nil {
		t.Fatal(err)
	}

	cmd := startTracee(t, "files")
	sv := New(Config{
		Pid:      cmd.Process.Pid,
		Mounts:   mounts,
		Cwd:      "/data",
		Reserver: vfd.DevNull{Floor: 900},
		Logger:   log.Discarder(),
	})
	status, err := sv.Run()
	if err != nil {
		t.Fatal(err)
	}
	if status != 0 {
		t.Errorf("expected the tracee to exit cleanly, failed check %d", status)
	}
	if err := script.Verify(); err != nil {
		t.Error(err)
	}
}

func TestSuperviseExec(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	script := channeltest.New(
		channeltest.Exchange{Request: protocol.NewOpen("/tool"), Response: fdResponse("img")},
		channeltest.Exchange{Request: protocol.NewRead("img", streaming.ChunkSize), Response: readResponse("#!/bin/sh\nexit 7\n")},
		channeltest.Exchange{Request: protocol.NewRead("img", streaming.ChunkSize), Response: readResponse("")},
		channeltest.Exchange{Request: protocol.NewClose("img"), Response: emptyResponse},
	)
	mounts, err := mount.New(&mount.Mount{Prefix: "/data", Channel: script})
	if err != nil {
		t.Fatal(err)
	}

	memfd, err := unix.MemfdCreate("mountbox-exec", unix.MFD_CLOEXEC)
	if err != nil {
		t.Skipf("memfd_create: %v", err)
	}
	image := os.NewFile(uintptr(memfd), "mountbox-exec")
	defer image.Close()

	cmd := startTracee(t, "exec", image)
	sv := New(Config{
		Pid:      cmd.Process.Pid,
		Mounts:   mounts,
		Cwd:      "/",
		ExecFile: image,
		ExecFD:   3,
		Logger:   log.Discarder(),
	})
	status, err := sv.Run()
	if err != nil {
		t.Fatal(err)
	}
	if status != 7 {
		t.Errorf("expected the script's exit status 7, got %d", status)
	}
	if err := script.Verify(); err != nil {
		t.Error(err)
	}
}
