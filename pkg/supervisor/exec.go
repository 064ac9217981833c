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
	"io"

	"github.com/mountbox/mountbox/pkg/protocol"
	"github.com/mountbox/mountbox/pkg/ptrace"
	"golang.org/x/sys/unix"
)

// execHandler serves execve of a backend file. The image is loaded into
// the exec memfd and the call becomes
//
//	execveat(ExecFD, "", argv, envp, AT_EMPTY_PATH)
//
// where the empty path is the NUL terminating the original one, so no
// tracee memory has to be written. An ELF image still running from the
// memfd makes a second load fail with ETXTBSY.
type execHandler struct{ noHandle }

func (execHandler) NeedsPath(r *ptrace.Regs) (int, uintptr, bool) {
	return unix.AT_FDCWD, uintptr(r.Arg(0)), true
}

func (execHandler) Handle(s *Supervisor, c *call) (outcome, error) {
	if c.mount == nil {
		return passThrough(), nil
	}
	if s.cfg.ExecFile == nil {
		s.logger.Warnf("execve of %s without an exec file", c.rawPath)
		return passThrough(), nil
	}

	w := &imageWriter{w: s.cfg.ExecFile}
	if err := s.cfg.ExecFile.Truncate(0); err != nil {
		return forge(-int64(errno(err, unix.EIO))), nil
	}
	if _, err := s.cfg.ExecFile.Seek(0, io.SeekStart); err != nil {
		return forge(-int64(errno(err, unix.EIO))), nil
	}

	n, err := c.client.LoadImage(c.path, w, protocol.MaxImageSize)
	switch {
	case err != nil && err == w.err:
		return forge(-int64(errno(err, unix.EIO))), nil
	case errors.Is(err, protocol.ErrImageTooLarge):
		return forge(-int64(unix.EFBIG)), nil
	case err != nil:
		return result(err)
	}
	s.logger.Debugf("loaded %d byte image of %s", n, c.rawPath)

	argv, envp := c.regs.Arg(1), c.regs.Arg(2)
	c.regs.SetSyscall(ptrace.SysExecveat)
	c.regs.SetArg(0, uint64(s.cfg.ExecFD))
	c.regs.SetArg(1, uint64(c.pathAddr)+uint64(len(c.rawPath)))
	c.regs.SetArg(2, argv)
	c.regs.SetArg(3, envp)
	c.regs.SetArg(4, unix.AT_EMPTY_PATH)
	return rewrite(), nil
}

// imageWriter remembers a failed write so it can be told apart from a
// channel failure.
type imageWriter struct {
	w   io.Writer
	err error
}

func (iw *imageWriter) Write(p []byte) (int, error) {
	n, err := iw.w.Write(p)
	if err != nil && iw.err == nil {
		iw.err = err
	}
	return n, err
}

func errno(err error, fallback unix.Errno) unix.Errno {
	var e unix.Errno
	if errors.As(err, &e) {
		return e
	}
	return fallback
}
