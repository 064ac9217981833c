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

// Package backend implements the serving side of the wire protocol: a
// read-only file tree behind a Store, per-client sessions holding open
// files, and a Server answering frames over raw connections or gRPC.
package backend

import (
	"errors"
	"os"
	"path"

	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
	"golang.org/x/sys/unix"
)

// ErrIsDir is returned when reading a directory as a file.
var ErrIsDir = errors.New("backend: is a directory")

// Info describes one entry of a Store.
type Info struct {
	Type mbpb.FileType
	Size uint64
}

func (i Info) IsDir() bool {
	return i.Type == mbpb.FileType_DIRECTORY
}

// Store is a read-only tree of files addressed by absolute slash-separated
// paths. Missing entries are reported with errors satisfying
// errors.Is(err, os.ErrNotExist).
type Store interface {
	Stat(path string) (Info, error)
	ReadFile(path string) ([]byte, error)
}

// Writable stores can be populated, e.g. by the store-import command.
type Writable interface {
	Store
	Put(path string, data []byte) error
}

// Clean returns p as an absolute path with no dot elements, so that no
// store lookup can climb above its root.
func Clean(p string) string {
	return path.Clean("/" + p)
}

// errnoOf maps a store error onto the errno sent to clients.
func errnoOf(err error) unix.Errno {
	var errno unix.Errno
	switch {
	case errors.As(err, &errno):
		return errno
	case errors.Is(err, os.ErrNotExist):
		return unix.ENOENT
	case errors.Is(err, os.ErrPermission):
		return unix.EACCES
	case errors.Is(err, ErrIsDir):
		return unix.EISDIR
	}
	return unix.EIO
}
