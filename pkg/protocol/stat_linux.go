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

//go:build linux

package protocol

import (
	"math"
	"unsafe"

	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
	"golang.org/x/sys/unix"
)

// Sizes of the native structures written back to the tracee.
const (
	StatSize  = int(unsafe.Sizeof(unix.Stat_t{}))
	StatxSize = int(unsafe.Sizeof(unix.Statx_t{}))
)

func fileMode(t mbpb.FileType) uint32 {
	switch t {
	case mbpb.FileType_FILE:
		return unix.S_IFREG
	case mbpb.FileType_DIRECTORY:
		return unix.S_IFDIR
	}
	return 0
}

// StatBytes renders st as the kernel's struct stat. Everything but the type
// bits and the size is zero.
func StatBytes(st *mbpb.StatResult) []byte {
	size := st.GetSize()
	if size > math.MaxInt64 {
		size = math.MaxInt64
	}
	native := unix.Stat_t{
		Mode: fileMode(st.GetType()),
		Size: int64(size),
	}
	return append([]byte(nil), unsafe.Slice((*byte)(unsafe.Pointer(&native)), StatSize)...)
}

// StatxBytes renders st as the kernel's struct statx, reporting only the
// type and size as valid.
func StatxBytes(st *mbpb.StatResult) []byte {
	native := unix.Statx_t{
		Mask: unix.STATX_TYPE | unix.STATX_SIZE,
		Mode: uint16(fileMode(st.GetType())),
		Size: st.GetSize(),
	}
	return append([]byte(nil), unsafe.Slice((*byte)(unsafe.Pointer(&native)), StatxSize)...)
}
