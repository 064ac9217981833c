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

package protocol

import (
	"golang.org/x/sys/unix"
)

// Getcwd answers getcwd(2) from the tracked working directory without a
// round trip: the NUL-terminated path and the syscall's return value, the
// length including the terminator, or -ERANGE when size can't hold it.
func Getcwd(cwd string, size uint64) ([]byte, int64) {
	n := uint64(len(cwd)) + 1
	if n > size {
		return nil, -int64(unix.ERANGE)
	}
	buf := make([]byte, n)
	copy(buf, cwd)
	return buf, int64(n)
}
