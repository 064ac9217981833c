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

package vfd

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DevNull reserves descriptor numbers by opening /dev/null in the current
// process, so numbers can't collide with anything else it holds open. With
// a non-zero Floor the descriptor is moved to the lowest free number at or
// above it.
type DevNull struct {
	Floor int
}

var _ Reserver = DevNull{}

func (d DevNull) Reserve() (int, error) {
	fd, err := unix.Open("/dev/null", unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return -1, reserveError(err)
	}
	if d.Floor <= 0 || fd >= d.Floor {
		return fd, nil
	}

	high, err := unix.FcntlInt(uintptr(fd), unix.F_DUPFD_CLOEXEC, d.Floor)
	unix.Close(fd)
	if err != nil {
		return -1, reserveError(err)
	}
	return high, nil
}

func (d DevNull) Release(id int) error {
	return unix.Close(id)
}

func reserveError(err error) error {
	if err == unix.EMFILE || err == unix.ENFILE || err == unix.EINVAL {
		return fmt.Errorf("%w: %v", ErrExhausted, err)
	}
	return err
}
