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

// Package vfd tracks virtual file handles: descriptor numbers handed to the
// traced process that are backed by a file open on some backend rather than
// by the kernel.
package vfd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mountbox/mountbox/pkg/mount"
)

// ErrExhausted is returned when no descriptor slot can be reserved.
var ErrExhausted = errors.New("vfd: descriptor slots exhausted")

// Handle is a live virtual descriptor.
type Handle struct {
	ID     int
	FileID string
	Mount  *mount.Mount
}

// Reserver hands out descriptor numbers that stay unique while reserved.
type Reserver interface {
	Reserve() (int, error)
	Release(id int) error
}

// Table maps descriptor numbers to handles. It is not safe for concurrent
// use.
type Table struct {
	reserver Reserver
	handles  map[int]*Handle
}

func NewTable(r Reserver) *Table {
	return &Table{
		reserver: r,
		handles:  make(map[int]*Handle),
	}
}

// Allocate reserves a descriptor number for the file and records it.
func (t *Table) Allocate(m *mount.Mount, fileID string) (int, error) {
	id, err := t.reserver.Reserve()
	if err != nil {
		return -1, err
	}
	if _, ok := t.handles[id]; ok {
		return -1, fmt.Errorf("vfd: reserver returned live descriptor %d", id)
	}
	t.handles[id] = &Handle{ID: id, FileID: fileID, Mount: m}
	return id, nil
}

func (t *Table) Lookup(id int) (*Handle, bool) {
	h, ok := t.handles[id]
	return h, ok
}

// Release forgets the handle and frees its slot. Releasing an unknown id is
// a no-op.
func (t *Table) Release(id int) error {
	if _, ok := t.handles[id]; !ok {
		return nil
	}
	delete(t.handles, id)
	return t.reserver.Release(id)
}

func (t *Table) Len() int {
	return len(t.handles)
}

// IDs returns the live descriptor numbers in ascending order.
func (t *Table) IDs() []int {
	ids := make([]int, 0, len(t.handles))
	for id := range t.handles {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Close releases every handle, returning the first error seen.
func (t *Table) Close() error {
	var first error
	for _, id := range t.IDs() {
		if err := t.Release(id); err != nil && first == nil {
			first = err
		}
	}
	return first
}
