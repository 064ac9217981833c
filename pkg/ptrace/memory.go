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

// Package ptrace wraps the handful of ptrace(2) operations a syscall
// supervisor needs: waiting for and classifying stops, reading and writing
// the register file by role, and moving bytes in and out of the traced
// process's memory one machine word at a time.
//
// A tracee can only be controlled from the OS thread that started it, so
// callers must runtime.LockOSThread before spawning the process and keep
// every call on that goroutine.
package ptrace

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// WordSize is the unit of transfer for PTRACE_PEEKDATA/POKEDATA.
const WordSize = 8

// PathMax bounds string reads; longer strings are rejected.
const PathMax = 4096

// ErrNameTooLong is returned when no NUL terminator is found within the
// requested bound.
var ErrNameTooLong = errors.New("ptrace: string exceeds bound")

// WordAccessor reads and writes single words of another address space.
// Addresses handed to it are always word aligned.
type WordAccessor interface {
	PeekWord(addr uintptr) (uint64, error)
	PokeWord(addr uintptr, word uint64) error
}

// Memory moves strings and buffers across a WordAccessor. Only aligned words
// are touched, so a transfer never faults on a page that holds none of the
// requested bytes.
type Memory struct {
	words WordAccessor
}

func NewMemory(w WordAccessor) *Memory {
	return &Memory{words: w}
}

// ReadString reads a NUL-terminated string starting at addr. Failing to read
// the very first word is an error; the string is never reported as empty in
// that case. At most max bytes (excluding the terminator) are accepted.
func (m *Memory) ReadString(addr uintptr, max int) (string, error) {
	var out []byte
	for w := addr &^ (WordSize - 1); ; w += WordSize {
		word, err := m.words.PeekWord(w)
		if err != nil {
			return "", fmt.Errorf("ptrace: reading string at %#x: %w", addr, err)
		}

		var buf [WordSize]byte
		binary.LittleEndian.PutUint64(buf[:], word)
		start := 0
		if w < addr {
			start = int(addr - w)
		}
		for _, b := range buf[start:] {
			if b == 0 {
				return string(out), nil
			}
			if len(out) == max {
				return "", fmt.Errorf("%w: more than %d bytes at %#x", ErrNameTooLong, max, addr)
			}
			out = append(out, b)
		}
	}
}

// WriteBytes copies data to addr, a destination buffer of the given
// capacity. At most capacity bytes are copied and the count copied is
// returned. Within the last word touched, bytes past the copied data are
// zeroed up to the capacity; bytes outside the buffer are preserved.
func (m *Memory) WriteBytes(addr uintptr, data []byte, capacity int) (int, error) {
	n := len(data)
	if n > capacity {
		n = capacity
	}
	if n <= 0 {
		return 0, nil
	}

	end := addr + uintptr(n)
	limit := addr + uintptr(capacity)
	for w := addr &^ (WordSize - 1); w < end; w += WordSize {
		var buf [WordSize]byte
		if w < addr || w+WordSize > end {
			word, err := m.words.PeekWord(w)
			if err != nil {
				return 0, fmt.Errorf("ptrace: writing %d bytes at %#x: %w", n, addr, err)
			}
			binary.LittleEndian.PutUint64(buf[:], word)
		}
		for i := range buf {
			switch a := w + uintptr(i); {
			case a < addr:
			case a < end:
				buf[i] = data[a-addr]
			case a < limit:
				buf[i] = 0
			}
		}
		if err := m.words.PokeWord(w, binary.LittleEndian.Uint64(buf[:])); err != nil {
			return 0, fmt.Errorf("ptrace: writing %d bytes at %#x: %w", n, addr, err)
		}
	}
	return n, nil
}
