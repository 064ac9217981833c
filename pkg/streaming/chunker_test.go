// Copyright 2018 The Kura Authors.
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

package streaming

import (
	"bytes"
	"testing"
)

func TestChunkerParts(t *testing.T) {
	parts := 16
	extra := []byte("efghijk")
	chunk := bytes.Repeat([]byte("abcd"), ChunkSize/4)
	source := make([]byte, 0, len(chunk)*parts+len(extra))
	for i := 0; i < parts; i++ {
		source = append(source, chunk...)
	}
	source = append(source, extra...)

	chunker := NewChunker(source)
	for i := 0; i < parts; i++ {
		val := chunker.Take(ChunkSize)
		if len(val) == 0 {
			t.Fatal("Should have shown another chunk")
		}
		if !bytes.Equal(val, chunk) {
			t.Error("Chunk should have been equivalent")
		}
	}
	lastVal := chunker.Take(ChunkSize)
	if !bytes.Equal(lastVal, extra) {
		t.Errorf("Trailing chunk should have been %s, got %s", extra, lastVal)
	}
	if val := chunker.Take(ChunkSize); len(val) != 0 {
		t.Errorf("Shouldn't have gotten another chunk")
	}
	if chunker.Remaining() != 0 || chunker.Len() != len(source) {
		t.Errorf("expected a drained chunker of %d bytes, got %d of %d left", len(source), chunker.Remaining(), chunker.Len())
	}
}

func TestChunkerTake(t *testing.T) {
	chunker := NewChunker([]byte("hello, world"))

	var tests = []struct {
		n        int
		expected string
		left     int
	}{
		{5, "hello", 7},
		{0, "", 7},
		{2, ", ", 5},
		{100, "world", 0},
		{3, "", 0},
	}
	for _, test := range tests {
		got := chunker.Take(test.n)
		if string(got) != test.expected {
			t.Errorf("expected Take(%d) = %q, got %q", test.n, test.expected, got)
		}
		if chunker.Remaining() != test.left {
			t.Errorf("expected %d bytes remaining, got %d", test.left, chunker.Remaining())
		}
	}
	if chunker.Len() != 12 {
		t.Errorf("expected len 12, got %d", chunker.Len())
	}
}
