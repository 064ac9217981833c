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

// Chunker is a cursor over a byte array, handing out consecutive parts of it.
type Chunker struct {
	offset int
	source []byte
}

func NewChunker(source []byte) *Chunker {
	return &Chunker{source: source}
}

// Take returns up to n bytes starting at the current offset and advances
// past them. An empty result means the source is exhausted.
func (c *Chunker) Take(n int) []byte {
	if n < 0 {
		n = 0
	}
	end := c.offset + n
	if end > len(c.source) || end < c.offset {
		end = len(c.source)
	}
	part := c.source[c.offset:end]
	c.offset = end
	return part
}

// Len returns the total size of the source.
func (c *Chunker) Len() int {
	return len(c.source)
}

// Remaining returns how many bytes are left past the current offset.
func (c *Chunker) Remaining() int {
	return len(c.source) - c.offset
}
