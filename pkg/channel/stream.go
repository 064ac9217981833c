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

package channel

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Stream frames payloads with a 4-byte big-endian length prefix.
type Stream struct {
	rwc io.ReadWriteCloser
	hdr [4]byte
}

var _ Channel = &Stream{}

func NewStream(rwc io.ReadWriteCloser) *Stream {
	return &Stream{rwc: rwc}
}

// Send writes the length prefix and payload in a single write.
func (s *Stream) Send(frame []byte) error {
	if len(frame) > MaxFrameSize {
		return fmt.Errorf("%w: sending %d bytes", ErrFrameTooLarge, len(frame))
	}
	buf := make([]byte, 4+len(frame))
	binary.BigEndian.PutUint32(buf, uint32(len(frame)))
	copy(buf[4:], frame)
	_, err := s.rwc.Write(buf)
	return err
}

// Recv reads exactly one frame. A clean close before the length prefix
// surfaces as io.EOF; a close mid-frame as io.ErrUnexpectedEOF.
func (s *Stream) Recv() ([]byte, error) {
	if _, err := io.ReadFull(s.rwc, s.hdr[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(s.hdr[:])
	if n > MaxFrameSize {
		return nil, fmt.Errorf("%w: peer announced %d bytes", ErrFrameTooLarge, n)
	}
	frame := make([]byte, n)
	if _, err := io.ReadFull(s.rwc, frame); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return frame, nil
}

func (s *Stream) Close() error {
	return s.rwc.Close()
}
