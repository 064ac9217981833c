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
	"fmt"
	"io"
	"net"
)

// Packet sends one frame per datagram. The socket must preserve message
// boundaries (SOCK_SEQPACKET); a datagram filling the whole receive buffer
// is treated as oversized.
type Packet struct {
	conn net.Conn
	buf  []byte
}

var _ Channel = &Packet{}

func NewPacket(conn net.Conn) *Packet {
	return &Packet{conn: conn}
}

func (p *Packet) Send(frame []byte) error {
	if len(frame) > MaxFrameSize {
		return fmt.Errorf("%w: sending %d bytes", ErrFrameTooLarge, len(frame))
	}
	_, err := p.conn.Write(frame)
	return err
}

func (p *Packet) Recv() ([]byte, error) {
	if p.buf == nil {
		p.buf = make([]byte, MaxFrameSize+1)
	}
	n, err := p.conn.Read(p.buf)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// SOCK_SEQPACKET reports an orderly shutdown as a zero-length read.
		return nil, io.EOF
	}
	if n > MaxFrameSize {
		return nil, fmt.Errorf("%w: datagram of at least %d bytes", ErrFrameTooLarge, n)
	}
	frame := make([]byte, n)
	copy(frame, p.buf[:n])
	return frame, nil
}

func (p *Packet) Close() error {
	return p.conn.Close()
}
