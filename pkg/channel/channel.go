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

// Package channel implements the frame-oriented duplex byte streams used to
// talk to backends. A Channel carries one request frame and one response
// frame at a time; callers never pipeline.
//
// Three transports are provided:
//
//      Stream  a 4-byte big-endian length prefix followed by the payload, over
//              any reliable byte stream (unix or tcp sockets)
//      Packet  one frame per datagram over a SOCK_SEQPACKET unix socket
//      GRPC    one frame per unary call of the mountbox.Backend service
//
// Dial picks a transport from an address of the form scheme:target.
package channel

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/mountbox/mountbox/pkg/streaming"
)

// Channel is a blocking, frame-oriented connection to one backend.
type Channel interface {
	// Send writes a single frame.
	Send(frame []byte) error
	// Recv blocks until a full frame has been read.
	Recv() ([]byte, error)
	Close() error
}

// MaxFrameSize bounds the payload of a single frame.
const MaxFrameSize = streaming.Threshold

var (
	// ErrFrameTooLarge is returned when a frame exceeds MaxFrameSize, in
	// either direction.
	ErrFrameTooLarge = errors.New("channel: frame too large")
	// ErrBadAddress is returned by Dial for addresses it can't interpret.
	ErrBadAddress = errors.New("channel: bad address")
)

// Dial connects to a backend. Supported addresses:
//
//      unix:/path/to/socket        length-prefixed frames over SOCK_STREAM
//      unixpacket:/path/to/socket  one frame per SOCK_SEQPACKET datagram
//      tcp:host:port               length-prefixed frames over TCP
//      grpc:host:port              the mountbox.Backend gRPC service
//
// A bare path is treated as unix:path.
func Dial(addr string) (Channel, error) {
	scheme, target := "unix", addr
	if i := strings.Index(addr, ":"); i >= 0 && !strings.HasPrefix(addr, "/") {
		scheme, target = addr[:i], addr[i+1:]
	}
	if target == "" {
		return nil, fmt.Errorf("%w: %q", ErrBadAddress, addr)
	}

	switch scheme {
	case "unix", "tcp":
		conn, err := net.Dial(scheme, target)
		if err != nil {
			return nil, err
		}
		return NewStream(conn), nil
	case "unixpacket":
		conn, err := net.Dial(scheme, target)
		if err != nil {
			return nil, err
		}
		return NewPacket(conn), nil
	case "grpc":
		return DialGRPC(target)
	default:
		return nil, fmt.Errorf("%w: unknown scheme %q in %q", ErrBadAddress, scheme, addr)
	}
}
