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
	"crypto/rand"
	"encoding/binary"
	"errors"

	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
	"github.com/mountbox/mountbox/pkg/proquint"
	"golang.org/x/net/context"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// SessionKey is the gRPC metadata key naming the client session. Backends
// scope open files to it the way stream transports scope them to a
// connection.
const SessionKey = "mountbox-session"

// GRPCOverhead is the allowance on top of MaxFrameSize for the Frame
// envelope. Servers should accept messages of MaxFrameSize+GRPCOverhead.
const GRPCOverhead = 64

var errNoPendingFrame = errors.New("channel: recv without a pending frame")
var errPendingFrame = errors.New("channel: send with a frame already pending")

// GRPC carries each request frame as one unary RoundTrip call. Send buffers
// the frame; Recv performs the call and returns the reply.
type GRPC struct {
	conn    *grpc.ClientConn
	client  mbpb.BackendClient
	session string
	pending []byte
}

var _ Channel = &GRPC{}

// DialGRPC connects to a Backend service at target (host:port).
//
// TODO: This is over an insecure connection; accept transport credentials
// for backends that aren't on the local host.
func DialGRPC(target string) (*GRPC, error) {
	conn, err := grpc.Dial(target,
		grpc.WithInsecure(),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(MaxFrameSize+GRPCOverhead),
			grpc.MaxCallSendMsgSize(MaxFrameSize+GRPCOverhead),
		),
	)
	if err != nil {
		return nil, err
	}
	return NewGRPC(conn)
}

// NewGRPC wraps an established client connection, generating a fresh
// session id for it.
func NewGRPC(conn *grpc.ClientConn) (*GRPC, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return nil, err
	}
	return &GRPC{
		conn:    conn,
		client:  mbpb.NewBackendClient(conn),
		session: string(proquint.FromUint64(binary.BigEndian.Uint64(b[:]))),
	}, nil
}

// Session returns the id sent along with every call.
func (g *GRPC) Session() string {
	return g.session
}

func (g *GRPC) Send(frame []byte) error {
	if g.pending != nil {
		return errPendingFrame
	}
	if len(frame) > MaxFrameSize {
		return ErrFrameTooLarge
	}
	g.pending = append(make([]byte, 0, len(frame)), frame...)
	return nil
}

func (g *GRPC) Recv() ([]byte, error) {
	if g.pending == nil {
		return nil, errNoPendingFrame
	}
	frame := g.pending
	g.pending = nil

	ctx := metadata.AppendToOutgoingContext(context.Background(), SessionKey, g.session)
	reply, err := g.client.RoundTrip(ctx, &mbpb.Frame{Payload: frame})
	if err != nil {
		return nil, err
	}
	if len(reply.Payload) > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}
	return reply.Payload, nil
}

func (g *GRPC) Close() error {
	return g.conn.Close()
}
