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

package backend

import (
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/mountbox/mountbox/pkg/channel"
	"github.com/mountbox/mountbox/pkg/log"
	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
	"github.com/mountbox/mountbox/pkg/proquint"
	"github.com/mountbox/mountbox/pkg/protocol"
	"golang.org/x/net/context"
	"golang.org/x/sys/unix"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Server answers protocol frames from a Store. Each raw connection gets its
// own Session; gRPC clients are told apart by the channel.SessionKey
// metadata they send.
type Server struct {
	store  Store
	logger *log.Logger
	conns  uint64

	mu sync.Mutex
	// TODO: expire idle gRPC sessions; a client that goes away without
	// closing its files keeps them in memory until the server exits.
	sessions map[string]*Session
}

var _ mbpb.BackendServer = &Server{}

func NewServer(logger *log.Logger, store Store) *Server {
	return &Server{
		store:    store,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// answer decodes a request frame, performs it and encodes the response.
// Undecodable requests are answered with EINVAL.
func answer(sess *Session, frame []byte) ([]byte, error) {
	req, err := protocol.DecodeRequest(frame)
	if err != nil {
		return protocol.EncodeResponse(protocol.ErrorResponse(unix.EINVAL))
	}
	return protocol.EncodeResponse(sess.Handle(req))
}

// ServeChannel answers requests on ch until the client closes it, then
// closes ch and drops the files the client left open.
func (s *Server) ServeChannel(ch channel.Channel) error {
	n := atomic.AddUint64(&s.conns, 1)
	logger := s.logger.With(fmt.Sprintf("conn %d", n))
	sess := NewSession(logger, s.store)
	defer sess.Close()
	defer ch.Close()

	logger.Debugf("session started")
	for {
		frame, err := ch.Recv()
		if err == io.EOF {
			logger.Debugf("session ended")
			return nil
		}
		if err != nil {
			return err
		}
		out, err := answer(sess, frame)
		if err != nil {
			return err
		}
		if err := ch.Send(out); err != nil {
			return err
		}
	}
}

// Serve accepts connections on l and serves each on its own goroutine,
// framed by wrap, e.g. channel.NewStream for byte streams. It returns when
// Accept fails, typically because l was closed.
func (s *Server) Serve(l net.Listener, wrap func(net.Conn) channel.Channel) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			return err
		}
		go func() {
			if err := s.ServeChannel(wrap(conn)); err != nil {
				s.logger.Warnf("connection from %v: %v", conn.RemoteAddr(), err)
			}
		}()
	}
}

func (s *Server) session(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = NewSession(s.logger.With("session "+id), s.store)
		s.sessions[id] = sess
		s.logger.Debugf("new grpc session %s", id)
	}
	return sess
}

// RoundTrip answers one frame on behalf of the session named in the call's
// metadata. Session names are 64-bit proquints, as channel.DialGRPC makes
// them.
func (s *Server) RoundTrip(ctx context.Context, f *mbpb.Frame) (*mbpb.Frame, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	ids := md.Get(channel.SessionKey)
	if len(ids) != 1 || ids[0] == "" {
		return nil, status.Errorf(codes.InvalidArgument, "expected exactly one %s", channel.SessionKey)
	}
	if _, err := proquint.ToUint64([]byte(ids[0])); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s: %v", channel.SessionKey, err)
	}
	if len(f.GetPayload()) > channel.MaxFrameSize {
		return nil, status.Error(codes.ResourceExhausted, channel.ErrFrameTooLarge.Error())
	}

	out, err := answer(s.session(ids[0]), f.GetPayload())
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &mbpb.Frame{Payload: out}, nil
}

// Sessions returns the number of gRPC sessions seen.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
