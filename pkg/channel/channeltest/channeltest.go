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

// Package channeltest provides a scripted channel.Channel for tests. A
// Script expects a fixed sequence of requests and answers each with a
// canned response.
package channeltest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/golang/protobuf/proto"
	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
)

// Exchange is one expected request and the reply to it. When Raw is set it
// is sent verbatim instead of Response; when Err is set Recv fails with it.
type Exchange struct {
	Request  *mbpb.Request
	Response *mbpb.Response
	Raw      []byte
	Err      error
}

// Script is a channel.Channel replaying exchanges in order. It is safe for
// concurrent use so a test can inspect it while a supervisor drives it.
type Script struct {
	mu        sync.Mutex
	exchanges []Exchange
	next      int
	pending   bool
	closed    bool
	failures  []error
}

func New(exchanges ...Exchange) *Script {
	return &Script{exchanges: exchanges}
}

func (s *Script) Send(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("channeltest: send on closed channel")
	}
	if s.pending {
		s.failf("send while a response is still pending")
	}
	req := &mbpb.Request{}
	if err := proto.Unmarshal(frame, req); err != nil {
		s.failf("undecodable request: %v", err)
	}
	if s.next >= len(s.exchanges) {
		s.failf("unexpected request %v", req)
		return errors.New("channeltest: script exhausted")
	}
	if want := s.exchanges[s.next].Request; want != nil && !proto.Equal(want, req) {
		s.failf("exchange %d: expected request %v, got %v", s.next, want, req)
	}
	s.pending = true
	return nil
}

func (s *Script) Recv() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pending {
		s.failf("recv without a request")
		return nil, errors.New("channeltest: nothing pending")
	}
	ex := s.exchanges[s.next]
	s.next++
	s.pending = false

	switch {
	case ex.Err != nil:
		return nil, ex.Err
	case ex.Raw != nil:
		return ex.Raw, nil
	}
	return proto.Marshal(ex.Response)
}

func (s *Script) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Script) failf(format string, args ...interface{}) {
	s.failures = append(s.failures, fmt.Errorf(format, args...))
}

// Verify reports mismatched requests and exchanges left unplayed.
func (s *Script) Verify() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.failures) > 0 {
		return fmt.Errorf("channeltest: %d failure(s), first: %v", len(s.failures), s.failures[0])
	}
	if s.next != len(s.exchanges) {
		return fmt.Errorf("channeltest: %d of %d exchanges played", s.next, len(s.exchanges))
	}
	return nil
}

// Played returns how many exchanges have completed.
func (s *Script) Played() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// Closed reports whether Close has been called.
func (s *Script) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
