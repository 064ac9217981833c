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

// Package protocol translates filesystem operations to and from the
// mountbox wire messages. Each operation has a constructor building its
// request and an interpreter validating the response; Client pairs them
// with a channel round trip.
//
// Interpreters report three kinds of failure:
//
//      *BackendError  the backend answered with an errno
//      ErrProtocol    the response was malformed or of the wrong kind
//      anything else  the channel itself failed
package protocol

import (
	"errors"
	"fmt"

	"github.com/golang/protobuf/proto"
	"github.com/mountbox/mountbox/pkg/channel"
	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
	"golang.org/x/sys/unix"
)

// ErrProtocol marks a response that couldn't be decoded or didn't match the
// request it answers.
var ErrProtocol = errors.New("protocol: malformed message")

// BackendError is an errno reported by a backend.
type BackendError struct {
	Errno unix.Errno
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend: %v", e.Errno)
}

func (e *BackendError) Unwrap() error {
	return e.Errno
}

// backendError converts a wire code. Codes are positive errno values; a
// negative code is taken by magnitude and zero, which would read as success,
// becomes EIO.
func backendError(code int32) *BackendError {
	if code < 0 {
		code = -code
	}
	if code <= 0 {
		return &BackendError{Errno: unix.EIO}
	}
	return &BackendError{Errno: unix.Errno(code)}
}

func EncodeRequest(req *mbpb.Request) ([]byte, error) {
	frame, err := proto.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", ErrProtocol, err)
	}
	return frame, nil
}

func DecodeRequest(frame []byte) (*mbpb.Request, error) {
	req := &mbpb.Request{}
	if err := proto.Unmarshal(frame, req); err != nil {
		return nil, fmt.Errorf("%w: decoding request: %v", ErrProtocol, err)
	}
	return req, nil
}

func EncodeResponse(resp *mbpb.Response) ([]byte, error) {
	frame, err := proto.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding response: %v", ErrProtocol, err)
	}
	return frame, nil
}

func DecodeResponse(frame []byte) (*mbpb.Response, error) {
	resp := &mbpb.Response{}
	if err := proto.Unmarshal(frame, resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrProtocol, err)
	}
	return resp, nil
}

// RoundTrip sends req and waits for its response.
func RoundTrip(ch channel.Channel, req *mbpb.Request) (*mbpb.Response, error) {
	frame, err := EncodeRequest(req)
	if err != nil {
		return nil, err
	}
	if err := ch.Send(frame); err != nil {
		return nil, fmt.Errorf("sending %v request: %w", req.Operation, err)
	}
	reply, err := ch.Recv()
	if err != nil {
		return nil, fmt.Errorf("awaiting %v response: %w", req.Operation, err)
	}
	return DecodeResponse(reply)
}

// ErrorResponse builds the response carrying errno.
func ErrorResponse(errno unix.Errno) *mbpb.Response {
	return &mbpb.Response{
		Payload: mbpb.Response_ERROR,
		Error:   &mbpb.Error{Code: int32(errno)},
	}
}
