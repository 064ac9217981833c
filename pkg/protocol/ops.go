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

package protocol

import (
	"fmt"

	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
)

func NewOpen(path string) *mbpb.Request {
	return &mbpb.Request{
		Operation: mbpb.Request_OPEN,
		Open:      &mbpb.OpenRequest{Path: path},
	}
}

func NewClose(fileID string) *mbpb.Request {
	return &mbpb.Request{
		Operation: mbpb.Request_CLOSE,
		Close:     &mbpb.CloseRequest{Fd: &mbpb.Fd{Id: fileID}},
	}
}

func NewRead(fileID string, n uint64) *mbpb.Request {
	return &mbpb.Request{
		Operation: mbpb.Request_READ,
		Read:      &mbpb.ReadRequest{Fd: &mbpb.Fd{Id: fileID}, Len: n},
	}
}

func NewStat(path string) *mbpb.Request {
	return &mbpb.Request{
		Operation: mbpb.Request_STAT,
		Stat:      &mbpb.StatRequest{Path: path},
	}
}

func NewFstat(fileID string) *mbpb.Request {
	return &mbpb.Request{
		Operation: mbpb.Request_FSTAT,
		Fstat:     &mbpb.FstatRequest{Fd: &mbpb.Fd{Id: fileID}},
	}
}

// expect checks resp carries the wanted payload, surfacing backend errors
// first.
func expect(resp *mbpb.Response, want mbpb.Response_Payload) error {
	if resp.GetPayload() == mbpb.Response_ERROR {
		return backendError(resp.GetError().GetCode())
	}
	if resp.GetPayload() != want {
		return fmt.Errorf("%w: expected %v payload, got %v", ErrProtocol, want, resp.GetPayload())
	}
	return nil
}

// InterpretOpen returns the backend's id for the opened file.
func InterpretOpen(resp *mbpb.Response) (string, error) {
	if err := expect(resp, mbpb.Response_FD); err != nil {
		return "", err
	}
	id := resp.GetFd().GetId()
	if id == "" {
		return "", fmt.Errorf("%w: open answered without a file id", ErrProtocol)
	}
	return id, nil
}

func InterpretClose(resp *mbpb.Response) error {
	return expect(resp, mbpb.Response_EMPTY)
}

// InterpretRead returns the data read, truncated to capacity. Empty data
// means end of file.
func InterpretRead(resp *mbpb.Response, capacity uint64) ([]byte, error) {
	if err := expect(resp, mbpb.Response_READ); err != nil {
		return nil, err
	}
	data := resp.GetRead().GetData()
	if uint64(len(data)) > capacity {
		data = data[:capacity]
	}
	return data, nil
}

// InterpretStat answers both Stat and Fstat.
func InterpretStat(resp *mbpb.Response) (*mbpb.StatResult, error) {
	if err := expect(resp, mbpb.Response_STAT); err != nil {
		return nil, err
	}
	st := resp.GetStat()
	if st == nil {
		return nil, fmt.Errorf("%w: stat answered without attributes", ErrProtocol)
	}
	return st, nil
}
