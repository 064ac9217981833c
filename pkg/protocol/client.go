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
	"github.com/mountbox/mountbox/pkg/channel"
	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
)

// MaxReadLen caps the length asked for in a single Read so the response
// fits in one frame.
const MaxReadLen = channel.MaxFrameSize - 1024

// Client issues operations against one backend.
type Client struct {
	ch channel.Channel
}

func NewClient(ch channel.Channel) *Client {
	return &Client{ch: ch}
}

func (c *Client) Open(path string) (string, error) {
	resp, err := RoundTrip(c.ch, NewOpen(path))
	if err != nil {
		return "", err
	}
	return InterpretOpen(resp)
}

func (c *Client) Close(fileID string) error {
	resp, err := RoundTrip(c.ch, NewClose(fileID))
	if err != nil {
		return err
	}
	return InterpretClose(resp)
}

// Read asks for up to n bytes, clamped to MaxReadLen.
func (c *Client) Read(fileID string, n uint64) ([]byte, error) {
	ask := n
	if ask > MaxReadLen {
		ask = MaxReadLen
	}
	resp, err := RoundTrip(c.ch, NewRead(fileID, ask))
	if err != nil {
		return nil, err
	}
	return InterpretRead(resp, ask)
}

func (c *Client) Stat(path string) (*mbpb.StatResult, error) {
	resp, err := RoundTrip(c.ch, NewStat(path))
	if err != nil {
		return nil, err
	}
	return InterpretStat(resp)
}

func (c *Client) Fstat(fileID string) (*mbpb.StatResult, error) {
	resp, err := RoundTrip(c.ch, NewFstat(fileID))
	if err != nil {
		return nil, err
	}
	return InterpretStat(resp)
}
