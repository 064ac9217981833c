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
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/mountbox/mountbox/pkg/log"
	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
	"github.com/mountbox/mountbox/pkg/proquint"
	"github.com/mountbox/mountbox/pkg/protocol"
	"github.com/mountbox/mountbox/pkg/streaming"
	"golang.org/x/sys/unix"
)

type openFile struct {
	path string
	info Info
	data *streaming.Chunker // nil for directories
}

// Session is the open file table of one client. Files are read into memory
// when opened and handed out from there; the ids are proquints.
type Session struct {
	mu     sync.Mutex
	store  Store
	logger *log.Logger
	files  map[uint32]*openFile
}

func NewSession(logger *log.Logger, store Store) *Session {
	return &Session{
		store:  store,
		logger: logger,
		files:  make(map[uint32]*openFile),
	}
}

func (s *Session) newID() (uint32, error) {
	for {
		var b [4]byte
		if _, err := rand.Read(b[:]); err != nil {
			return 0, err
		}
		id := binary.BigEndian.Uint32(b[:])
		if _, taken := s.files[id]; !taken {
			return id, nil
		}
	}
}

// Handle performs one request and returns its response; failures are
// reported as ERROR responses.
func (s *Session) Handle(req *mbpb.Request) *mbpb.Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.handle(req)
	if err != nil {
		errno := errnoOf(err)
		s.logger.Debugf("%v: %v", req.GetOperation(), err)
		return protocol.ErrorResponse(errno)
	}
	return resp
}

func (s *Session) handle(req *mbpb.Request) (*mbpb.Response, error) {
	switch req.GetOperation() {
	case mbpb.Request_OPEN:
		return s.open(req.GetOpen().GetPath())
	case mbpb.Request_CLOSE:
		return s.close(req.GetClose().GetFd().GetId())
	case mbpb.Request_READ:
		return s.read(req.GetRead().GetFd().GetId(), req.GetRead().GetLen())
	case mbpb.Request_STAT:
		info, err := s.store.Stat(req.GetStat().GetPath())
		if err != nil {
			return nil, err
		}
		return statResponse(info), nil
	case mbpb.Request_FSTAT:
		_, f, err := s.file(req.GetFstat().GetFd().GetId())
		if err != nil {
			return nil, err
		}
		return statResponse(f.info), nil
	}
	return nil, fmt.Errorf("operation %v: %w", req.GetOperation(), unix.EINVAL)
}

// file looks up an open file by its proquint id. Ids that don't parse are
// refused before the table is consulted.
func (s *Session) file(id string) (uint32, *openFile, error) {
	key, err := proquint.ToUint32([]byte(id))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", unix.EBADF, err)
	}
	f, ok := s.files[key]
	if !ok {
		return 0, nil, fmt.Errorf("file id %q: %w", id, unix.EBADF)
	}
	return key, f, nil
}

func (s *Session) open(path string) (*mbpb.Response, error) {
	info, err := s.store.Stat(path)
	if err != nil {
		return nil, err
	}
	f := &openFile{path: path, info: info}
	if !info.IsDir() {
		data, err := s.store.ReadFile(path)
		if err != nil {
			return nil, err
		}
		f.data = streaming.NewChunker(data)
		// The size is what was read, not what was stat'ed.
		f.info.Size = uint64(f.data.Len())
	}

	key, err := s.newID()
	if err != nil {
		return nil, err
	}
	s.files[key] = f
	id := string(proquint.FromUint32(key))
	s.logger.Debugf("open %s -> %s", path, id)
	return &mbpb.Response{Payload: mbpb.Response_FD, Fd: &mbpb.Fd{Id: id}}, nil
}

func (s *Session) close(id string) (*mbpb.Response, error) {
	key, _, err := s.file(id)
	if err != nil {
		return nil, err
	}
	delete(s.files, key)
	return &mbpb.Response{Payload: mbpb.Response_EMPTY}, nil
}

func (s *Session) read(id string, n uint64) (*mbpb.Response, error) {
	_, f, err := s.file(id)
	if err != nil {
		return nil, err
	}
	if f.data == nil {
		return nil, fmt.Errorf("%s: %w", f.path, ErrIsDir)
	}
	if n > protocol.MaxReadLen {
		n = protocol.MaxReadLen
	}
	data := f.data.Take(int(n))
	if len(data) > 0 && f.data.Remaining() == 0 {
		s.logger.Debugf("%s (%s) read to the end", f.path, id)
	}
	return &mbpb.Response{Payload: mbpb.Response_READ, Read: &mbpb.ReadResult{Data: data}}, nil
}

func statResponse(info Info) *mbpb.Response {
	return &mbpb.Response{
		Payload: mbpb.Response_STAT,
		Stat:    &mbpb.StatResult{Type: info.Type, Size: info.Size},
	}
}

// Len returns the number of open files.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// Close drops every open file.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.files) > 0 {
		s.logger.Debugf("dropping %d open file(s)", len(s.files))
	}
	s.files = make(map[uint32]*openFile)
}
