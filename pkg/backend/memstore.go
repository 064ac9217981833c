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
	"os"
	"strings"
	"sync"

	"github.com/google/btree"
	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
)

type memFile struct {
	path string
	data []byte
}

func (f memFile) Less(than btree.Item) bool {
	return f.path < than.(memFile).path
}

// MemStore keeps files in memory. Directories exist implicitly as the
// parents of files; the root always exists.
type MemStore struct {
	mu   sync.RWMutex
	tree *btree.BTree
}

var _ Writable = &MemStore{}

func NewMemStore() *MemStore {
	return &MemStore{tree: btree.New(16)}
}

func (m *MemStore) Put(p string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tree.ReplaceOrInsert(memFile{path: Clean(p), data: append([]byte(nil), data...)})
	return nil
}

// hasChildren reports whether any file lies below dir. Paths under dir sort
// right after dir+"/", so a single ascending step answers it.
func (m *MemStore) hasChildren(dir string) bool {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	found := false
	m.tree.AscendGreaterOrEqual(memFile{path: prefix}, func(i btree.Item) bool {
		found = strings.HasPrefix(i.(memFile).path, prefix)
		return false
	})
	return found
}

func (m *MemStore) Stat(p string) (Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p = Clean(p)
	if i := m.tree.Get(memFile{path: p}); i != nil {
		return Info{Type: mbpb.FileType_FILE, Size: uint64(len(i.(memFile).data))}, nil
	}
	if p == "/" || m.hasChildren(p) {
		return Info{Type: mbpb.FileType_DIRECTORY}, nil
	}
	return Info{}, fmt.Errorf("%s: %w", p, os.ErrNotExist)
}

func (m *MemStore) ReadFile(p string) ([]byte, error) {
	info, err := m.Stat(p)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", p, ErrIsDir)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.tree.Get(memFile{path: Clean(p)})
	if i == nil {
		return nil, fmt.Errorf("%s: %w", p, os.ErrNotExist)
	}
	return i.(memFile).data, nil
}

// Len returns the number of files held.
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tree.Len()
}
