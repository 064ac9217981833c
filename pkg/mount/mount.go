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

// Package mount maps absolute path prefixes to the backend channels serving
// them.
package mount

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/btree"
	"github.com/mountbox/mountbox/pkg/channel"
)

var (
	ErrDuplicatePrefix = errors.New("mount: duplicate prefix")
	ErrRelativePrefix  = errors.New("mount: prefix is not absolute")
)

// Mount binds a directory subtree to the backend serving it.
type Mount struct {
	Prefix  string
	Channel channel.Channel
}

func (m *Mount) String() string {
	return m.Prefix
}

// Relativize returns path re-rooted at the mount, i.e. the path the backend
// knows the file by. The path must lie under the mount.
func (m *Mount) Relativize(path string) string {
	if m.Prefix == "/" {
		return path
	}
	rel := strings.TrimPrefix(path[len(m.Prefix):], "/")
	return "/" + rel
}

// contains reports whether prefix is a path-segment prefix of path; "/a" is a
// prefix of "/a" and "/a/b" but not of "/ab".
func contains(prefix, path string) bool {
	if prefix == "/" {
		return strings.HasPrefix(path, "/")
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

type item struct {
	prefix string
	mount  *Mount
}

func (i item) Less(than btree.Item) bool {
	return i.prefix < than.(item).prefix
}

// Registry is an immutable, ordered set of mounts.
type Registry struct {
	tree *btree.BTree
}

// New builds a registry. Prefixes are cleaned before use; relative and
// duplicate prefixes are rejected.
func New(mounts ...*Mount) (*Registry, error) {
	tree := btree.New(8)
	for _, m := range mounts {
		if !filepath.IsAbs(m.Prefix) {
			return nil, fmt.Errorf("%w: %q", ErrRelativePrefix, m.Prefix)
		}
		m.Prefix = filepath.Clean(m.Prefix)
		if tree.Has(item{prefix: m.Prefix}) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePrefix, m.Prefix)
		}
		tree.ReplaceOrInsert(item{prefix: m.Prefix, mount: m})
	}
	return &Registry{tree: tree}, nil
}

// Lookup finds the mount owning path, which must be absolute and clean, and
// returns it along with the path relative to it. When mounts nest, the
// longest prefix wins.
//
// Every prefix of path sorts at or before path, and a longer prefix sorts
// after a shorter one, so the first hit of a descending scan is the longest.
func (r *Registry) Lookup(path string) (m *Mount, rel string, ok bool) {
	r.tree.DescendLessOrEqual(item{prefix: path}, func(i btree.Item) bool {
		it := i.(item)
		if contains(it.prefix, path) {
			m = it.mount
			return false
		}
		return true
	})
	if m == nil {
		return nil, "", false
	}
	return m, m.Relativize(path), true
}

// Mounts returns every mount in ascending prefix order.
func (r *Registry) Mounts() []*Mount {
	mounts := make([]*Mount, 0, r.tree.Len())
	r.tree.Ascend(func(i btree.Item) bool {
		mounts = append(mounts, i.(item).mount)
		return true
	})
	return mounts
}

func (r *Registry) Len() int {
	return r.tree.Len()
}

// Close closes every mount's channel, returning the first error seen.
func (r *Registry) Close() error {
	var first error
	for _, m := range r.Mounts() {
		if m.Channel == nil {
			continue
		}
		if err := m.Channel.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
