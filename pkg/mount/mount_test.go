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

package mount

import (
	"errors"
	"testing"
)

type closeCounter struct {
	closed int
}

func (c *closeCounter) Send([]byte) error      { return nil }
func (c *closeCounter) Recv() ([]byte, error) { return nil, nil }
func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestLookup(t *testing.T) {
	r, err := New(
		&Mount{Prefix: "/data"},
		&Mount{Prefix: "/data/nested/"},
		&Mount{Prefix: "/srv/a"},
		&Mount{Prefix: "/srv/a/b"},
		&Mount{Prefix: "/srv/ab"},
	)
	if err != nil {
		t.Fatal(err)
	}

	var tests = []struct {
		path   string
		prefix string
		rel    string
	}{
		{"/data/file.txt", "/data", "/file.txt"},
		{"/data", "/data", "/"},
		{"/data/nested", "/data/nested", "/"},
		{"/data/nested/deeper/x", "/data/nested", "/deeper/x"},
		{"/data/nestedx", "/data", "/nestedx"},
		{"/srv/a/b/c", "/srv/a/b", "/c"},
		{"/srv/a/bb", "/srv/a", "/bb"},
		{"/srv/ab/c", "/srv/ab", "/c"},
		{"/srv/abc", "", ""},
		{"/datafile", "", ""},
		{"/etc/passwd", "", ""},
		{"/", "", ""},
	}
	for _, test := range tests {
		m, rel, ok := r.Lookup(test.path)
		if test.prefix == "" {
			if ok {
				t.Errorf("expected no mount for %s, got %s", test.path, m.Prefix)
			}
			continue
		}
		if !ok {
			t.Errorf("expected %s to resolve to %s, found no mount", test.path, test.prefix)
			continue
		}
		if m.Prefix != test.prefix || rel != test.rel {
			t.Errorf("expected %s -> (%s, %s), got (%s, %s)", test.path, test.prefix, test.rel, m.Prefix, rel)
		}
	}
}

func TestRootMount(t *testing.T) {
	r, err := New(&Mount{Prefix: "/"}, &Mount{Prefix: "/tmp"})
	if err != nil {
		t.Fatal(err)
	}
	if m, rel, _ := r.Lookup("/etc/hosts"); m.Prefix != "/" || rel != "/etc/hosts" {
		t.Errorf("expected root mount with /etc/hosts, got (%s, %s)", m.Prefix, rel)
	}
	if m, rel, _ := r.Lookup("/tmp/x"); m.Prefix != "/tmp" || rel != "/x" {
		t.Errorf("expected /tmp mount with /x, got (%s, %s)", m.Prefix, rel)
	}
}

func TestNewRejects(t *testing.T) {
	if _, err := New(&Mount{Prefix: "/a"}, &Mount{Prefix: "/a/"}); !errors.Is(err, ErrDuplicatePrefix) {
		t.Errorf("expected ErrDuplicatePrefix, got %v", err)
	}
	if _, err := New(&Mount{Prefix: "/a/../b"}, &Mount{Prefix: "/b"}); !errors.Is(err, ErrDuplicatePrefix) {
		t.Errorf("expected ErrDuplicatePrefix, got %v", err)
	}
	if _, err := New(&Mount{Prefix: "data"}); !errors.Is(err, ErrRelativePrefix) {
		t.Errorf("expected ErrRelativePrefix, got %v", err)
	}
}

func TestMountsAndClose(t *testing.T) {
	a, b := &closeCounter{}, &closeCounter{}
	r, err := New(&Mount{Prefix: "/z", Channel: a}, &Mount{Prefix: "/m", Channel: b})
	if err != nil {
		t.Fatal(err)
	}
	mounts := r.Mounts()
	if len(mounts) != 2 || mounts[0].Prefix != "/m" || mounts[1].Prefix != "/z" {
		t.Errorf("expected [/m /z], got %v", mounts)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if a.closed != 1 || b.closed != 1 {
		t.Errorf("expected each channel closed once, got %d and %d", a.closed, b.closed)
	}
}
