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
	"io/ioutil"
	"os"
	"path/filepath"

	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
)

// DirStore serves a directory of the local file system. Symlinks are
// followed, including ones pointing out of Root.
type DirStore struct {
	Root string
}

var _ Store = DirStore{}

func (d DirStore) local(p string) string {
	return filepath.Join(d.Root, filepath.FromSlash(Clean(p)))
}

func (d DirStore) Stat(p string) (Info, error) {
	fi, err := os.Stat(d.local(p))
	if err != nil {
		return Info{}, err
	}
	switch {
	case fi.IsDir():
		return Info{Type: mbpb.FileType_DIRECTORY}, nil
	case fi.Mode().IsRegular():
		return Info{Type: mbpb.FileType_FILE, Size: uint64(fi.Size())}, nil
	}
	return Info{Type: mbpb.FileType_OTHER}, nil
}

func (d DirStore) ReadFile(p string) ([]byte, error) {
	fi, err := os.Stat(d.local(p))
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s: %w", p, ErrIsDir)
	}
	return ioutil.ReadFile(d.local(p))
}
