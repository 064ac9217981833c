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

	"github.com/mountbox/mountbox/pkg/log"
)

// Import copies every regular file below the local directory root into dst,
// keyed by its slash-separated path relative to root, and returns how many
// files it copied. Symbolic links and special files are skipped; empty
// directories don't survive since stores only record files.
func Import(logger *log.Logger, dst Writable, root string) (int, error) {
	n := 0
	err := filepath.Walk(root, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.Mode().IsRegular() {
			if !fi.IsDir() {
				logger.Debugf("skipping %s (%v)", p, fi.Mode().Type())
			}
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		data, err := ioutil.ReadFile(p)
		if err != nil {
			return err
		}
		key := Clean(filepath.ToSlash(rel))
		if err := dst.Put(key, data); err != nil {
			return fmt.Errorf("storing %s: %w", key, err)
		}
		logger.Debugf("imported %s (%d bytes)", key, len(data))
		n++
		return nil
	})
	return n, err
}
