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
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/boltdb/bolt"
	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
)

var filesBucket = []byte("files")

// BoltStore keeps files in a bolt database, one key per file path.
// Directories exist implicitly as the parents of files.
type BoltStore struct {
	db *bolt.DB
}

var _ Writable = &BoltStore{}

// OpenBoltStore opens or creates the database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(filesBucket); err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}

func (b *BoltStore) Put(p string, data []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(filesBucket).Put([]byte(Clean(p)), append([]byte{}, data...))
	})
}

// lookup finds key in the bucket; bolt returns nil for both missing keys
// and empty values, so presence is decided by the cursor.
func lookup(c *bolt.Cursor, key []byte) ([]byte, bool) {
	k, v := c.Seek(key)
	return v, k != nil && bytes.Equal(k, key)
}

func (b *BoltStore) Stat(p string) (Info, error) {
	p = Clean(p)
	var info Info
	err := b.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(filesBucket).Cursor()
		if v, ok := lookup(c, []byte(p)); ok {
			info = Info{Type: mbpb.FileType_FILE, Size: uint64(len(v))}
			return nil
		}
		prefix := []byte(p)
		if p != "/" {
			prefix = append(prefix, '/')
		}
		if k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix) {
			info = Info{Type: mbpb.FileType_DIRECTORY}
			return nil
		}
		if p == "/" {
			info = Info{Type: mbpb.FileType_DIRECTORY}
			return nil
		}
		return fmt.Errorf("%s: %w", p, os.ErrNotExist)
	})
	return info, err
}

func (b *BoltStore) ReadFile(p string) ([]byte, error) {
	info, err := b.Stat(p)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", p, ErrIsDir)
	}

	var data []byte
	err = b.db.View(func(tx *bolt.Tx) error {
		v, ok := lookup(tx.Bucket(filesBucket).Cursor(), []byte(Clean(p)))
		if !ok {
			return fmt.Errorf("%s: %w", p, os.ErrNotExist)
		}
		// Values are only valid for the life of the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	return data, err
}

// Walk calls fn for every file in path order.
func (b *BoltStore) Walk(fn func(path string, size int) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(filesBucket).ForEach(func(k, v []byte) error {
			return fn(string(k), len(v))
		})
	})
}
