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
	"errors"
	"fmt"
	"io"

	"github.com/mountbox/mountbox/pkg/streaming"
)

// MaxImageSize bounds the executables LoadImage will fetch.
const MaxImageSize = 256 << 20

// ErrImageTooLarge is returned when an image exceeds the size limit.
var ErrImageTooLarge = errors.New("protocol: executable image too large")

// LoadImage copies the backend file at path into w, reading it in
// streaming.ChunkSize requests until the backend reports end of file. The
// file is closed on the backend in every case where it was opened.
func (c *Client) LoadImage(path string, w io.Writer, limit int64) (n int64, err error) {
	id, err := c.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		// Only a broken channel matters once the image is in hand.
		cerr := c.Close(id)
		var berr *BackendError
		if cerr != nil && !errors.As(cerr, &berr) && !errors.Is(cerr, ErrProtocol) {
			err = cerr
		}
	}()

	for {
		data, err := c.Read(id, streaming.ChunkSize)
		if err != nil {
			return n, err
		}
		if len(data) == 0 {
			return n, nil
		}
		if n+int64(len(data)) > limit {
			return n, fmt.Errorf("%w: %s is larger than %d bytes", ErrImageTooLarge, path, limit)
		}
		if _, err := w.Write(data); err != nil {
			return n, err
		}
		n += int64(len(data))
	}
}
