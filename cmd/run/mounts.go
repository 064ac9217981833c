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

package run

import (
	"fmt"
	"strings"

	"github.com/mountbox/mountbox/pkg/channel"
	"github.com/mountbox/mountbox/pkg/mount"
)

// mountSpec is one -mount DIR=ADDR argument.
type mountSpec struct {
	dir, addr string
}

// mountFlags collects repeated -mount flags.
type mountFlags []mountSpec

func (f *mountFlags) String() string {
	var parts []string
	for _, m := range *f {
		parts = append(parts, m.dir+"="+m.addr)
	}
	return strings.Join(parts, ",")
}

func (f *mountFlags) Set(value string) error {
	i := strings.Index(value, "=")
	if i <= 0 || i == len(value)-1 {
		return fmt.Errorf("expected DIR=ADDR, got %q", value)
	}
	dir, addr := value[:i], value[i+1:]
	if !strings.HasPrefix(dir, "/") {
		return fmt.Errorf("mount point %q is not absolute", dir)
	}
	*f = append(*f, mountSpec{dir: dir, addr: addr})
	return nil
}

type dialer func(addr string) (channel.Channel, error)

// registry dials every mount and builds the registry. Channels dialed
// before a failure are closed.
func (f mountFlags) registry(dial dialer) (*mount.Registry, error) {
	var mounts []*mount.Mount
	closeAll := func() {
		for _, m := range mounts {
			m.Channel.Close()
		}
	}

	for _, opt := range f {
		ch, err := dial(opt.addr)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("dialing %s for %s: %w", opt.addr, opt.dir, err)
		}
		mounts = append(mounts, &mount.Mount{Prefix: opt.dir, Channel: ch})
	}

	reg, err := mount.New(mounts...)
	if err != nil {
		closeAll()
		return nil, err
	}
	return reg, nil
}
