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

package doc

import "github.com/mountbox/mountbox/pkg/cli"

var WireProtocolCmd = &cli.Command{
	UsageLine: "wire-protocol",
	Short:     "supervisor to backend wire protocol",
	Long: `
Each request gets exactly one response; a client never has two requests in
flight on one channel. Messages are protocol buffers from the mountbox
package (pkg/pb/mountbox/mountbox.proto):

    Request   operation: OPEN | CLOSE | READ | STAT | FSTAT
              open{path} close{fd} read{fd, len} stat{path} fstat{fd}
    Response  payload: EMPTY | FD | STAT | READ | ERROR
              fd{id} stat{type, size} read{data} error{code}

Paths are absolute and relative to the mount point: /data/a/b.txt on a
mount at /data is sent as /a/b.txt. File ids are opaque strings chosen by
the backend. Error codes are positive errno values. A response whose
payload doesn't fit its request is a protocol error.

Framing depends on the transport:

    unix, tcp    4-byte big-endian length, then the encoded message
    unixpacket   one encoded message per datagram
    grpc         mountbox.Backend/RoundTrip, the message in Frame.payload;
                 the client names its session in the mountbox-session
                 metadata entry, and open files belong to that session

Frames are at most 4 MiB; a Read asks for at most a little less so the
answer fits in one frame. A backend answers a request it can't decode with
EINVAL.
`,
}
