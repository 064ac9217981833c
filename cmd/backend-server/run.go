// Copyright 2018 The Kura Authors.
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

package backendserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/improbable-eng/grpc-web/go/grpcweb"
	"github.com/mountbox/mountbox/pkg/backend"
	"github.com/mountbox/mountbox/pkg/channel"
	"github.com/mountbox/mountbox/pkg/log"
	mbpb "github.com/mountbox/mountbox/pkg/pb/mountbox"
	"github.com/soheilhy/cmux"
	"google.golang.org/grpc"
)

// Options say where the server listens.
type Options struct {
	IP string
	// Port is the TCP port; 0 picks a free one and a negative port disables
	// TCP altogether.
	Port int
	// Unix and UnixPacket, when set, are socket paths served with
	// length-prefixed frames and one frame per datagram respectively.
	Unix, UnixPacket string
}

// rawFrames matches connections speaking length-prefixed frames. Frames are
// far smaller than 16 MiB so the first length byte is zero, which no HTTP
// method or HTTP/2 preface starts with.
func rawFrames(r io.Reader) bool {
	var b [1]byte
	n, _ := r.Read(b[:])
	return n == 1 && b[0] == 0
}

func streamChannel(conn net.Conn) channel.Channel { return channel.NewStream(conn) }
func packetChannel(conn net.Conn) channel.Channel { return channel.NewPacket(conn) }

// isClosed reports errors returned by Serve loops once their listener has
// been shut down.
func isClosed(err error) bool {
	return errors.Is(err, net.ErrClosed) || errors.Is(err, cmux.ErrListenerClosed) ||
		errors.Is(err, http.ErrServerClosed) || errors.Is(err, grpc.ErrServerStopped)
}

// listenUnix listens on a unix socket, replacing a stale socket file left
// by an earlier run.
func listenUnix(network, path string) (net.Listener, error) {
	if fi, err := os.Lstat(path); err == nil && fi.Mode()&os.ModeSocket != 0 {
		os.Remove(path)
	}
	return net.Listen(network, path)
}

// Start serves store on the listeners opts names. It returns the TCP
// address (nil when TCP is disabled), a wait function blocking until every
// listener has stopped, and a shutdown function stopping them.
func Start(logger *log.Logger, store backend.Store, opts Options) (addr net.Addr, wait func(), shutdown func(), err error) {
	var (
		wg      sync.WaitGroup
		closers []func()
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	serve := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := fn(); err != nil && !isClosed(err) {
				logger.Errorf("%s server error: %v", name, err)
			}
		}()
	}

	server := backend.NewServer(logger, store)

	for _, l := range []struct {
		network, path string
		wrap          func(net.Conn) channel.Channel
	}{
		{"unix", opts.Unix, streamChannel},
		{"unixpacket", opts.UnixPacket, packetChannel},
	} {
		if l.path == "" {
			continue
		}
		lis, err := listenUnix(l.network, l.path)
		if err != nil {
			cleanup()
			return nil, nil, nil, err
		}
		closers = append(closers, func() { lis.Close() })

		network, wrap := l.network, l.wrap
		serve(network, func() error {
			logger.Infof("serving %s frames on %s", network, lis.Addr())
			return server.Serve(lis, wrap)
		})
	}

	if opts.Port >= 0 {
		lis, err := net.Listen("tcp", net.JoinHostPort(opts.IP, strconv.Itoa(opts.Port)))
		if err != nil {
			logger.Errorf("failed to open TCP port: %v", err)
			cleanup()
			return nil, nil, nil, err
		}
		addr = lis.Addr()

		// Multiplex raw frames, grpc and grpc-web over the same listener.
		// Raw frames are matched first; their first byte is enough to tell.
		mux := cmux.New(lis)
		rawL := mux.Match(rawFrames)
		// gRPC clients may hold their headers until they see the server's
		// SETTINGS frame, so the matcher sends one.
		grpcL := mux.MatchWithWriters(cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"))
		httpL := mux.Match(cmux.Any())

		maxMsg := channel.MaxFrameSize + channel.GRPCOverhead
		grpcServer := grpc.NewServer(grpc.MaxRecvMsgSize(maxMsg), grpc.MaxSendMsgSize(maxMsg))
		mbpb.RegisterBackendServer(grpcServer, server)
		httpServer := &http.Server{Handler: webHandler(server, grpcweb.WrapServer(grpcServer))}

		serve("raw", func() error {
			logger.Infof("serving raw frames on %s", addr)
			return server.Serve(rawL, streamChannel)
		})
		serve("grpc", func() error {
			logger.Infof("serving RPC server on %s", addr)
			return grpcServer.Serve(grpcL)
		})
		serve("http", func() error {
			logger.Infof("serving HTTP server on %s", addr)
			return httpServer.Serve(httpL)
		})
		serve("cmux", mux.Serve)

		closers = append(closers, func() {
			lis.Close()
			grpcServer.Stop()
			httpServer.Shutdown(context.Background())
			grpcL.Close()
		})
	}

	if len(closers) == 0 {
		return nil, nil, nil, errors.New("no listeners configured")
	}

	var once sync.Once
	shutdown = func() {
		once.Do(func() {
			cleanup()
			for _, p := range []string{opts.Unix, opts.UnixPacket} {
				if p != "" {
					os.Remove(p)
				}
			}
		})
	}
	return addr, wg.Wait, shutdown, nil
}

// webHandler routes grpc-web requests to the wrapped gRPC server and answers
// everything else with a short status line.
func webHandler(server *backend.Server, web *grpcweb.WrappedGrpcServer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if web.IsGrpcWebRequest(r) || web.IsAcceptableGrpcCorsRequest(r) {
			web.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "mountbox backend: %d grpc session(s)\n", server.Sessions())
	})
}
