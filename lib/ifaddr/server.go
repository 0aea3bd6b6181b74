// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package ifaddr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/neighborshow/neighborshow/internal/slogutil"
	"github.com/neighborshow/neighborshow/lib/svcutil"
)

// DefaultListenAddr is the well-known address of the report server.
const DefaultListenAddr = ":9999"

const requestTimeout = 10 * time.Second

// RequestAll asks for the report of every interface.
const RequestAll = "-a"

// RequestOne builds the request for one named interface.
func RequestOne(name string) string {
	return "-i " + name
}

// A Server answers interface report requests over TCP. One request per
// connection: the client sends the request, the server writes the
// report and closes.
type Server struct {
	addr string
}

func NewServer(addr string) *Server {
	if addr == "" {
		addr = DefaultListenAddr
	}
	return &Server{addr: addr}
}

func (s *Server) Serve(ctx context.Context) error {
	var lc net.ListenConfig
	lis, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		// Without the listening endpoint the server has no purpose.
		return svcutil.AsFatalErr(err)
	}
	slog.Info("Interface report server listening", slogutil.Address(lis.Addr()))
	return serveListener(ctx, lis)
}

func serveListener(ctx context.Context, lis net.Listener) error {
	doneCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-doneCtx.Done()
		lis.Close()
	}()

	for {
		conn, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		handleConn(conn)
	}
}

func handleConn(conn net.Conn) {
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(requestTimeout))

	buf := make([]byte, 256)
	n, err := conn.Read(buf)
	if err != nil {
		slog.Debug("Failed to read request", slogutil.Address(conn.RemoteAddr()), slogutil.Error(err))
		return
	}

	resp := Dispatch(strings.TrimSpace(string(buf[:n])))
	if _, err := conn.Write([]byte(resp)); err != nil {
		slog.Debug("Failed to write response", slogutil.Address(conn.RemoteAddr()), slogutil.Error(err))
	}
}

// Dispatch maps a request to its text report. The request vocabulary is
// fixed: "-a" for all interfaces, "-i <name>" for one.
func Dispatch(req string) string {
	fields := strings.Fields(req)
	switch {
	case len(fields) == 1 && fields[0] == "-a":
		intfs, err := All()
		if err != nil {
			return fmt.Sprintf("error: %v\n", err)
		}
		return Report(intfs)

	case len(fields) == 2 && fields[0] == "-i":
		intf, err := One(fields[1])
		if errors.Is(err, ErrNoAddresses) {
			return fmt.Sprintf("%v\n", err)
		} else if err != nil {
			return fmt.Sprintf("error: %v\n", err)
		}
		return intf.Report()

	default:
		return fmt.Sprintf("unrecognized request %q\n", req)
	}
}

func (s *Server) String() string {
	return fmt.Sprintf("ifaddr.Server@%s", s.addr)
}
