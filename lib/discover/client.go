// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package discover

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/neighborshow/neighborshow/internal/slogutil"
	"github.com/neighborshow/neighborshow/lib/netutil"
)

const (
	// DefaultWindow is how long a discovery round collects replies.
	DefaultWindow = 2 * time.Second

	// pollInterval is the read deadline granularity during collection.
	// A round returns within the window plus at most one interval.
	pollInterval = 500 * time.Millisecond
)

// LookupOptions adjusts a discovery round away from its defaults. The
// zero value is usable.
type LookupOptions struct {
	// Port is the destination discovery port. Defaults to Port.
	Port int
	// Window is the reply collection duration. Defaults to
	// DefaultWindow.
	Window time.Duration
	// Destinations overrides broadcast destination enumeration. Used
	// in tests to direct probes at a loopback agent.
	Destinations []*net.UDPAddr
}

// Lookup performs one discovery round: it broadcasts a probe with the
// given hop budget, then collects replies for the collection window and
// returns the unique responder hostnames in order of first sighting. A
// hop budget below one is coerced up to one. An empty result is a valid
// outcome, not an error; errors are returned only when the round could
// not be started at all.
func Lookup(ctx context.Context, hops int, opts LookupOptions) ([]string, error) {
	if hops < 1 {
		slog.Warn("Hop count below one makes no sense, using one", slog.Int("hops", hops))
		hops = 1
	}
	port := opts.Port
	if port == 0 {
		port = Port
	}
	window := opts.Window
	if window <= 0 {
		window = DefaultWindow
	}

	probe := Probe{ID: randomProbeID(), Hops: int32(hops)}

	lc := net.ListenConfig{Control: netutil.BroadcastControl}
	conn, err := lc.ListenPacket(ctx, "udp4", ":0")
	if err != nil {
		return nil, fmt.Errorf("discovery socket: %w", err)
	}
	defer conn.Close()

	dsts := opts.Destinations
	if dsts == nil {
		dsts, err = netutil.BroadcastDestinations(port)
		if err != nil {
			return nil, fmt.Errorf("enumerating broadcast destinations: %w", err)
		}
	}

	bs := probe.MustMarshalXDR()
	success := 0
	var sendErr error
	for _, dst := range dsts {
		if _, err := conn.WriteTo(bs, dst); err != nil {
			slog.Debug("Failed to send probe", slogutil.Address(dst), slogutil.Error(err))
			sendErr = err
			continue
		}
		slog.Debug("Sent probe", slog.Uint64("id", uint64(probe.ID)), slog.Int("hops", hops), slogutil.Address(dst))
		success++
	}
	if success == 0 {
		return nil, fmt.Errorf("sending probe: %w", sendErr)
	}

	return collect(conn, window), nil
}

// collect reads reply datagrams until the window expires, treating each
// payload as a responder hostname and deduplicating by exact match.
// Short read deadlines keep a single blocking read from delaying the
// overall deadline by more than one poll interval. A non-timeout read
// error ends collection early; whatever was gathered so far is still
// reported.
func collect(conn net.PacketConn, window time.Duration) []string {
	deadline := time.Now().Add(window)
	seen := make(map[string]bool)
	var hosts []string

	buf := make([]byte, 65536)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(time.Now().Add(pollInterval))
		n, src, err := conn.ReadFrom(buf)
		if err != nil {
			if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
				continue
			}
			slog.Warn("Reply collection ended early", slogutil.Error(err))
			break
		}
		if n == 0 {
			continue
		}

		host := string(buf[:n])
		if seen[host] {
			continue
		}
		seen[host] = true
		hosts = append(hosts, host)
		slog.Debug("Got reply", slog.String("host", host), slogutil.Address(src))
	}

	return hosts
}

func randomProbeID() uint32 {
	var buf [4]byte
	rand.Read(buf[:])
	return binary.BigEndian.Uint32(buf[:])
}
