// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package discover

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/neighborshow/neighborshow/internal/slogutil"
	"github.com/neighborshow/neighborshow/lib/netutil"
	"github.com/neighborshow/neighborshow/lib/svcutil"
)

// DefaultCacheSize bounds the number of probe IDs an agent remembers.
const DefaultCacheSize = 1024

// An Agent answers discovery probes with the local hostname and relays
// them within their hop budget. It never answers or relays the same
// probe ID twice; that suppression is the sole loop terminator, so the
// seen cache is consulted before any other action.
//
// The agent is a suture.Service. All mutable state is owned by the
// single receive loop; one probe is processed to completion before the
// next is read.
type Agent struct {
	port  int
	name  string
	seen  *seenCache
	relay Relay
	conn  net.PacketConn
}

// AgentOptions adjusts an Agent away from its defaults. The zero value
// is usable.
type AgentOptions struct {
	// Port is the UDP port to listen on. Defaults to Port.
	Port int
	// Name is the identity sent in replies. Defaults to os.Hostname().
	Name string
	// CacheSize is the seen-probe cache capacity. Defaults to
	// DefaultCacheSize.
	CacheSize int
	// Relay enumerates next-hop destinations for forwarded probes.
	// Defaults to BroadcastRelay on the agent's port.
	Relay Relay
}

func NewAgent(opts AgentOptions) *Agent {
	port := opts.Port
	if port == 0 {
		port = Port
	}
	name := opts.Name
	if name == "" {
		name = Hostname()
	}
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	relay := opts.Relay
	if relay == nil {
		relay = BroadcastRelay{Port: port}
	}
	return &Agent{
		port:  port,
		name:  name,
		seen:  newSeenCache(size),
		relay: relay,
	}
}

// Serve binds the discovery port on all local addresses and answers
// probes until the context is cancelled. Failure to bind terminates the
// whole supervisor tree: the agent cannot serve its purpose without the
// listening endpoint.
func (a *Agent) Serve(ctx context.Context) error {
	lc := net.ListenConfig{Control: netutil.BroadcastControl}
	conn, err := lc.ListenPacket(ctx, "udp4", fmt.Sprintf(":%d", a.port))
	if err != nil {
		return svcutil.AsFatalErr(err)
	}
	a.conn = conn

	slog.Info("Discovery agent listening", slog.String("name", a.name), slogutil.Address(conn.LocalAddr()))

	doneCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-doneCtx.Done()
		conn.Close()
	}()

	buf := make([]byte, 65536)
	for {
		n, src, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		a.handle(buf[:n], src)
	}
}

// handle processes one datagram to completion. Malformed and duplicate
// datagrams are discarded without a reply; they are expected background
// noise, not errors. Sends are best effort: a failed send is abandoned
// and the loop continues.
func (a *Agent) handle(bs []byte, src net.Addr) {
	metricProbesReceived.Inc()

	probe, err := UnmarshalProbe(bs)
	if err != nil {
		metricProbesMalformed.Inc()
		return
	}

	if a.seen.Seen(probe.ID) {
		metricProbesDuplicate.Inc()
		slog.Debug("Suppressed duplicate probe", slog.Uint64("id", uint64(probe.ID)), slogutil.Address(src))
		return
	}

	// Reply regardless of remaining hops, so every agent on the flood
	// path is discoverable, not only the terminal ones.
	if _, err := a.conn.WriteTo([]byte(a.name), src); err != nil {
		metricSendErrors.Inc()
		slog.Debug("Failed to send reply", slogutil.Address(src), slogutil.Error(err))
	} else {
		metricRepliesSent.Inc()
	}

	if probe.Hops > 1 {
		a.forward(Probe{ID: probe.ID, Hops: probe.Hops - 1})
	}
}

func (a *Agent) forward(probe Probe) {
	dsts, err := a.relay.Targets()
	if err != nil {
		slog.Debug("No relay targets", slogutil.Error(err))
		return
	}

	bs := probe.MustMarshalXDR()
	for _, dst := range dsts {
		if _, err := a.conn.WriteTo(bs, dst); err != nil {
			metricSendErrors.Inc()
			slog.Debug("Failed to relay probe", slogutil.Address(dst), slogutil.Error(err))
			continue
		}
		metricRelaysSent.Inc()
		slog.Debug("Relayed probe", slog.Uint64("id", uint64(probe.ID)), slog.Int("hops", int(probe.Hops)), slogutil.Address(dst))
	}
}

func (a *Agent) String() string {
	return fmt.Sprintf("discover.Agent@:%d", a.port)
}

// Hostname returns the local hostname, or a placeholder when it cannot
// be determined.
func Hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown-host"
	}
	return name
}
