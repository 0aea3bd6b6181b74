// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package discover

import (
	"errors"
	"net"
	"testing"
	"time"
)

type fakeAddr string

func (fakeAddr) Network() string  { return "udp" }
func (a fakeAddr) String() string { return string(a) }

type sentPacket struct {
	data []byte
	dst  net.Addr
}

// fakePacketConn records outbound packets. Reads are not used by the
// agent tests; handle() is driven directly.
type fakePacketConn struct {
	sent     []sentPacket
	failDsts map[string]bool // destinations whose sends fail
}

func (c *fakePacketConn) WriteTo(p []byte, addr net.Addr) (int, error) {
	if c.failDsts[addr.String()] {
		return 0, errors.New("send failed")
	}
	data := make([]byte, len(p))
	copy(data, p)
	c.sent = append(c.sent, sentPacket{data, addr})
	return len(p), nil
}

func (c *fakePacketConn) ReadFrom([]byte) (int, net.Addr, error) {
	return 0, nil, errors.New("not implemented")
}

func (c *fakePacketConn) Close() error                     { return nil }
func (c *fakePacketConn) LocalAddr() net.Addr              { return fakeAddr(":9999") }
func (c *fakePacketConn) SetDeadline(time.Time) error      { return nil }
func (c *fakePacketConn) SetReadDeadline(time.Time) error  { return nil }
func (c *fakePacketConn) SetWriteDeadline(time.Time) error { return nil }

// sentTo returns the packets sent to the given destination.
func (c *fakePacketConn) sentTo(dst net.Addr) []sentPacket {
	var pkts []sentPacket
	for _, pkt := range c.sent {
		if pkt.dst.String() == dst.String() {
			pkts = append(pkts, pkt)
		}
	}
	return pkts
}

type fakeRelay struct {
	targets []*net.UDPAddr
	calls   int
}

func (r *fakeRelay) Targets() ([]*net.UDPAddr, error) {
	r.calls++
	return r.targets, nil
}

func newTestAgent(conn net.PacketConn, relay Relay) *Agent {
	a := NewAgent(AgentOptions{
		Name:      "test-host",
		CacheSize: 64,
		Relay:     relay,
	})
	a.conn = conn
	return a
}

func TestAgentAnswersAndRelaysFirstSightingOnly(t *testing.T) {
	conn := &fakePacketConn{}
	relay := &fakeRelay{targets: []*net.UDPAddr{
		{IP: net.IPv4(192, 0, 2, 255), Port: Port},
		{IP: net.IPv4(198, 51, 100, 255), Port: Port},
	}}
	a := newTestAgent(conn, relay)

	src := fakeAddr("192.0.2.10:4242")
	probe := Probe{ID: 42, Hops: 3}.MustMarshalXDR()

	// Deliver the same probe several times; only the first sighting may
	// have observable effects.
	for i := 0; i < 4; i++ {
		a.handle(probe, src)
	}

	replies := conn.sentTo(src)
	if len(replies) != 1 {
		t.Fatalf("got %d replies, expected exactly 1", len(replies))
	}
	if string(replies[0].data) != "test-host" {
		t.Errorf("reply payload is %q, expected the hostname", replies[0].data)
	}

	if relay.calls != 1 {
		t.Errorf("relay targets enumerated %d times, expected 1", relay.calls)
	}
	if len(conn.sent) != 1+len(relay.targets) {
		t.Fatalf("sent %d packets total, expected 1 reply + %d relays", len(conn.sent), len(relay.targets))
	}
	for _, dst := range relay.targets {
		pkts := conn.sentTo(dst)
		if len(pkts) != 1 {
			t.Fatalf("sent %d packets to relay target %v, expected 1", len(pkts), dst)
		}
		fwd, err := UnmarshalProbe(pkts[0].data)
		if err != nil {
			t.Fatal(err)
		}
		if fwd.ID != 42 || fwd.Hops != 2 {
			t.Errorf("relayed probe is %+v, expected id 42 hops 2", fwd)
		}
	}
}

func TestAgentRepliesButNeverRelaysAtLastHop(t *testing.T) {
	conn := &fakePacketConn{}
	relay := &fakeRelay{targets: []*net.UDPAddr{{IP: net.IPv4(192, 0, 2, 255), Port: Port}}}
	a := newTestAgent(conn, relay)

	src := fakeAddr("192.0.2.10:4242")
	a.handle(Probe{ID: 42, Hops: 1}.MustMarshalXDR(), src)

	if len(conn.sent) != 1 {
		t.Fatalf("sent %d packets, expected only the reply", len(conn.sent))
	}
	if relay.calls != 0 {
		t.Error("relay targets enumerated for a last-hop probe")
	}
}

func TestAgentHopBudgetTerminates(t *testing.T) {
	// A chain of agents, each feeding its relayed output to the next.
	// A probe with budget H must cross at most H-1 relays.
	const hops = 3

	relay := &fakeRelay{targets: []*net.UDPAddr{{IP: net.IPv4(192, 0, 2, 255), Port: Port}}}
	payload := Probe{ID: 777, Hops: hops}.MustMarshalXDR()
	src := net.Addr(fakeAddr("192.0.2.10:4242"))

	relayed := 0
	for len(payload) > 0 {
		if relayed > hops {
			t.Fatal("probe is still propagating past its hop budget")
		}
		conn := &fakePacketConn{}
		newTestAgent(conn, relay).handle(payload, src)

		payload = nil
		for _, pkt := range conn.sent {
			if fwd, err := UnmarshalProbe(pkt.data); err == nil {
				if fwd.Hops >= hops {
					t.Fatalf("relayed probe has hops %d, never below original %d", fwd.Hops, hops)
				}
				payload = pkt.data
				relayed++
			}
		}
	}

	if relayed != hops-1 {
		t.Errorf("probe crossed %d relays, expected %d", relayed, hops-1)
	}
}

func TestAgentDiscardsNoiseSilently(t *testing.T) {
	conn := &fakePacketConn{}
	a := newTestAgent(conn, &fakeRelay{})

	src := fakeAddr("192.0.2.10:4242")
	for _, bs := range [][]byte{nil, {1, 2, 3}, make([]byte, 16), Probe{ID: 1, Hops: 0}.MustMarshalXDR()} {
		a.handle(bs, src)
	}

	if len(conn.sent) != 0 {
		t.Errorf("sent %d packets in response to noise", len(conn.sent))
	}
}

func TestAgentSurvivesReplyFailure(t *testing.T) {
	src := fakeAddr("192.0.2.10:4242")
	conn := &fakePacketConn{failDsts: map[string]bool{src.String(): true}}
	relay := &fakeRelay{targets: []*net.UDPAddr{{IP: net.IPv4(192, 0, 2, 255), Port: Port}}}
	a := newTestAgent(conn, relay)

	// The reply send fails; the relay must still happen, and the agent
	// must keep serving new probes.
	a.handle(Probe{ID: 1, Hops: 2}.MustMarshalXDR(), src)
	if len(conn.sent) != 1 {
		t.Fatalf("sent %d packets, expected the relay despite the failed reply", len(conn.sent))
	}

	other := fakeAddr("192.0.2.11:4242")
	a.handle(Probe{ID: 2, Hops: 1}.MustMarshalXDR(), other)
	if len(conn.sentTo(other)) != 1 {
		t.Error("agent stopped replying after an earlier send failure")
	}
}
