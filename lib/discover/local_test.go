// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package discover

import (
	"context"
	"net"
	"testing"
	"time"
)

// reservePort grabs an ephemeral UDP port and releases it for reuse.
func reservePort(t *testing.T) int {
	t.Helper()
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatal(err)
	}
	port := conn.LocalAddr().(*net.UDPAddr).Port
	conn.Close()
	return port
}

func startAgent(t *testing.T, name string, port int, relay Relay) {
	t.Helper()
	a := NewAgent(AgentOptions{
		Port:      port,
		Name:      name,
		CacheSize: 64,
		Relay:     relay,
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.Serve(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

// Two agents on loopback, one reached directly and one through the
// first one's relay, and a capture socket as the second relay
// generation's target. One round must discover the directly reachable
// agent exactly once despite the duplicate probe, and the probe must
// arrive at the capture socket with its budget down to one, where the
// flood ends.
func TestLookupWithRelayingAgents(t *testing.T) {
	pA := reservePort(t)
	pB := reservePort(t)

	capture, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatal(err)
	}
	defer capture.Close()

	startAgent(t, "agent-b", pB, &fakeRelay{targets: []*net.UDPAddr{
		capture.LocalAddr().(*net.UDPAddr),
	}})
	startAgent(t, "agent-a", pA, &fakeRelay{targets: []*net.UDPAddr{
		{IP: net.IPv4(127, 0, 0, 1), Port: pB},
	}})
	time.Sleep(100 * time.Millisecond) // let the agents bind

	// The duplicated destination delivers the same probe to agent A
	// twice; suppression must keep it to one reply.
	dstA := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: pA}
	hosts, err := Lookup(context.Background(), 3, LookupOptions{
		Window:       time.Second,
		Destinations: []*net.UDPAddr{dstA, dstA},
	})
	if err != nil {
		t.Fatal(err)
	}

	count := 0
	for _, host := range hosts {
		if host == "agent-a" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("agent-a appears %d times in %v, expected exactly once", count, hosts)
	}

	capture.SetReadDeadline(time.Now().Add(time.Second))
	buf := make([]byte, 65536)
	n, _, err := capture.ReadFrom(buf)
	if err != nil {
		t.Fatalf("the probe never crossed both relay generations: %v", err)
	}
	probe, err := UnmarshalProbe(buf[:n])
	if err != nil {
		t.Fatal(err)
	}
	if probe.Hops != 1 {
		t.Errorf("probe arrived with hops %d after two relays, expected 1", probe.Hops)
	}
}
