// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package discover

import (
	"net"

	"github.com/jackpal/gateway"

	"github.com/neighborshow/neighborshow/lib/netutil"
)

// A Relay enumerates the next-hop destinations for a forwarded probe.
// Enumeration happens per relay action, so strategies always see the
// current interface or routing state.
type Relay interface {
	Targets() ([]*net.UDPAddr, error)
}

// BroadcastRelay forwards probes to the subnet broadcast address of
// every up, broadcast-capable local interface. The interface a probe
// arrived on is deliberately not excluded; receivers suppress the
// resulting duplicates by probe ID, and that suppression is what
// terminates the flood.
type BroadcastRelay struct {
	Port int
}

func (r BroadcastRelay) Targets() ([]*net.UDPAddr, error) {
	return netutil.BroadcastDestinations(r.Port)
}

func (BroadcastRelay) String() string {
	return "broadcast"
}

// GatewayRelay forwards probes as unicast to the default route's
// gateway. Useful when the next broadcast domain sits behind a router
// that itself runs an agent.
type GatewayRelay struct {
	Port int
}

func (r GatewayRelay) Targets() ([]*net.UDPAddr, error) {
	ip, err := gateway.DiscoverGateway()
	if err != nil {
		return nil, err
	}
	return []*net.UDPAddr{{IP: ip, Port: r.Port}}, nil
}

func (GatewayRelay) String() string {
	return "gateway"
}
