// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Package netutil provides broadcast address enumeration and socket
// options for broadcast-capable UDP sockets.
package netutil

import "net"

// BroadcastDestinations returns the subnet broadcast address, with the
// given port, for every administratively up, broadcast-capable local
// interface. Interfaces without broadcast capability (point-to-point
// links and the like) are skipped. If no suitable interface address is
// found the general IPv4 broadcast address is returned as a fallback.
func BroadcastDestinations(port int) ([]*net.UDPAddr, error) {
	intfs, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var dsts []*net.UDPAddr
	for _, intf := range intfs {
		if intf.Flags&net.FlagUp == 0 || intf.Flags&net.FlagBroadcast == 0 {
			continue
		}

		addrs, err := intf.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			if iaddr, ok := addr.(*net.IPNet); ok && len(iaddr.IP) >= 4 && iaddr.IP.IsGlobalUnicast() && iaddr.IP.To4() != nil {
				dsts = append(dsts, &net.UDPAddr{IP: bcast(iaddr).IP, Port: port})
			}
		}
	}

	if len(dsts) == 0 {
		// Fall back to the general IPv4 broadcast address
		dsts = append(dsts, &net.UDPAddr{IP: net.IPv4bcast, Port: port})
	}

	return dsts, nil
}

func bcast(ip *net.IPNet) *net.IPNet {
	var bc = &net.IPNet{}
	bc.IP = make([]byte, len(ip.IP))
	copy(bc.IP, ip.IP)
	bc.Mask = ip.Mask

	offset := len(bc.IP) - len(bc.Mask)
	for i := range bc.IP {
		if i-offset >= 0 {
			bc.IP[i] = ip.IP[i] | ^ip.Mask[i-offset]
		}
	}
	return bc
}
