// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ifaddr reports local network interfaces with their assigned
// addresses and prefix lengths, locally or over a small TCP
// request/response protocol.
package ifaddr

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
)

// ErrNoAddresses means the named interface does not exist or carries no
// IP addresses. The two cases are indistinguishable on purpose; either
// way there is nothing to report.
var ErrNoAddresses = errors.New("no addresses for interface")

// An Interface is a named local interface with its address prefixes.
type Interface struct {
	Name  string
	Addrs []netip.Prefix
}

// All returns every local interface that carries at least one IP
// address.
func All() ([]Interface, error) {
	intfs, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var res []Interface
	for _, intf := range intfs {
		addrs, err := prefixes(intf)
		if err != nil || len(addrs) == 0 {
			continue
		}
		res = append(res, Interface{Name: intf.Name, Addrs: addrs})
	}
	return res, nil
}

// One returns the named interface with its address prefixes, or
// ErrNoAddresses when it is unknown or has none.
func One(name string) (Interface, error) {
	intf, err := net.InterfaceByName(name)
	if err != nil {
		return Interface{}, fmt.Errorf("%s: %w", name, ErrNoAddresses)
	}
	addrs, err := prefixes(*intf)
	if err != nil || len(addrs) == 0 {
		return Interface{}, fmt.Errorf("%s: %w", name, ErrNoAddresses)
	}
	return Interface{Name: intf.Name, Addrs: addrs}, nil
}

func prefixes(intf net.Interface) ([]netip.Prefix, error) {
	addrs, err := intf.Addrs()
	if err != nil {
		return nil, err
	}

	var res []netip.Prefix
	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip, ok := netip.AddrFromSlice(ipnet.IP)
		if !ok {
			continue
		}
		bits, _ := ipnet.Mask.Size()
		res = append(res, netip.PrefixFrom(ip.Unmap(), bits))
	}
	return res, nil
}

// Report formats interfaces one address per line, each line prefixed
// with the interface name.
func Report(intfs []Interface) string {
	var sb strings.Builder
	for _, intf := range intfs {
		for _, addr := range intf.Addrs {
			fmt.Fprintf(&sb, "%s: %s\n", intf.Name, addr)
		}
	}
	return sb.String()
}

// Report formats the single interface's addresses, one per line. The
// name is omitted; the caller asked for this interface specifically.
func (i Interface) Report() string {
	var sb strings.Builder
	for _, addr := range i.Addrs {
		fmt.Fprintf(&sb, "%s\n", addr)
	}
	return sb.String()
}
