// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Command ifshow prints local network interfaces with their addresses
// and prefix lengths.
//
//	ifshow -a
//	ifshow -i eth0
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/neighborshow/neighborshow/lib/ifaddr"
)

var (
	all    = flag.Bool("a", false, "Show all interfaces")
	ifname = flag.String("i", "", "Show one named interface")
)

func main() {
	flag.Parse()

	switch {
	case *all && *ifname == "":
		intfs, err := ifaddr.All()
		if err != nil {
			fmt.Fprintln(os.Stderr, "ifshow:", err)
			os.Exit(1)
		}
		fmt.Print(ifaddr.Report(intfs))

	case !*all && *ifname != "":
		intf, err := ifaddr.One(*ifname)
		if errors.Is(err, ifaddr.ErrNoAddresses) {
			fmt.Println(err)
			return
		} else if err != nil {
			fmt.Fprintln(os.Stderr, "ifshow:", err)
			os.Exit(1)
		}
		fmt.Print(intf.Report())

	default:
		flag.Usage()
		os.Exit(2)
	}
}
