// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Command ifnetshow queries a remote ifnetshowd for its interface
// report.
//
//	ifnetshow -addr host:9999 -a
//	ifnetshow -addr host:9999 -i eth0
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/neighborshow/neighborshow/lib/ifaddr"
)

var (
	addr   = flag.String("addr", "", "Address of the remote ifnetshowd (host:port)")
	all    = flag.Bool("a", false, "Request all interfaces")
	ifname = flag.String("i", "", "Request one named interface")
)

func main() {
	flag.Parse()

	var req string
	switch {
	case *addr != "" && *all && *ifname == "":
		req = ifaddr.RequestAll
	case *addr != "" && !*all && *ifname != "":
		req = ifaddr.RequestOne(*ifname)
	default:
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := ifaddr.Query(ctx, *addr, req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ifnetshow:", err)
		os.Exit(1)
	}
	fmt.Print(resp)
}
