// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Command neighborshow performs one discovery round and prints the
// hostnames of the neighbors that answered.
//
//	neighborshow
//	neighborshow -hop 2
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	_ "github.com/neighborshow/neighborshow/internal/slogutil"
	"github.com/neighborshow/neighborshow/lib/discover"
)

var (
	hops   = flag.Int("hop", 1, "Relay hop budget for the probe")
	port   = flag.Int("port", discover.Port, "UDP discovery port")
	window = flag.Duration("window", discover.DefaultWindow, "Reply collection window")
)

func main() {
	flag.Parse()

	hosts, err := discover.Lookup(context.Background(), *hops, discover.LookupOptions{
		Port:   *port,
		Window: *window,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "neighborshow:", err)
		os.Exit(1)
	}

	if len(hosts) == 0 {
		fmt.Println("no neighbors found")
		return
	}
	for _, host := range hosts {
		fmt.Println(host)
	}
}
