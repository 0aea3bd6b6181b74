// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Command ifnetshowd serves this host's interface report over TCP, so
// that remote hosts can run ifshow-style queries against it.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/thejerf/suture/v4"

	"github.com/neighborshow/neighborshow/internal/slogutil"
	"github.com/neighborshow/neighborshow/lib/ifaddr"
	"github.com/neighborshow/neighborshow/lib/svcutil"
)

type cli struct {
	Listen string `help:"TCP listen address" default:":9999" env:"IFNETSHOW_LISTEN"`
}

func main() {
	var params cli
	kong.Parse(&params)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sup := suture.New("ifnetshowd", svcutil.Spec())
	sup.Add(ifaddr.NewServer(params.Listen))

	err := sup.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Server terminated", slogutil.Error(err))
		os.Exit(1)
	}
}
