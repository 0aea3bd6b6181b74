// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Command nbragentd runs the discovery agent: it answers neighbor
// discovery probes with this host's name and relays them within their
// hop budget. It runs until terminated.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/thejerf/suture/v4"

	"github.com/neighborshow/neighborshow/internal/slogutil"
	"github.com/neighborshow/neighborshow/lib/discover"
	"github.com/neighborshow/neighborshow/lib/svcutil"
)

type cli struct {
	Port          int    `help:"UDP discovery port" default:"9999" env:"NBR_PORT"`
	CacheSize     int    `help:"Seen-probe cache capacity" default:"1024" env:"NBR_CACHE_SIZE"`
	Relay         string `help:"Relay strategy for forwarded probes" enum:"broadcast,gateway" default:"broadcast" env:"NBR_RELAY"`
	Name          string `help:"Identity sent in replies (defaults to the hostname)" env:"NBR_NAME"`
	MetricsListen string `help:"HTTP listen address for Prometheus metrics (disabled when empty)" env:"NBR_METRICS_LISTEN"`
}

func main() {
	var params cli
	kong.Parse(&params)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var relay discover.Relay = discover.BroadcastRelay{Port: params.Port}
	if params.Relay == "gateway" {
		relay = discover.GatewayRelay{Port: params.Port}
	}

	agent := discover.NewAgent(discover.AgentOptions{
		Port:      params.Port,
		Name:      params.Name,
		CacheSize: params.CacheSize,
		Relay:     relay,
	})

	if params.MetricsListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(params.MetricsListen, mux); err != nil {
				slog.Warn("Metrics listener failed", slogutil.Error(err))
			}
		}()
	}

	sup := suture.New("nbragentd", svcutil.Spec())
	sup.Add(agent)

	err := sup.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Agent terminated", slogutil.Error(err))
		os.Exit(1)
	}
}
