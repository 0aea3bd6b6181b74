// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package discover

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricProbesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "neighborshow",
		Subsystem: "discover",
		Name:      "probes_received_total",
		Help:      "Total number of datagrams received on the discovery port",
	})
	metricProbesMalformed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "neighborshow",
		Subsystem: "discover",
		Name:      "probes_malformed_total",
		Help:      "Total number of received datagrams that were not valid probes",
	})
	metricProbesDuplicate = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "neighborshow",
		Subsystem: "discover",
		Name:      "probes_duplicate_total",
		Help:      "Total number of probes suppressed as already seen",
	})
	metricRepliesSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "neighborshow",
		Subsystem: "discover",
		Name:      "replies_sent_total",
		Help:      "Total number of hostname replies sent",
	})
	metricRelaysSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "neighborshow",
		Subsystem: "discover",
		Name:      "relays_sent_total",
		Help:      "Total number of relayed probe datagrams sent",
	})
	metricSendErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "neighborshow",
		Subsystem: "discover",
		Name:      "send_errors_total",
		Help:      "Total number of reply or relay sends that failed",
	})
)
