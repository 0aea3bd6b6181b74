// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Package slogutil sets up the default slog logger and provides common
// attribute helpers.
//
// The NBRTRACE environment variable selects the default log level:
//
//	NBRTRACE=debug nbragentd
package slogutil

import (
	"log/slog"
	"net"
	"os"
)

var defaultLevel = &slog.LevelVar{}

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: defaultLevel,
	})))

	if lvlStr := os.Getenv("NBRTRACE"); lvlStr != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(lvlStr)); err != nil {
			slog.Warn("Bad log level requested in NBRTRACE", slog.String("level", lvlStr), Error(err))
		} else {
			defaultLevel.Set(level)
		}
	}
}

// SetDefaultLevel overrides the default log level.
func SetDefaultLevel(level slog.Level) {
	defaultLevel.Set(level)
}

// Error returns a standard attr for an error value.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// Address returns a standard attr for a network address.
func Address(addr net.Addr) slog.Attr {
	return slog.Any("address", addr)
}
