// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Package svcutil provides glue for running suture services.
package svcutil

import (
	"errors"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
)

const ServiceTimeout = 10 * time.Second

// FatalErr wraps an error that should terminate the whole supervisor
// tree rather than restart the failing service, such as failing to
// bind the listening socket at startup.
type FatalErr struct {
	Err error
}

// AsFatalErr wraps the given error creating a FatalErr. If the given
// error already is of type FatalErr, it is not wrapped again.
func AsFatalErr(err error) *FatalErr {
	var ferr *FatalErr
	if errors.As(err, &ferr) {
		return ferr
	}
	return &FatalErr{Err: err}
}

func (e *FatalErr) Error() string {
	return e.Err.Error()
}

func (e *FatalErr) Unwrap() error {
	return e.Err
}

func (e *FatalErr) Is(target error) bool {
	return target == suture.ErrTerminateSupervisorTree
}

// Spec returns a suture spec that logs supervisor events at debug
// level.
func Spec() suture.Spec {
	return suture.Spec{
		EventHook: func(e suture.Event) {
			slog.Debug("Supervisor event", slog.String("event", e.String()))
		},
		Timeout:           ServiceTimeout,
		PassThroughPanics: true,
	}
}
