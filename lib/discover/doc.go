// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Package discover implements hop-bounded neighbor discovery over UDP
// broadcast.
//
// A client floods a fixed-size probe on the local broadcast domain.
// Every agent that sees a probe for the first time replies with its
// hostname directly to the original sender and, while hop budget
// remains, re-floods a decremented copy outward. Agents remember probe
// IDs in a bounded cache; discarding repeat sightings is the only
// mechanism that terminates the flood. The client collects replies for
// a fixed window and reports the unique responder set.
//
// Discovery is best effort: there is no authentication, no delivery
// guarantee, and no state surviving a restart.
package discover
