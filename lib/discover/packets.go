// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package discover

import (
	"errors"

	"github.com/calmh/xdr"
)

// Port is the well-known UDP port agents listen on.
const Port = 9999

// ProbeSize is the exact on-the-wire size of a Probe. Datagrams of any
// other size are not probes.
const ProbeSize = 8

var errNotAProbe = errors.New("datagram is not a probe")

// A Probe is a discovery request. ID distinguishes one discovery round
// from another; Hops is the remaining relay budget and is at least one
// in any valid probe.
type Probe struct {
	ID   uint32
	Hops int32
}

func (p Probe) MarshalXDRInto(m *xdr.Marshaller) error {
	m.MarshalUint32(p.ID)
	m.MarshalUint32(uint32(p.Hops))
	return m.Error
}

func (p *Probe) UnmarshalXDRFrom(u *xdr.Unmarshaller) error {
	p.ID = u.UnmarshalUint32()
	p.Hops = int32(u.UnmarshalUint32())
	return u.Error
}

func (p Probe) MarshalXDR() ([]byte, error) {
	buf := make([]byte, ProbeSize)
	m := &xdr.Marshaller{Data: buf}
	err := p.MarshalXDRInto(m)
	return buf, err
}

func (p Probe) MustMarshalXDR() []byte {
	bs, err := p.MarshalXDR()
	if err != nil {
		panic(err)
	}
	return bs
}

// UnmarshalProbe parses a datagram payload as a Probe. It returns an
// error for anything that doesn't have the exact size and shape of a
// probe, including a hop count below one. Such datagrams are expected
// background noise on a shared broadcast medium and are discarded
// silently by callers.
func UnmarshalProbe(bs []byte) (Probe, error) {
	if len(bs) != ProbeSize {
		return Probe{}, errNotAProbe
	}
	var p Probe
	u := &xdr.Unmarshaller{Data: bs}
	if err := p.UnmarshalXDRFrom(u); err != nil {
		return Probe{}, err
	}
	if p.Hops < 1 {
		return Probe{}, errNotAProbe
	}
	return p, nil
}
