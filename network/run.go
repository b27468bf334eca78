// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package network

import (
	"context"
	"runtime"
	"time"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// EventKind is the kind of a network Event.
type EventKind int

// Event kinds.
const (
	EventPacket EventKind = iota // a packet was routed
	EventRelay                   // the relay sent a packet to node 0
	EventIdle                    // idle round, the relay had nothing to send
)

func (k EventKind) String() string {
	switch k {
	case EventPacket:
		return "packet"
	case EventRelay:
		return "relay"
	case EventIdle:
		return "idle"
	}
	return "unknown"
}

// Event is a network event reported by Run.
type Event struct {
	Kind   EventKind
	Round  uint64
	Packet Packet
}

// Run runs coordinator rounds until stop returns true, ctx is done, all nodes
// have stopped or routing fails. Events are reported to stop in the order they
// occur.
//
// The network must have been started. Run does not stop the nodes, use Stop.
func (n *Network) Run(ctx context.Context, stop func(Event) bool) error {
	if n.g == nil {
		return ErrNotStarted
	}
	var t *time.Timer
	if n.poll > 0 {
		t = time.NewTimer(n.poll)
		defer t.Stop()
	}
	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "network run")
		}
		r, err := n.Round()
		if err != nil {
			return errors.Wrapf(err, "round %d", r.N)
		}
		for _, p := range r.Packets {
			if stop(Event{Kind: EventPacket, Round: r.N, Packet: p}) {
				return nil
			}
		}
		switch {
		case r.Relayed != nil:
			if stop(Event{Kind: EventRelay, Round: r.N, Packet: *r.Relayed}) {
				return nil
			}
		case r.Idle:
			if stop(Event{Kind: EventIdle, Round: r.N}) {
				return nil
			}
		}
		if len(r.Packets) > 0 {
			continue
		}
		if n.stopped() {
			return errors.Wrapf(ErrStopped, "round %d", r.N)
		}
		if t == nil {
			runtime.Gosched()
			continue
		}
		t.Reset(n.poll)
		select {
		case <-ctx.Done():
		case <-t.C:
		}
	}
}

// RunUntilPacketTo runs the network until a packet is sent to the given
// address and returns that packet.
func (n *Network) RunUntilPacketTo(ctx context.Context, addr vm.Cell) (Packet, error) {
	var res Packet
	err := n.Run(ctx, func(e Event) bool {
		if e.Kind == EventPacket && e.Packet.Dst == addr {
			res = e.Packet
			return true
		}
		return false
	})
	return res, err
}

// RunRelay runs the network until the relay sends the same Y value to node 0
// twice in a row and returns that value.
func (n *Network) RunRelay(ctx context.Context) (vm.Cell, error) {
	var (
		last vm.Cell
		seen bool
	)
	err := n.Run(ctx, func(e Event) bool {
		if e.Kind != EventRelay {
			return false
		}
		if seen && e.Packet.Y == last {
			n.log.Infof("network %s: relay sent Y=%d twice in a row (round %d)", n.id, last, e.Round)
			return true
		}
		last, seen = e.Packet.Y, true
		return false
	})
	return last, err
}
