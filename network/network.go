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

// Package network runs a network of Intcode VMs, each on its own goroutine,
// exchanging packets through mailboxes.
//
// Nodes have addresses 0 to N-1. A node sends a packet by writing three values
// to its output: the destination address, X and Y. A coordinator loop drains
// the output mailboxes, routes packets to the input mailboxes of their
// destination and feeds nodes waiting on an empty input with an idle value
// (-1 by default).
//
// Packets sent to the relay address (255 by default) are stored by the relay:
// only the last one is kept. When the whole network is idle, the relay sends
// that packet to node 0.
package network

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/db47h/intcode/vm"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

// Errors returned by the coordinator.
var (
	ErrNoRoute    = errors.New("no route to host")
	ErrStopped    = errors.New("all nodes stopped")
	ErrNotStarted = errors.New("network not started")
)

// Default values.
const (
	DefaultRelay        vm.Cell = 255
	DefaultIdle         vm.Cell = -1
	DefaultPollInterval         = 100 * time.Microsecond
)

// Packet is a network packet.
type Packet struct {
	Src vm.Cell `cbor:"1,keyasint"`
	Dst vm.Cell `cbor:"2,keyasint"`
	X   vm.Cell `cbor:"3,keyasint"`
	Y   vm.Cell `cbor:"4,keyasint"`
}

func (p Packet) String() string {
	return fmt.Sprintf("%d->%d (%d, %d)", p.Src, p.Dst, p.X, p.Y)
}

// Round is the result of one coordinator round.
type Round struct {
	N       uint64
	Packets []Packet // routed packets, including those sent to the relay
	Idle    bool     // all nodes were quiescent and no packet was routed
	Relayed *Packet  // packet sent by the relay to node 0 on an idle round
}

// Option functions configure a Network.
type Option func(*Network) error

// Logger sets the network logger.
func Logger(l commonlog.Logger) Option {
	return func(n *Network) error {
		n.log = l
		return nil
	}
}

// RelayAddress sets the address of the relay. It must not be a node address.
func RelayAddress(addr vm.Cell) Option {
	return func(n *Network) error {
		n.relayAddr = addr
		return nil
	}
}

// Idle sets the value fed to nodes waiting on an empty input.
func Idle(v vm.Cell) Option {
	return func(n *Network) error {
		n.idle = v
		return nil
	}
}

// PollInterval sets the time Run waits after a round where nothing happened.
func PollInterval(d time.Duration) Option {
	return func(n *Network) error {
		if d < 0 {
			return errors.Errorf("negative poll interval %v", d)
		}
		n.poll = d
		return nil
	}
}

// Capture records every routed packet to w as CBOR. See ReadCapture.
func Capture(w io.Writer) Option {
	return func(n *Network) error {
		n.capture = encMode.NewEncoder(w)
		return nil
	}
}

// Network is a network of VMs. All methods except Stop must be called from a
// single coordinator goroutine.
type Network struct {
	nodes     []*Node
	relayAddr vm.Cell
	idle      vm.Cell
	poll      time.Duration
	log       commonlog.Logger
	capture   *cbor.Encoder
	id        uuid.UUID

	relay  *Packet
	rounds uint64

	g      *errgroup.Group
	cancel context.CancelFunc
}

// New creates a new network of the given size. The input mailbox of each node
// is primed with the node's address.
func New(size int, opts ...Option) (*Network, error) {
	if size <= 0 {
		return nil, errors.Errorf("invalid network size %d", size)
	}
	n := &Network{
		relayAddr: DefaultRelay,
		idle:      DefaultIdle,
		poll:      DefaultPollInterval,
		log:       commonlog.GetLogger("intcode.network"),
		id:        uuid.New(),
	}
	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}
	if n.relayAddr >= 0 && n.relayAddr < vm.Cell(size) {
		return nil, errors.Errorf("relay address %d conflicts with node address", n.relayAddr)
	}
	n.nodes = make([]*Node, size)
	for k := range n.nodes {
		n.nodes[k] = newNode(vm.Cell(k))
	}
	return n, nil
}

// ID returns the network's run ID.
func (n *Network) ID() uuid.UUID {
	return n.id
}

// Size returns the number of nodes.
func (n *Network) Size() int {
	return len(n.nodes)
}

// Node returns the node with the given address, or nil if there is no such
// node.
func (n *Network) Node(addr vm.Cell) *Node {
	if addr < 0 || addr >= vm.Cell(len(n.nodes)) {
		return nil
	}
	return n.nodes[addr]
}

// Start loads the given image in every node and starts them, each on its own
// goroutine. The nodes are stopped when ctx is done or Stop is called.
//
// A node whose VM stops with an error is logged and its error can be retrieved
// with Node.Err. Other nodes keep running.
func (n *Network) Start(ctx context.Context, img vm.Image) error {
	if n.g != nil {
		return errors.New("network already started")
	}
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	for _, nd := range n.nodes {
		i, err := vm.New(img, vm.Input(nd.In.Reader(ctx)), vm.Output(nd.Out.Writer()))
		if err != nil {
			cancel()
			return errors.Wrapf(err, "node %d", nd.Addr)
		}
		nd.i = i
		nd.running.Store(true)
	}
	n.g, n.cancel = g, cancel
	for _, nd := range n.nodes {
		nd := nd
		g.Go(func() error {
			nd.run(ctx, n.log)
			return nil
		})
	}
	n.log.Infof("network %s: started %d nodes", n.id, len(n.nodes))
	return nil
}

// Stop stops all nodes and waits for their goroutines to exit.
func (n *Network) Stop() error {
	if n.g == nil {
		return nil
	}
	n.cancel()
	err := n.g.Wait()
	n.log.Infof("network %s: stopped after %d rounds", n.id, n.rounds)
	return err
}

// Send routes the given packet as if it had been sent by node p.Src.
func (n *Network) Send(p Packet) error {
	return n.route(p, n.rounds)
}

func (n *Network) route(p Packet, round uint64) error {
	switch {
	case p.Dst == n.relayAddr:
		n.log.Debugf("network %s: relay stores %v", n.id, p)
		n.relay = &p
	case p.Dst >= 0 && p.Dst < vm.Cell(len(n.nodes)):
		n.nodes[p.Dst].In.Push(p.X, p.Y)
	default:
		n.log.Warningf("network %s: dropped %v", n.id, p)
		return errors.Wrapf(ErrNoRoute, "packet %v", p)
	}
	return n.record(Record{Round: round, Packet: p})
}

// Round runs one coordinator round:
//
//  1. drain the output of all nodes and assemble packets.
//  2. route packets in order.
//  3. if no packet was routed and all nodes are quiescent, the round is idle
//     and the relay sends its last packet, if any, to node 0.
//  4. otherwise nodes waiting on an empty input receive the idle value.
//
// If a packet cannot be routed, Round still routes the others and returns the
// first error.
func (n *Network) Round() (Round, error) {
	var err error
	n.rounds++
	r := Round{N: n.rounds}
	for _, nd := range n.nodes {
		r.Packets = append(r.Packets, nd.packets()...)
	}
	for _, p := range r.Packets {
		if e := n.route(p, r.N); e != nil && err == nil {
			err = e
		}
	}

	if len(r.Packets) == 0 && n.quiescent() {
		r.Idle = true
		if n.relay != nil {
			p := Packet{Src: n.relayAddr, Dst: 0, X: n.relay.X, Y: n.relay.Y}
			n.nodes[0].In.Push(p.X, p.Y)
			r.Relayed = &p
			n.log.Debugf("network %s: round %d: relay sends %v", n.id, r.N, p)
			if e := n.record(Record{Round: r.N, Relay: true, Packet: p}); e != nil && err == nil {
				err = e
			}
			return r, err
		}
	}

	for _, nd := range n.nodes {
		if nd.In.Waiting() {
			nd.In.Push(n.idle)
		}
	}
	return r, err
}

func (n *Network) quiescent() bool {
	for _, nd := range n.nodes {
		if !nd.quiescent() {
			return false
		}
	}
	return true
}

// stopped returns true if no node is running and there is no output left to
// route.
func (n *Network) stopped() bool {
	for _, nd := range n.nodes {
		if nd.Running() || nd.Out.Len() > 0 {
			return false
		}
	}
	return true
}
