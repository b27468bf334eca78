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
	"sync"
	"sync/atomic"

	"github.com/db47h/intcode/mailbox"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

// Node is a network node: one VM instance with its input and output mailboxes.
//
// In is fed by the coordinator only. Out is written to by the VM only.
type Node struct {
	Addr vm.Cell
	In   *mailbox.Mailbox
	Out  *mailbox.Mailbox

	// values of an incomplete packet, coordinator only.
	pending []vm.Cell

	i       *vm.Instance
	running atomic.Bool
	mu      sync.Mutex
	err     error
}

func newNode(addr vm.Cell) *Node {
	n := &Node{
		Addr: addr,
		In:   mailbox.New(),
		Out:  mailbox.New(),
	}
	n.In.Push(addr)
	return n
}

// Running returns true if the node's VM is running.
func (n *Node) Running() bool {
	return n.running.Load()
}

// Err returns the error that stopped the node's VM. It returns nil if the VM
// is still running or halted normally.
func (n *Node) Err() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.err
}

// Instance returns the node's VM instance. It must not be accessed while the
// node is running.
func (n *Node) Instance() *vm.Instance {
	return n.i
}

func (n *Node) run(ctx context.Context, log commonlog.Logger) {
	err := n.i.Run()
	switch {
	case err == nil:
		log.Debugf("node %d halted after %d instructions", n.Addr, n.i.InstructionCount())
	case ctx.Err() != nil && errors.Cause(err) == ctx.Err():
		// shutdown
	default:
		log.Errorf("node %d stopped: %v", n.Addr, err)
	}
	n.mu.Lock()
	n.err = err
	n.mu.Unlock()
	n.running.Store(false)
}

// quiescent returns true if the node cannot make progress without new input
// and has no output waiting to be routed, including the start of a packet. The
// input mailbox is checked first:
// a node parked on an empty input stays parked until the coordinator pushes
// to it, and a stopped node pushes all its output before clearing the running
// flag.
func (n *Node) quiescent() bool {
	in, waiting := n.In.Snapshot()
	if in > 0 || (!waiting && n.Running()) {
		return false
	}
	return n.Out.Len() == 0 && len(n.pending) == 0
}

// packets appends the values drained from the output mailbox to the pending
// ones and returns all complete packets.
func (n *Node) packets() []Packet {
	n.pending = append(n.pending, n.Out.Drain()...)
	var ps []Packet
	for len(n.pending) >= 3 {
		ps = append(ps, Packet{Src: n.Addr, Dst: n.pending[0], X: n.pending[1], Y: n.pending[2]})
		n.pending = n.pending[3:]
	}
	if len(n.pending) == 0 {
		n.pending = nil
	}
	return ps
}
