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

// Package mailbox implements an unbounded FIFO queue of cells used to connect
// VM instances running on separate goroutines.
//
// A Mailbox supports any number of producers and a single consumer. The
// consumer blocks in Pop while the queue is empty; Push never blocks.
package mailbox

import (
	"context"
	"sync"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Mailbox is a concurrent FIFO queue of cells. The zero value is not usable,
// use New.
type Mailbox struct {
	mu      sync.Mutex
	q       []vm.Cell
	waiting bool
	notify  chan struct{}
}

// New returns a new empty Mailbox.
func New() *Mailbox {
	return &Mailbox{notify: make(chan struct{}, 1)}
}

// Push appends the given values at the end of the queue. The values are
// pushed atomically: a consumer will never see them interleaved with values
// from a concurrent Push.
func (m *Mailbox) Push(v ...vm.Cell) {
	if len(v) == 0 {
		return
	}
	m.mu.Lock()
	m.q = append(m.q, v...)
	m.mu.Unlock()
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// Pop removes and returns the value at the front of the queue. If the queue is
// empty, it blocks until a value is pushed or ctx is done, in which case it
// returns ctx.Err().
func (m *Mailbox) Pop(ctx context.Context) (vm.Cell, error) {
	for {
		m.mu.Lock()
		if len(m.q) > 0 {
			v := m.pop()
			m.waiting = false
			m.mu.Unlock()
			return v, nil
		}
		m.waiting = true
		m.mu.Unlock()

		select {
		case <-m.notify:
		case <-ctx.Done():
			m.mu.Lock()
			m.waiting = false
			m.mu.Unlock()
			return 0, errors.Wrap(ctx.Err(), "mailbox pop")
		}
	}
}

func (m *Mailbox) pop() vm.Cell {
	v := m.q[0]
	m.q = m.q[1:]
	if len(m.q) == 0 {
		// release the backing array
		m.q = nil
	}
	return v
}

// TryPop removes and returns the value at the front of the queue. It returns
// false if the queue is empty.
func (m *Mailbox) TryPop() (vm.Cell, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.q) == 0 {
		return 0, false
	}
	return m.pop(), true
}

// Drain removes and returns all queued values without blocking.
func (m *Mailbox) Drain() []vm.Cell {
	m.mu.Lock()
	q := m.q
	m.q = nil
	m.mu.Unlock()
	return q
}

// Len returns the number of queued values.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.q)
}

// Waiting returns true if the consumer is blocked in Pop on an empty queue.
func (m *Mailbox) Waiting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waiting && len(m.q) == 0
}

// Snapshot returns the queue length and whether the consumer is blocked in Pop,
// both read atomically.
func (m *Mailbox) Snapshot() (n int, waiting bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.q), m.waiting
}

// Reader returns a vm.Reader that pops values from the mailbox. Reads fail
// once ctx is done.
func (m *Mailbox) Reader(ctx context.Context) vm.Reader {
	return vm.ReaderFunc(func() (vm.Cell, error) {
		return m.Pop(ctx)
	})
}

// Writer returns a vm.Writer that pushes values to the mailbox.
func (m *Mailbox) Writer() vm.Writer {
	return vm.WriterFunc(func(v vm.Cell) error {
		m.Push(v)
		return nil
	})
}
