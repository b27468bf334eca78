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

package mailbox_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/db47h/intcode/mailbox"
	"github.com/db47h/intcode/vm"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestFIFO(t *testing.T) {
	m := mailbox.New()
	m.Push(1, 2)
	m.Push(3)
	if m.Len() != 3 {
		t.Fatalf("Expected len 3, got %d", m.Len())
	}
	ctx := context.Background()
	for _, exp := range []vm.Cell{1, 2, 3} {
		v, err := m.Pop(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if v != exp {
			t.Errorf("Expected %d, got %d", exp, v)
		}
	}
	if _, ok := m.TryPop(); ok {
		t.Error("TryPop on empty mailbox succeeded")
	}
}

func TestDrain(t *testing.T) {
	m := mailbox.New()
	if d := m.Drain(); len(d) != 0 {
		t.Errorf("Expected empty drain, got %v", d)
	}
	m.Push(4, 5, 6)
	if v, ok := m.TryPop(); !ok || v != 4 {
		t.Errorf("Expected 4, got %d", v)
	}
	if diff := cmp.Diff([]vm.Cell{5, 6}, m.Drain()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if m.Len() != 0 {
		t.Errorf("Expected empty mailbox, got %d values", m.Len())
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timeout")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestPop_blocks(t *testing.T) {
	m := mailbox.New()
	res := make(chan vm.Cell)
	go func() {
		v, err := m.Pop(context.Background())
		if err != nil {
			t.Error(err)
		}
		res <- v
	}()
	waitFor(t, m.Waiting)
	if n, w := m.Snapshot(); n != 0 || !w {
		t.Errorf("Expected empty waiting mailbox, got %d, %v", n, w)
	}
	m.Push(42)
	if v := <-res; v != 42 {
		t.Errorf("Expected 42, got %d", v)
	}
	if m.Waiting() {
		t.Error("consumer still waiting")
	}
}

func TestPop_cancel(t *testing.T) {
	m := mailbox.New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		_, err := m.Pop(ctx)
		done <- err
	}()
	waitFor(t, m.Waiting)
	cancel()
	if err := <-done; errors.Cause(err) != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if m.Waiting() {
		t.Error("consumer still waiting")
	}
}

func TestConcurrentPush(t *testing.T) {
	const producers, count = 8, 1000
	m := mailbox.New()
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for k := 0; k < count; k++ {
				// pairs must not interleave
				m.Push(vm.Cell(p), vm.Cell(k))
			}
		}(p)
	}
	next := make([]vm.Cell, producers)
	ctx := context.Background()
	for n := 0; n < producers*count; n++ {
		p, err := m.Pop(ctx)
		if err != nil {
			t.Fatal(err)
		}
		k, err := m.Pop(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if k != next[p] {
			t.Fatalf("producer %d: expected %d, got %d", p, next[p], k)
		}
		next[p]++
	}
	wg.Wait()
}

// two VMs connected by mailboxes: one doubles its input, the other adds 1.
func TestVMAdapters(t *testing.T) {
	ctx := context.Background()
	in, mid, out := mailbox.New(), mailbox.New(), mailbox.New()
	a, err := vm.New(vm.MustParse("3,0,1002,0,2,0,4,0,99"), vm.Input(in.Reader(ctx)), vm.Output(mid.Writer()))
	if err != nil {
		t.Fatal(err)
	}
	b, err := vm.New(vm.MustParse("3,0,1001,0,1,0,4,0,99"), vm.Input(mid.Reader(ctx)), vm.Output(out.Writer()))
	if err != nil {
		t.Fatal(err)
	}
	errs := make(chan error, 2)
	go func() { errs <- a.Run() }()
	go func() { errs <- b.Run() }()
	in.Push(20)
	for k := 0; k < 2; k++ {
		if err := <-errs; err != nil {
			t.Fatalf("%+v", err)
		}
	}
	if v, ok := out.TryPop(); !ok || v != 41 {
		t.Errorf("Expected 41, got %d", v)
	}
}
