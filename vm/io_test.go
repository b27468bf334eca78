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

package vm_test

import (
	"io"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

// echo reads values and outputs them until it reads 0.
const echo = "3,100,1006,100,10,4,100,1105,1,0,99"

func Test_multireader(t *testing.T) {
	var out vm.Collector
	// readers are pushed on top of the stack, so the last one is read first.
	i := setup(t, echo,
		vm.Input(vm.Cells(4, 5, 0)),
		vm.Input(vm.Cells(1, 2)),
		vm.Input(vm.Cells(3)),
		vm.Output(&out))
	if err := i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	if diff := cmp.Diff([]vm.Cell{3, 1, 2, 4, 5}, out.Values); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func Test_multireader_EOF(t *testing.T) {
	i := setup(t, echo, vm.Input(vm.Cells(1)), vm.Input(vm.Cells(2)))
	err := i.Run()
	if errors.Cause(err) != io.EOF {
		t.Fatalf("Expected io.EOF, got %+v", err)
	}
}

func TestChanIO(t *testing.T) {
	in := make(chan vm.Cell)
	out := make(chan vm.Cell)
	i := setup(t, echo, vm.Input(vm.ChanReader(in)), vm.Output(vm.ChanWriter(out)))
	done := make(chan error, 1)
	go func() {
		done <- i.Run()
		close(out)
	}()
	// request/response over channels: each input produces one output.
	for _, v := range []vm.Cell{7, -7, 1 << 50} {
		in <- v
		if got := <-out; got != v {
			t.Errorf("Expected %d, got %d", v, got)
		}
	}
	close(in)
	if err := <-done; errors.Cause(err) != io.EOF {
		t.Errorf("Expected io.EOF, got %+v", err)
	}
	if _, ok := <-out; ok {
		t.Error("unexpected output")
	}
}

func TestCollector_Last(t *testing.T) {
	var c vm.Collector
	if _, ok := c.Last(); ok {
		t.Error("empty collector has a last value")
	}
	c.WriteCell(1)
	c.WriteCell(2)
	if v, ok := c.Last(); !ok || v != 2 {
		t.Errorf("Expected 2, got %d", v)
	}
}
