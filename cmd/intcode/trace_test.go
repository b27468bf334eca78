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

package main

import (
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
)

func TestTracer(t *testing.T) {
	i, err := vm.New(vm.MustParse("1101,0,4,9223372036854775807,1105,1,9223372036854775807"))
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	i.SetOptions(vm.Trace(tracer(i, &sb)))
	if err = i.Run(); !vm.IsFault(err) {
		t.Fatalf("Expected fault, got %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 trace lines, got %q", lines)
	}
	if !strings.HasPrefix(lines[0], "         0\trb=0\tadd #0 #4 9223372036854775807") {
		t.Errorf("bad trace line %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "9223372036854775807\trb=0\t") {
		t.Errorf("bad trace line %q", lines[2])
	}
}
