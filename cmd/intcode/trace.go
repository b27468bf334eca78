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
	"bufio"
	"fmt"
	"io"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

// tracer returns a trace hook that writes the disassembly of each instruction
// to w.
func tracer(i *vm.Instance, w io.Writer) vm.Tracer {
	ew := ici.NewErrWriter(w)
	var cells [1 + vm.MaxParams]vm.Cell
	return func(pc vm.Cell, in vm.Instruction, rb vm.Cell) {
		if ew.Err != nil {
			return
		}
		m := i.Memory()
		for k := range cells {
			cells[k] = 0
			if a := pc + vm.Cell(k); a >= 0 {
				cells[k] = m.Load(a)
			}
		}
		fmt.Fprintf(ew, "% 10d\trb=%d\t", pc, rb)
		asm.Disassemble(cells[:], 0, ew)
		ew.Write([]byte{'\n'})
	}
}

// flushReader flushes w before reading from r, so that prompts are visible
// before the VM blocks on input.
type flushReader struct {
	r io.Reader
	w *bufio.Writer
}

func (f flushReader) Read(p []byte) (int, error) {
	if err := f.w.Flush(); err != nil {
		return 0, err
	}
	return f.r.Read(p)
}
