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

package vm

import (
	"math"

	"github.com/pkg/errors"
)

func (i *Instance) newFault(kind FaultKind, word Cell, param int, addr Cell) *Fault {
	return &Fault{Kind: kind, PC: i.PC, Word: word, Param: param, Addr: addr}
}

// operand returns the raw value of parameter k.
func (i *Instance) operand(word Cell, k int) Cell {
	if i.PC > math.MaxInt64-1-Cell(k) {
		panic(i.newFault(FaultAddress, word, k+1, math.MinInt64))
	}
	return i.mem.Load(i.PC + 1 + Cell(k))
}

// addr returns the effective address of parameter k. Faults are raised with
// panic and recovered in step.
func (i *Instance) addr(word Cell, in Instruction, k int) Cell {
	p := i.operand(word, k)
	switch in.Modes[k] {
	case ModeRelative:
		q := p + i.RB
		if (p < 0) == (i.RB < 0) && (q < 0) != (p < 0) {
			panic(i.newFault(FaultAddress, word, k+1, q))
		}
		p = q
	case ModeImmediate:
		panic(i.newFault(FaultImmediateWrite, word, k+1, 0))
	}
	if p < 0 {
		panic(i.newFault(FaultAddress, word, k+1, p))
	}
	return p
}

// param returns the value of parameter k.
func (i *Instance) param(word Cell, in Instruction, k int) Cell {
	if in.Modes[k] == ModeImmediate {
		return i.operand(word, k)
	}
	return i.mem.Load(i.addr(word, in, k))
}

func b2c(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

// step executes a single instruction and returns its opcode.
func (i *Instance) step() (op Opcode, err error) {
	defer func() {
		if e := recover(); e != nil {
			f, ok := e.(*Fault)
			if !ok {
				panic(e)
			}
			i.fault = errors.Wrapf(f, "fault @pc=%d/%d, rb=%d", f.PC, i.mem.Len(), i.RB)
			err = i.fault
		}
	}()

	if i.PC < 0 {
		panic(i.newFault(FaultAddress, 0, 0, i.PC))
	}
	word := i.mem.Load(i.PC)
	in := Decode(word)
	info, ok := opcodes[in.Op]
	if !ok || word < 0 {
		panic(i.newFault(FaultOpcode, word, 0, 0))
	}
	for k := 0; k < info.arity; k++ {
		if in.Modes[k] > ModeRelative {
			panic(i.newFault(FaultMode, word, k+1, 0))
		}
	}
	if i.trace != nil {
		i.trace(i.PC, in, i.RB)
	}

	switch in.Op {
	case OpAdd:
		i.mem.Store(i.addr(word, in, 2), i.param(word, in, 0)+i.param(word, in, 1))
		i.PC += 4
	case OpMul:
		i.mem.Store(i.addr(word, in, 2), i.param(word, in, 0)*i.param(word, in, 1))
		i.PC += 4
	case OpIn:
		// resolve the destination first so that a faulty instruction does not
		// consume any input.
		dst := i.addr(word, in, 0)
		v, err := i.in()
		if err != nil {
			return in.Op, errors.Wrapf(err, "input @pc=%d", i.PC)
		}
		i.mem.Store(dst, v)
		i.PC += 2
	case OpOut:
		if err := i.out(i.param(word, in, 0)); err != nil {
			return in.Op, errors.Wrapf(err, "output @pc=%d", i.PC)
		}
		i.PC += 2
	case OpJt:
		if v, dst := i.param(word, in, 0), i.param(word, in, 1); v != 0 {
			i.PC = dst
		} else {
			i.PC += 3
		}
	case OpJf:
		if v, dst := i.param(word, in, 0), i.param(word, in, 1); v == 0 {
			i.PC = dst
		} else {
			i.PC += 3
		}
	case OpLt:
		i.mem.Store(i.addr(word, in, 2), b2c(i.param(word, in, 0) < i.param(word, in, 1)))
		i.PC += 4
	case OpEq:
		i.mem.Store(i.addr(word, in, 2), b2c(i.param(word, in, 0) == i.param(word, in, 1)))
		i.PC += 4
	case OpArb:
		i.RB += i.param(word, in, 0)
		i.PC += 2
	case OpHalt:
		i.halted = true
	}
	i.insCount++
	return in.Op, nil
}

func (i *Instance) check() error {
	if i.fault != nil {
		return i.fault
	}
	if i.halted {
		return ErrHalted
	}
	return nil
}

// Step executes a single instruction.
//
// If the instance has already halted, Step returns ErrHalted. If it has been
// terminated by a fault, the same fault is returned again.
func (i *Instance) Step() error {
	if err := i.check(); err != nil {
		return err
	}
	_, err := i.step()
	return err
}

// Run starts execution of the VM and runs it until it halts, in which case it
// returns nil.
//
// If an error occurs, the PC will point to the instruction that triggered
// the error. Errors returned by the input or output capabilities are returned
// wrapped and execution can be resumed by calling Run again. Faults terminate
// the instance: use IsFault to tell them apart.
func (i *Instance) Run() error {
	if err := i.check(); err != nil {
		return err
	}
	for !i.halted {
		if _, err := i.step(); err != nil {
			return err
		}
	}
	return nil
}

// RunToOutput runs the VM until the next output instruction is executed and
// returns the output value and true. If the program halts before producing
// any output, it returns 0 and false.
//
// The value is also sent to the configured output Writer, if any.
func (i *Instance) RunToOutput() (Cell, bool, error) {
	if err := i.check(); err != nil {
		return 0, false, err
	}
	for !i.halted {
		op, err := i.step()
		if err != nil {
			return 0, false, err
		}
		if op == OpOut {
			return i.lastOut, true, nil
		}
	}
	return 0, false, nil
}
