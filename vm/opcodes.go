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

import "strconv"

// Opcode is the operation selector decoded from the two least significant
// decimal digits of an instruction word.
type Opcode int

// Intcode Virtual Machine Opcodes.
const (
	OpAdd  Opcode = 1
	OpMul  Opcode = 2
	OpIn   Opcode = 3
	OpOut  Opcode = 4
	OpJt   Opcode = 5
	OpJf   Opcode = 6
	OpLt   Opcode = 7
	OpEq   Opcode = 8
	OpArb  Opcode = 9
	OpHalt Opcode = 99
)

type opInfo struct {
	name  string
	arity int
	dest  int // index of the written parameter, -1 if none
}

var opcodes = map[Opcode]opInfo{
	OpAdd:  {"add", 3, 2},
	OpMul:  {"mul", 3, 2},
	OpIn:   {"in", 1, 0},
	OpOut:  {"out", 1, -1},
	OpJt:   {"jt", 2, -1},
	OpJf:   {"jf", 2, -1},
	OpLt:   {"lt", 3, 2},
	OpEq:   {"eq", 3, 2},
	OpArb:  {"arb", 1, -1},
	OpHalt: {"hlt", 0, -1},
}

// Valid returns true if op is part of the instruction set.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Arity returns the number of parameters of op, or -1 for unknown opcodes.
func (op Opcode) Arity() int {
	if info, ok := opcodes[op]; ok {
		return info.arity
	}
	return -1
}

// Dest returns the index of the parameter op writes to, or -1 if op does not
// write to memory.
func (op Opcode) Dest() int {
	if info, ok := opcodes[op]; ok {
		return info.dest
	}
	return -1
}

func (op Opcode) String() string {
	if info, ok := opcodes[op]; ok {
		return info.name
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// Mode is a parameter addressing mode.
type Mode int

// Addressing modes.
const (
	ModePosition Mode = iota
	ModeImmediate
	ModeRelative
)

func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeImmediate:
		return "immediate"
	case ModeRelative:
		return "relative"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// MaxParams is the largest arity of any opcode.
const MaxParams = 3

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Opcode
	Modes [MaxParams]Mode
}

// Decode splits an instruction word into its opcode and parameter modes.
// Missing mode digits default to ModePosition. Decode does not validate the
// result; see Opcode.Valid.
func Decode(word Cell) Instruction {
	var in Instruction
	in.Op = Opcode(word % 100)
	word /= 100
	for k := range in.Modes {
		in.Modes[k] = Mode(word % 10)
		word /= 10
	}
	return in
}

// Encode returns the instruction word for in. It is the inverse of Decode for
// valid instructions.
func (in Instruction) Encode() Cell {
	w := Cell(in.Op)
	m := Cell(100)
	for _, mode := range in.Modes {
		w += Cell(mode) * m
		m *= 10
	}
	return w
}
