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

package asm

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

// mnemonics and aliases. The first entry is used for disassembly.
var opcodes = map[vm.Opcode][]string{
	vm.OpAdd:  {"add"},
	vm.OpMul:  {"mul"},
	vm.OpIn:   {"in"},
	vm.OpOut:  {"out"},
	vm.OpJt:   {"jt", "jnz"},
	vm.OpJf:   {"jf", "jz"},
	vm.OpLt:   {"lt"},
	vm.OpEq:   {"eq"},
	vm.OpArb:  {"arb", "rb"},
	vm.OpHalt: {"hlt", "halt"},
}

var opcodeIndex = make(map[string]vm.Opcode)

func init() {
	for op, names := range opcodes {
		for _, n := range names {
			opcodeIndex[n] = op
		}
	}
}

// operand prefixes per addressing mode.
var modePrefix = [...]string{
	vm.ModePosition:  "",
	vm.ModeImmediate: "#",
	vm.ModeRelative:  "~",
}

// ErrItem is a single assembler error.
type ErrItem struct {
	Pos scanner.Position
	Msg string
}

func (e ErrItem) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrAsm encapsulates errors generated by the assembler.
type ErrAsm []ErrItem

func (e ErrAsm) Error() string {
	var b strings.Builder
	for i, item := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(item.Error())
	}
	return b.String()
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (img vm.Image, err error) {
	p := newParser()
	img, err = p.Parse(name, r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// decodable returns the decoded instruction at img[pc] and true if it can be
// disassembled into an instruction that will assemble back to the exact same
// cells.
func decodable(img []vm.Cell, pc int) (vm.Instruction, bool) {
	word := img[pc]
	in := vm.Decode(word)
	arity := in.Op.Arity()
	if word < 0 || arity < 0 || pc+arity >= len(img) || in.Encode() != word {
		return in, false
	}
	for k, m := range in.Modes {
		if k >= arity && m != vm.ModePosition {
			return in, false
		}
		if m > vm.ModeRelative || (k == in.Op.Dest() && m == vm.ModeImmediate) {
			return in, false
		}
	}
	return in, true
}

// Disassemble writes a disassembly of the cells in the given slice at position
// pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Cells that do not form a valid instruction are written as raw integers.
func Disassemble(img []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew := ici.NewErrWriter(w)

	in, ok := decodable(img, pc)
	if !ok {
		ew.WriteString(strconv.FormatInt(int64(img[pc]), 10))
		return pc + 1, ew.Err
	}
	ew.WriteString(opcodes[in.Op][0])
	pc++
	for k := 0; k < in.Op.Arity(); k++ {
		ew.WriteString(" ")
		ew.WriteString(modePrefix[in.Modes[k]])
		ew.WriteString(strconv.FormatInt(int64(img[pc]), 10))
		pc++
	}
	return pc, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// frist cell (i[0]). It will return any write error.
func DisassembleAll(img []vm.Cell, base int, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	for pc := 0; pc < len(img); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(img, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
