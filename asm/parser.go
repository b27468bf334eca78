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
	"io"
	"strconv"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

// parser states
const (
	stateInstruction = iota // accept anything
	stateOperand            // need an operand for the current instruction
	stateOrg                // accept integer or const (for .org directive)
	stateEqu                // accept integer or const (for .equ value)
	stateDat                // accept integer, const or label (for .dat)
)

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type parser struct {
	i       vm.Image
	pc      int
	size    int
	s       scanner.Scanner
	labels  map[string]*label
	consts  map[string]labelSite
	cstName string
	cstPos  scanner.Position
	errs    ErrAsm

	// instruction being assembled
	insPC int
	op    vm.Opcode
	param int
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]labelSite)
	return p
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

func (p *parser) error(msg string) {
	pos := p.s.Position
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	p.errorAt(pos, msg)
}

func (p *parser) errorAt(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, ErrItem{pos, msg})
	}
}

func (p *parser) useLabel(name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{
			// use current position as valid temp position
			labelSite{p.s.Position, -1},
			nil,
		}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{p.s.Position, p.pc})
}

// value converts s to an integer: integer literal, character literal or named
// constant.
func (p *parser) value(s string) (vm.Cell, bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			p.error("Invalid character literal " + s)
			return 0, true
		}
		return vm.Cell(r), true
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true
	}
	return 0, false
}

// valueOrLabel writes the value of s, or a reference to label s.
func (p *parser) valueOrLabel(s string) {
	if s == "" {
		p.error("Missing operand value")
		return
	}
	if v, ok := p.value(s); ok {
		p.write(v)
		return
	}
	if _, ok := opcodeIndex[s]; ok || s[0] == ':' || s[0] == '.' {
		p.error("Unexpected token as argument: " + s)
		p.write(0)
		return
	}
	p.useLabel(s)
	p.write(0)
}

func (p *parser) operand(s string) {
	mode := vm.ModePosition
	switch s[0] {
	case '#':
		mode, s = vm.ModeImmediate, s[1:]
	case '~':
		mode, s = vm.ModeRelative, s[1:]
	}
	if mode == vm.ModeImmediate && p.param == p.op.Dest() {
		p.error("Immediate operand used as destination of " + p.op.String())
	}
	in := vm.Decode(p.i[p.insPC])
	in.Modes[p.param] = mode
	p.i[p.insPC] = in.Encode()
	p.valueOrLabel(s)
	p.param++
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) (vm.Image, error) {
	var state int

	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.error(msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF && len(p.errs) < maxErrors; tok = p.s.Scan() {
		if tok != scanner.Ident {
			p.error("Unexpected character " + strconv.QuoteRune(tok))
			continue
		}
		s := p.s.TokenText()

		if s == "(" {
			// skip comments
			for ; tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
			}
			continue
		}

		switch state {
		case stateOperand:
			p.operand(s)
			if p.param >= p.op.Arity() {
				state = stateInstruction
			}
			continue
		case stateOrg, stateEqu:
			v, ok := p.value(s)
			if !ok {
				p.error("Expected integer or constant, got " + s)
			} else if state == stateOrg {
				if v < 0 {
					p.error("Negative .org address " + s)
				} else {
					p.pc = int(v)
				}
			} else {
				p.consts[p.cstName] = labelSite{p.cstPos, int(v)}
			}
			state = stateInstruction
			continue
		case stateDat:
			p.valueOrLabel(s)
			state = stateInstruction
			continue
		}

		// stateInstruction
		if v, ok := p.value(s); ok {
			// raw data
			p.write(v)
			continue
		}
		switch s[0] {
		case ':':
			n := s[1:]
			if len(n) == 0 {
				p.error("Empty label name")
				continue
			}
			if cst, ok := p.consts[n]; ok {
				p.error("Label redefinition: " + n + ", previously defined as a constant here: " + cst.pos.String())
				continue
			}
			if l, ok := p.labels[n]; ok {
				if l.address != -1 {
					p.error("Label redefinition: " + n + ", previous definition here: " + l.pos.String())
					continue
				}
				l.address = p.pc
				l.pos = p.s.Position
			} else {
				p.labels[n] = &label{labelSite{p.s.Position, p.pc}, nil}
			}
		case '.':
			switch s {
			case ".org":
				state = stateOrg
			case ".dat":
				state = stateDat
			case ".equ":
				t := p.s.Scan()
				if t != scanner.Ident {
					p.error(".equ: expected identifier, got " + p.s.TokenText())
					continue
				}
				p.cstName = p.s.TokenText()
				if l, ok := p.labels[p.cstName]; ok {
					p.error(".equ: redefinition of " + p.cstName + ", previously defined/used as a label here: " + l.pos.String())
					continue
				}
				p.cstPos = p.s.Position
				state = stateEqu
			default:
				p.error("Unknown dot directive: " + s)
			}
		default:
			op, ok := opcodeIndex[s]
			if !ok {
				p.error("Unknown instruction " + s)
				continue
			}
			p.insPC, p.op, p.param = p.pc, op, 0
			p.write(vm.Cell(op))
			if op.Arity() > 0 {
				state = stateOperand
			}
		}
	}

	if state != stateInstruction && len(p.errs) == 0 {
		p.error("Unexpected end of input")
	}

	// write labels
	for n, l := range p.labels {
		if l.address == -1 {
			for _, u := range l.uses {
				p.errorAt(u.pos, "Undefined label "+n)
			}
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return p.i[:p.size], nil
}
