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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	Operands a and b are read, d is written to. The "alias" column lists
//	alternate mnemonics accepted by the assembler.
//
//	opcode	asm	alias	operands	description
//	------	---	-----	--------	---------------------------------------------
//	1	add		a b d		d = a + b
//	2	mul		a b d		d = a * b
//	3	in		d		read one value from input and store it at d
//	4	out		a		write a to output
//	5	jt	jnz	a b		jump to b if a != 0
//	6	jf	jz	a b		jump to b if a == 0
//	7	lt		a b d		d = 1 if a < b, else 0
//	8	eq		a b d		d = 1 if a == b, else 0
//	9	arb	rb	a		add a to the relative base
//	99	hlt	halt			halt
//
// Operands:
//
// The addressing mode of an operand is given by its prefix:
//
//	42	position mode: the operand is the address of the value
//	#42	immediate mode: the operand is the value itself
//	~42	relative mode: the operand is an offset from the relative base
//
// Immediate operands are rejected in the destination slot. Since jumps use the
// value of their second operand as target, jumping to a label is usually
// written as "jt #1 #label".
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	( this is a
//	  multiline comment )
//
// Literals and identifiers:
//
// Input is split at white space into tokens. A token that converts to a Go
// integer (see strconv.ParseInt with base 0), a Go character literal between
// single quotes, or the name of a constant defined with .equ is a value. Where
// an instruction is expected, a value is compiled as-is as a raw data cell:
//
//	1,0,0,0,99	( is not valid: tokens are separated by white space only )
//	1 0 0 0 99	( compiles as "add 0 0 0 hlt" )
//
// Any other token where an operand is expected is a label reference.
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and can be referenced
// in any operand or .dat directive without the prefix. Forward references are
// ok:
//
//	:loop	in ~0
//		out ~0
//		jt #1 #loop
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named constant
// or character literal.
//
//	.org <value>
//
// places the next cell at the given address. Skipped cells are zero.
//
//	.dat <value>
//
// compiles the specified value, constant or label address as-is.
package asm
