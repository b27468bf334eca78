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

// Package ascii provides I/O capabilities for Intcode programs that talk
// text: input and output values in the range 0..127 are ASCII characters.
//
// Programs that print a final numeric result after their text output do so
// with a value outside of the ASCII range. The Writer keeps such values
// apart.
package ascii

import (
	"strings"

	"github.com/db47h/intcode/vm"
)

// MaxASCII is the largest value treated as text.
const MaxASCII = 127

// Encode returns the cells for the given string, one rune per cell, like
// NewReader does. Runes above MaxASCII keep their code point value, so
// Decode(Encode(s)) returns s only if s is plain ASCII.
func Encode(s string) []vm.Cell {
	c := make([]vm.Cell, 0, len(s))
	for _, r := range s {
		c = append(c, vm.Cell(r))
	}
	return c
}

// Lines encodes the given lines, each terminated by a newline.
func Lines(lines ...string) []vm.Cell {
	var c []vm.Cell
	for _, l := range lines {
		c = append(c, Encode(l)...)
		c = append(c, '\n')
	}
	return c
}

// Decode splits the given cells into text and non-text values. Text cells
// are returned as a string, other values are returned in order in rest.
func Decode(cells []vm.Cell) (text string, rest []vm.Cell) {
	var b strings.Builder
	for _, c := range cells {
		if c < 0 || c > MaxASCII {
			rest = append(rest, c)
			continue
		}
		b.WriteByte(byte(c))
	}
	return b.String(), rest
}
