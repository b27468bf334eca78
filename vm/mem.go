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
	"io"
	"slices"
	"strconv"
	"strings"
)

// denseLimit is the address above which memory is no longer backed by a
// contiguous slice.
const denseLimit = 1 << 20

// Memory is a sparse, zero-initialized memory of Cells. Addresses below
// denseLimit live in a slice that grows on demand; higher addresses are kept in
// a map.
//
// Memory does not check for negative addresses. This is done by the Instance
// before any access.
type Memory struct {
	dense  []Cell
	sparse map[Cell]Cell
	size   Cell
}

func newMemory(img Image) *Memory {
	m := &Memory{
		dense: make([]Cell, len(img), len(img)+len(img)/2),
		size:  Cell(len(img)),
	}
	copy(m.dense, img)
	return m
}

// Load returns the value at address addr. Unset addresses read as 0.
func (m *Memory) Load(addr Cell) Cell {
	if addr < Cell(len(m.dense)) {
		return m.dense[addr]
	}
	if addr < denseLimit {
		return 0
	}
	return m.sparse[addr]
}

// Store sets the value at address addr, growing the memory as needed.
func (m *Memory) Store(addr, v Cell) {
	switch {
	case addr < Cell(len(m.dense)):
		m.dense[addr] = v
	case addr < denseLimit:
		if addr >= Cell(cap(m.dense)) {
			t := make([]Cell, addr+1, 2*(addr+1))
			copy(t, m.dense)
			m.dense = t
		} else {
			m.dense = m.dense[:addr+1]
		}
		m.dense[addr] = v
	default:
		if m.sparse == nil {
			m.sparse = make(map[Cell]Cell)
		}
		m.sparse[addr] = v
	}
	if addr >= m.size {
		m.size = addr + 1
	}
}

// Len returns the address space size in use: the length of the initial image
// or the highest written address + 1, whichever is larger.
func (m *Memory) Len() int {
	return int(m.size)
}

// WriteTo writes the memory contents as a comma separated list of integers.
// Cells stored above the dense range follow, one "address:value" line each, in
// increasing address order.
func (m *Memory) WriteTo(w io.Writer) (n int64, err error) {
	var b []byte
	flush := func() error {
		nn, err := w.Write(b)
		n += int64(nn)
		b = b[:0]
		return err
	}
	for addr, v := range m.dense {
		if addr > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		if len(b) >= 4096 {
			if err = flush(); err != nil {
				return n, err
			}
		}
	}
	addrs := make([]Cell, 0, len(m.sparse))
	for addr := range m.sparse {
		addrs = append(addrs, addr)
	}
	slices.Sort(addrs)
	for _, addr := range addrs {
		b = append(b, '\n')
		b = strconv.AppendInt(b, int64(addr), 10)
		b = append(b, ':')
		b = strconv.AppendInt(b, int64(m.sparse[addr]), 10)
		if len(b) >= 4096 {
			if err = flush(); err != nil {
				return n, err
			}
		}
	}
	return n, flush()
}

func (m *Memory) String() string {
	var sb strings.Builder
	m.WriteTo(&sb)
	return sb.String()
}
