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

import "io"

type cellReader struct {
	cells []Cell
}

func (r *cellReader) ReadCell() (Cell, error) {
	if len(r.cells) == 0 {
		return 0, io.EOF
	}
	v := r.cells[0]
	r.cells = r.cells[1:]
	return v, nil
}

// Cells returns a Reader that returns the given values in order, then io.EOF.
// The slice is not copied.
func Cells(v ...Cell) Reader {
	return &cellReader{v}
}

// Collector is a Writer that appends all values written to it to Values.
type Collector struct {
	Values []Cell
}

// WriteCell implements Writer.
func (c *Collector) WriteCell(v Cell) error {
	c.Values = append(c.Values, v)
	return nil
}

// Last returns the last value written to c and true, or 0 and false if nothing
// has been written yet.
func (c *Collector) Last() (Cell, bool) {
	if len(c.Values) == 0 {
		return 0, false
	}
	return c.Values[len(c.Values)-1], true
}

// ChanReader returns a Reader that receives values from ch. It blocks until a
// value is available and returns io.EOF once ch is closed and drained.
func ChanReader(ch <-chan Cell) Reader {
	return ReaderFunc(func() (Cell, error) {
		v, ok := <-ch
		if !ok {
			return 0, io.EOF
		}
		return v, nil
	})
}

// ChanWriter returns a Writer that sends values to ch.
func ChanWriter(ch chan<- Cell) Writer {
	return WriterFunc(func(v Cell) error {
		ch <- v
		return nil
	})
}
