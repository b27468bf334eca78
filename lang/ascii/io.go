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

package ascii

import (
	"bufio"
	"io"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

type reader struct {
	r io.RuneReader
}

func (r *reader) ReadCell() (vm.Cell, error) {
	c, _, err := r.r.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, err
		}
		return 0, errors.Wrap(err, "ascii input")
	}
	return vm.Cell(c), nil
}

// NewReader returns a vm.Reader that reads runes from r, one rune per cell. It
// returns io.EOF at the end of the input.
func NewReader(r io.Reader) vm.Reader {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return &reader{rr}
}

// Writer is a vm.Writer that writes ASCII values as text to an io.Writer.
// Values outside of the ASCII range are not written and can be retrieved with
// Values.
type Writer struct {
	w      *ici.ErrWriter
	values []vm.Cell
}

// NewWriter returns a new Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: ici.NewErrWriter(w)}
}

// WriteCell implements vm.Writer.
func (w *Writer) WriteCell(v vm.Cell) error {
	if v < 0 || v > MaxASCII {
		w.values = append(w.values, v)
		return nil
	}
	w.w.Write([]byte{byte(v)})
	return errors.Wrap(w.w.Err, "ascii output")
}

// Values returns the non-text values written so far.
func (w *Writer) Values() []vm.Cell {
	return w.values
}
