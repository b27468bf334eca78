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

	"github.com/pkg/errors"
)

// ErrNoInput is returned by Run when an input instruction is executed and no
// input has been configured.
var ErrNoInput = errors.New("no input")

// Reader is the input capability of a VM instance.
//
// ReadCell returns the next input value. It may block until a value becomes
// available. Successive calls return successive values. Any error is returned
// by Run after wrapping; io.EOF is a common way to signal that no more input
// will ever be available.
type Reader interface {
	ReadCell() (Cell, error)
}

// ReaderFunc is an adapter to allow the use of ordinary functions as Readers.
type ReaderFunc func() (Cell, error)

// ReadCell calls f().
func (f ReaderFunc) ReadCell() (Cell, error) { return f() }

// Writer is the output capability of a VM instance.
//
// WriteCell is called exactly once for every output instruction. It should not
// block indefinitely under correct usage.
type Writer interface {
	WriteCell(v Cell) error
}

// WriterFunc is an adapter to allow the use of ordinary functions as Writers.
type WriterFunc func(v Cell) error

// WriteCell calls f(v).
func (f WriterFunc) WriteCell(v Cell) error { return f(v) }

// multiReader reads from a stack of readers. When the reader on top of the stack
// returns io.EOF, it is discarded and the next one is used.
type multiReader struct {
	readers []Reader
}

func (mr *multiReader) ReadCell() (Cell, error) {
	for len(mr.readers) > 0 {
		v, err := mr.readers[0].ReadCell()
		if err != io.EOF {
			return v, err
		}
		if c, ok := mr.readers[0].(io.Closer); ok {
			c.Close()
		}
		mr.readers = mr.readers[1:]
	}
	return 0, io.EOF
}

func (mr *multiReader) pushReader(r Reader) {
	mr.readers = append([]Reader{r}, mr.readers...)
}

// PushInput sets r as the current input Reader for the VM. When this reader
// returns io.EOF, the previously pushed reader will be used.
func (i *Instance) PushInput(r Reader) {
	// dont use a multi reader unless necessary
	switch in := i.input.(type) {
	case nil:
		i.input = r
	case *multiReader:
		in.pushReader(r)
	default:
		i.input = &multiReader{[]Reader{r, i.input}}
	}
}

func (i *Instance) in() (Cell, error) {
	if i.input == nil {
		return 0, ErrNoInput
	}
	return i.input.ReadCell()
}

func (i *Instance) out(v Cell) error {
	if i.output != nil {
		if err := i.output.WriteCell(v); err != nil {
			return err
		}
	}
	i.lastOut = v
	i.outCount++
	return nil
}
