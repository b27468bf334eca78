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
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// ErrHalted is returned when running an instance that has already executed
// a halt instruction.
var ErrHalted = errors.New("halted")

// Instance represents an Intcode VM instance.
type Instance struct {
	PC       Cell // Program Counter (aka. Instruction Pointer)
	RB       Cell // Relative Base
	mem      *Memory
	input    Reader
	output   Writer
	trace    Tracer
	insCount int64
	outCount int64
	lastOut  Cell
	halted   bool
	fault    error
}

// Option interface
type Option func(*Instance) error

// Tracer is the function prototype for execution trace hooks. It is called
// before the execution of each instruction with the current PC, decoded
// instruction and relative base.
type Tracer func(pc Cell, in Instruction, rb Cell)

// Input pushes the given Reader on top of the input stack. See PushInput.
func Input(r Reader) Option {
	return func(i *Instance) error { i.PushInput(r); return nil }
}

// Output configures the output Writer. If no output is configured, values
// emitted by the program are discarded.
func Output(w Writer) Option {
	return func(i *Instance) error {
		i.output = w
		return nil
	}
}

// Trace sets an execution trace hook.
func Trace(t Tracer) Option {
	return func(i *Instance) error {
		i.trace = t
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode Virtual Machine instance.
//
// The image parameter is the initial memory image. It is copied, so the same
// image can be used to create any number of instances.
//
// Options will be set by calling SetOptions.
func New(image Image, opts ...Option) (*Instance, error) {
	i := &Instance{
		mem: newMemory(image),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// Memory returns the instance memory.
func (i *Instance) Memory() *Memory {
	return i.mem
}

// Halted returns true if the instance has executed a halt instruction.
func (i *Instance) Halted() bool {
	return i.halted
}

// Err returns the fault that terminated the instance, if any.
func (i *Instance) Err() error {
	return i.fault
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// OutputCount returns the number of values output so far.
func (i *Instance) OutputCount() int64 {
	return i.outCount
}

// Dump writes the VM registers and memory to the specified io.Writer.
func (i *Instance) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "pc=%d rb=%d\n", i.PC, i.RB); err != nil {
		return errors.Wrap(err, "Dump")
	}
	if _, err := i.mem.WriteTo(w); err != nil {
		return errors.Wrap(err, "Dump")
	}
	_, err := w.Write([]byte{'\n'})
	return errors.Wrap(err, "Dump")
}

// FaultKind classifies faults.
type FaultKind int

// Fault kinds.
const (
	FaultOpcode FaultKind = iota + 1
	FaultMode
	FaultAddress
	FaultImmediateWrite
)

// Fault is the error returned by Run for unrecoverable errors. Use IsFault or
// errors.Cause to get the fault from an error returned by Run.
type Fault struct {
	Kind  FaultKind
	PC    Cell // address of the faulting instruction
	Word  Cell // instruction word
	Param int  // 1-based parameter index, 0 if not applicable
	Addr  Cell // faulting effective address for FaultAddress
}

func (f *Fault) Error() string {
	switch f.Kind {
	case FaultOpcode:
		return fmt.Sprintf("unknown opcode %d in instruction %d", f.Word%100, f.Word)
	case FaultMode:
		return fmt.Sprintf("invalid addressing mode for parameter %d in instruction %d", f.Param, f.Word)
	case FaultAddress:
		if f.Param == 0 {
			return fmt.Sprintf("negative instruction address %d", f.Addr)
		}
		return fmt.Sprintf("negative address %d for parameter %d", f.Addr, f.Param)
	case FaultImmediateWrite:
		return fmt.Sprintf("write to immediate parameter %d in instruction %d", f.Param, f.Word)
	}
	return "unknown fault"
}

// IsFault returns true if the cause of err is a *Fault.
func IsFault(err error) bool {
	_, ok := errors.Cause(err).(*Fault)
	return ok
}
