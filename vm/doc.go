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

// Package vm implements the Intcode virtual machine.
//
// An Instance executes a program held in a sparse, zero-initialized memory of
// signed 64 bit cells. Instructions are decoded from the cell at the program
// counter: the two least significant decimal digits select the opcode, and
// each further digit gives the addressing mode of the corresponding
// parameter (0: position, 1: immediate, 2: relative).
//
// The VM does not know where its input comes from nor where its output goes.
// Both are capabilities supplied by the caller through the Input and Output
// options: a Reader that may block until a value is available, and a Writer
// that accepts emitted values. Batch, request/response and concurrent wiring
// are all just different Reader/Writer implementations. The mailbox, network
// and pipeline packages build on this to run many instances concurrently.
//
// For performance reasons, the PC is not incremented in a single place; each
// opcode deals with the PC as needed. A fault (unknown opcode, negative
// address, write through an immediate parameter) terminates the instance
// permanently, as does the halt instruction. There is no reset: create a new
// Instance to run a program again.
package vm
