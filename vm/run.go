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

import "github.com/pkg/errors"

// RunBatch runs img to completion with the given input values and returns all
// values output by the program.
func RunBatch(img Image, inputs ...Cell) ([]Cell, error) {
	var out Collector
	i, err := New(img, Input(Cells(inputs...)), Output(&out))
	if err != nil {
		return nil, err
	}
	err = i.Run()
	return out.Values, err
}

// PokeAndRun sets memory addresses 1 and 2 to noun and verb, runs img to
// completion and returns the value at address 0.
func PokeAndRun(img Image, noun, verb Cell) (Cell, error) {
	i, err := New(img)
	if err != nil {
		return 0, err
	}
	i.mem.Store(1, noun)
	i.mem.Store(2, verb)
	if err = i.Run(); err != nil {
		return 0, err
	}
	return i.mem.Load(0), nil
}

// Diagnose runs img with a single input value up front until the first
// output instruction and returns the output value.
func Diagnose(img Image, input Cell) (Cell, error) {
	i, err := New(img, Input(Cells(input)))
	if err != nil {
		return 0, err
	}
	v, ok, err := i.RunToOutput()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.New("Diagnose: program halted without output")
	}
	return v, nil
}
