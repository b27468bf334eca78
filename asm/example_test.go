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

package asm_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
)

// Assembles a program that doubles its input values until it reads 0.
func ExampleAssemble() {
	code := `
:loop	in val
	jz val #end	( jump targets are immediate )
	mul val #2 val
	out val
	jnz #1 #loop
:end	hlt
:val	0
`
	img, err := asm.Assemble("double", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(img)

	out, err := vm.RunBatch(img, 1, 2, 3, 0)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out)

	// Output:
	// 3,15,1006,15,14,1002,15,2,15,4,15,1105,1,0,99,0
	// [2 4 6]
}

func ExampleDisassembleAll() {
	img := vm.MustParse("3,15,1006,15,14,1002,15,2,15,4,15,1105,1,0,99,0")
	asm.DisassembleAll(img, 0, os.Stdout)

	fmt.Println("Partial disassembly:")
	// Set base accordingly so that the address column is correct.
	asm.DisassembleAll(img[5:11], 5, os.Stdout)

	// Output:
	//          0	in 15
	//          2	jf 15 #14
	//          5	mul 15 #2 15
	//          9	out 15
	//         11	jt #1 #0
	//         14	hlt
	//         15	0
	// Partial disassembly:
	//          5	mul 15 #2 15
	//          9	out 15
}
