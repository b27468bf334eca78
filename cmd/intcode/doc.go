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

// The intcode command line tool runs Intcode programs, alone, chained in a
// pipeline or as a network.
//
// Usage:
//
//	intcode [flags] [program]
//
//	-ascii
//		  ASCII mode: read text from stdin, write text to stdout
//	-asm
//		  the program file is assembly source
//	-config filename
//		  load configuration from TOML file filename
//	-debug
//		  enable debug diagnostics
//	-disasm
//		  disassemble the program and exit
//	-dump
//		  dump the VM state and memory upon exit
//	-feedback
//		  in pipeline mode, feed the last stage output back to the first stage
//	-in values
//		  comma separated list of input values
//	-network N
//		  run a network of N nodes
//	-pipeline settings
//		  run a pipeline with the given phase settings
//	-poke noun,verb
//		  set cells 1 and 2 to noun,verb, run, then print cell 0
//	-relay
//		  in network mode, run until the relay sends the same value twice in a row
//	-trace
//		  trace execution to stderr
//	-v int
//		  log verbosity, overrides the configuration file (default -1)
//
// The program file contains comma separated integers. If no program is given
// on the command line, the program from the configuration file is used.
//
// By default, the program reads the -in values then stops with an error if it
// needs more input. Output values are printed one per line.
//
// -ascii: input is read from stdin, one character per value, after the -in
// values. Output values in the ASCII range are printed as text. Other values
// are printed as numbers once the program halts.
//
// -network: runs one instance of the program per node. Nodes boot with their
// address as first input and send packets as triples of output values:
// destination, X and Y. The command prints the Y value of the first packet
// sent to the relay address (255 by default). With -relay, it prints the
// first Y value sent twice in a row by the relay to node 0.
//
// -pipeline: runs one instance of the program per setting. The first input of
// each instance is its setting, then the first instance receives 0. Prints the
// last value output by the last instance.
//
// -debug: prints full error stack traces and dumps the VM state should a VM
// fail.
//
// See package github.com/db47h/intcode/config for the configuration file
// format.
package main
