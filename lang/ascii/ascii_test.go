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

package ascii_test

import (
	"io"
	"strings"
	"testing"

	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

// echo reads values and outputs them until it reads 0.
const echo = "3,100,1006,100,10,4,100,1105,1,0,99"

func TestEncode(t *testing.T) {
	if diff := cmp.Diff([]vm.Cell{'G', 'o', ' ', 'é'}, ascii.Encode("Go é")); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	exp := []vm.Cell{'N', 'O', 'T', ' ', 'A', '\n', 'W', 'A', 'L', 'K', '\n'}
	if diff := cmp.Diff(exp, ascii.Lines("NOT A", "WALK")); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if l := ascii.Lines(); len(l) != 0 {
		t.Errorf("Expected no cells, got %v", l)
	}
}

func TestEncode_decode(t *testing.T) {
	text, rest := ascii.Decode(ascii.Encode("walk\n"))
	if text != "walk\n" || len(rest) != 0 {
		t.Errorf("Expected %q, got %q, %v", "walk\n", text, rest)
	}
	// non-ASCII runes do not survive as text
	text, rest = ascii.Decode(ascii.Encode("Go é"))
	if text != "Go " {
		t.Errorf("Expected %q, got %q", "Go ", text)
	}
	if diff := cmp.Diff([]vm.Cell{233}, rest); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDecode(t *testing.T) {
	text, rest := ascii.Decode([]vm.Cell{'o', 'k', '\n', 19349530, -1})
	if text != "ok\n" {
		t.Errorf("Expected %q, got %q", "ok\n", text)
	}
	if diff := cmp.Diff([]vm.Cell{19349530, -1}, rest); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestReader(t *testing.T) {
	r := ascii.NewReader(strings.NewReader("hé"))
	for _, exp := range []vm.Cell{'h', 'é'} {
		v, err := r.ReadCell()
		if err != nil {
			t.Fatal(err)
		}
		if v != exp {
			t.Errorf("Expected %d, got %d", exp, v)
		}
	}
	if _, err := r.ReadCell(); err != io.EOF {
		t.Errorf("Expected io.EOF, got %v", err)
	}
}

func TestWriter(t *testing.T) {
	var b strings.Builder
	w := ascii.NewWriter(&b)
	i, err := vm.New(vm.MustParse(echo),
		vm.Input(vm.Cells(ascii.Encode("Hi!\n")...)),
		vm.Input(vm.Cells(1<<40)), // read first
		vm.Output(w))
	if err != nil {
		t.Fatal(err)
	}
	// the echo program stops on io.EOF since the input has no 0 terminator.
	if err = i.Run(); errors.Cause(err) != io.EOF {
		t.Fatalf("Expected io.EOF, got %+v", err)
	}
	if b.String() != "Hi!\n" {
		t.Errorf("Expected %q, got %q", "Hi!\n", b.String())
	}
	if diff := cmp.Diff([]vm.Cell{1 << 40}, w.Values()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestWriter_error(t *testing.T) {
	w := ascii.NewWriter(failWriter{})
	if err := w.WriteCell('a'); errors.Cause(err) != io.ErrClosedPipe {
		t.Errorf("Expected io.ErrClosedPipe, got %v", err)
	}
	// non-text values never reach the io.Writer
	if err := w.WriteCell(-1); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}
