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

package ici

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkg/errors"
)

type limitWriter struct {
	n int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		return 0, io.ErrShortWrite
	}
	w.n -= len(p)
	return len(p), nil
}

func TestErrWriter(t *testing.T) {
	var b bytes.Buffer
	ew := NewErrWriter(&b)
	if NewErrWriter(ew) != ew {
		t.Error("NewErrWriter wrapped an *ErrWriter")
	}
	ew.WriteString("abc")
	if ew.Err != nil || b.String() != "abc" {
		t.Fatalf("got %q, %v", b.String(), ew.Err)
	}

	ew = NewErrWriter(&limitWriter{2})
	ew.WriteString("ab")
	ew.WriteString("c")
	if errors.Cause(ew.Err) != io.ErrShortWrite {
		t.Fatalf("Expected io.ErrShortWrite, got %v", ew.Err)
	}
	// sticky
	if _, err := ew.Write(nil); err != ew.Err {
		t.Errorf("Expected %v, got %v", ew.Err, err)
	}
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }

func TestErrWriter_short(t *testing.T) {
	ew := NewErrWriter(shortWriter{})
	if n, err := ew.WriteString("abcd"); n != 2 || errors.Cause(err) != io.ErrShortWrite {
		t.Fatalf("Expected 2, io.ErrShortWrite, got %d, %v", n, err)
	}
	if _, err := ew.Write(nil); err != ew.Err {
		t.Errorf("Expected %v, got %v", ew.Err, err)
	}
}
