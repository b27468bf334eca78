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
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Image is an initial memory image, i.e. a program.
type Image []Cell

// Parse parses a program in its textual form: a comma separated list of base
// 10 signed integers. Whitespace around values is ignored.
func Parse(s string) (Image, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("Parse: empty program")
	}
	fields := strings.Split(s, ",")
	img := make(Image, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Parse: cell %d", i)
		}
		img[i] = Cell(v)
	}
	return img, nil
}

// MustParse is like Parse but panics on error. It simplifies the declaration
// of known good programs.
func MustParse(s string) Image {
	img, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return img
}

// Read reads a program from r.
func Read(r io.Reader) (Image, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Read")
	}
	return Parse(string(b))
}

// Load loads a program from file fileName.
func Load(fileName string) (Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %v", fileName)
	}
	return img, nil
}

// String returns the program in its textual form.
func (i Image) String() string {
	var b []byte
	for k, v := range i {
		if k > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
	}
	return string(b)
}
