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

package network

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("network: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// Record is a packet capture record.
type Record struct {
	Round  uint64 `cbor:"1,keyasint"`
	Relay  bool   `cbor:"2,keyasint,omitempty"` // sent by the relay
	Packet Packet `cbor:"3,keyasint"`
}

func (n *Network) record(r Record) error {
	if n.capture == nil {
		return nil
	}
	return errors.Wrap(n.capture.Encode(r), "packet capture")
}

// ReadCapture reads all records from a packet capture.
func ReadCapture(r io.Reader) ([]Record, error) {
	var recs []Record
	dec := cbor.NewDecoder(r)
	for {
		var rec Record
		err := dec.Decode(&rec)
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return recs, errors.Wrapf(err, "read capture record %d", len(recs))
		}
		recs = append(recs, rec)
	}
}
