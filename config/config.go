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

// Package config handles the TOML configuration file of the intcode command.
//
// A sample configuration:
//
//	program = "day23.txt"	# relative to the configuration file
//	inputs = [1, 2, 3]
//	trace = false
//
//	[log]
//	verbosity = 1	# 0 is quiet, up to 4 for debug messages
//	path = "intcode.log"	# defaults to stderr
//
//	[network]
//	size = 50
//	relay = 255
//	idle = -1
//	poll = "100us"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Config is the command configuration.
type Config struct {
	Program string    `toml:"program"`
	Inputs  []vm.Cell `toml:"inputs"`
	Trace   bool      `toml:"trace"`
	Log     Log       `toml:"log"`
	Network Network   `toml:"network"`
}

// Log configures logging.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	Path      string `toml:"path"`
}

// Network configures network mode.
type Network struct {
	Size  int           `toml:"size"`
	Relay vm.Cell       `toml:"relay"`
	Idle  vm.Cell       `toml:"idle"`
	Poll  time.Duration `toml:"poll"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Log: Log{Verbosity: 1},
		Network: Network{
			Relay: network.DefaultRelay,
			Idle:  network.DefaultIdle,
			Poll:  network.DefaultPollInterval,
		},
	}
}

// Parse parses a TOML configuration. Unset values keep their default.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "parse error")
	}
	if c.Network.Size < 0 {
		return nil, errors.Errorf("invalid network size %d", c.Network.Size)
	}
	if c.Network.Poll < 0 {
		return nil, errors.Errorf("invalid poll interval %v", c.Network.Poll)
	}
	return c, nil
}

// Load reads the configuration file at path. A relative program path is
// resolved from the directory of the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	if c.Program != "" && !filepath.IsAbs(c.Program) {
		c.Program = filepath.Join(filepath.Dir(path), c.Program)
	}
	return c, nil
}

// NetworkOptions returns the network options for this configuration.
func (c *Config) NetworkOptions() []network.Option {
	return []network.Option{
		network.RelayAddress(c.Network.Relay),
		network.Idle(c.Network.Idle),
		network.PollInterval(c.Network.Poll),
	}
}
