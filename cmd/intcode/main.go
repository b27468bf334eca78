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

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/config"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/pipeline"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("intcode")

// cellList is a flag.Value for comma separated lists of cells.
type cellList []vm.Cell

func (l *cellList) String() string { return vm.Image(*l).String() }
func (l *cellList) Set(s string) error {
	c, err := vm.Parse(s)
	if err != nil {
		return err
	}
	*l = cellList(c)
	return nil
}
func (l *cellList) Get() interface{} { return *l }

var (
	debug     bool
	dump      bool
	trace     bool
	disasm    bool
	asmSource bool
	asciiMode bool
	relay     bool
	feedback  bool
	netSize   int
	verbosity int
	inputs    cellList
	poke      cellList
	stages    cellList
)

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		fmt.Fprintf(os.Stderr, "instructions: %d\n", i.InstructionCount())
		i.Dump(os.Stderr)
	}
	os.Exit(1)
}

func loadImage(fileName string) (vm.Image, error) {
	if !asmSource {
		return vm.Load(fileName)
	}
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	return asm.Assemble(fileName, bufio.NewReader(f))
}

func loadConfig(fileName string) (*config.Config, error) {
	if fileName == "" {
		return config.Default(), nil
	}
	return config.Load(fileName)
}

func setupLogging(cfg *config.Config) {
	v := cfg.Log.Verbosity
	if verbosity >= 0 {
		v = verbosity
	}
	var path *string
	if cfg.Log.Path != "" {
		path = &cfg.Log.Path
	}
	commonlog.Configure(v, path)
}

func main() {
	var err error
	var i *vm.Instance

	stdout := bufio.NewWriter(os.Stdout)

	// flush output, catch and log errors
	defer func() {
		if e := stdout.Flush(); err == nil {
			err = e
		}
		atExit(i, err)
	}()

	var cfgName = flag.String("config", "", "load configuration from TOML file `filename`")
	flag.Var(&inputs, "in", "comma separated list of input `values`")
	flag.BoolVar(&asciiMode, "ascii", false, "ASCII mode: read text from stdin, write text to stdout")
	flag.Var(&poke, "poke", "set cells 1 and 2 to `noun,verb`, run, then print cell 0")
	flag.IntVar(&netSize, "network", 0, "run a network of `N` nodes")
	flag.BoolVar(&relay, "relay", false, "in network mode, run until the relay sends the same value twice in a row")
	flag.Var(&stages, "pipeline", "run a pipeline with the given phase `settings`")
	flag.BoolVar(&feedback, "feedback", false, "in pipeline mode, feed the last stage output back to the first stage")
	flag.BoolVar(&asmSource, "asm", false, "the program file is assembly source")
	flag.BoolVar(&disasm, "disasm", false, "disassemble the program and exit")
	flag.BoolVar(&trace, "trace", false, "trace execution to stderr")
	flag.BoolVar(&dump, "dump", false, "dump the VM state and memory upon exit")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.IntVar(&verbosity, "v", -1, "log verbosity, overrides the configuration file")

	flag.Parse()

	var cfg *config.Config
	if cfg, err = loadConfig(*cfgName); err != nil {
		return
	}
	setupLogging(cfg)

	fileName := cfg.Program
	if flag.NArg() > 0 {
		fileName = flag.Arg(0)
	}
	if fileName == "" {
		err = errors.New("no program file")
		return
	}
	var img vm.Image
	if img, err = loadImage(fileName); err != nil {
		return
	}
	log.Infof("loaded %s: %d cells", fileName, len(img))
	if len(inputs) == 0 {
		inputs = cfg.Inputs
	}
	if netSize == 0 {
		netSize = cfg.Network.Size
	}
	trace = trace || cfg.Trace

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	switch {
	case disasm:
		err = asm.DisassembleAll(img, 0, stdout)
	case len(poke) > 0:
		err = runPoke(img, stdout)
	case netSize > 0:
		err = runNetwork(ctx, img, cfg, stdout)
	case len(stages) > 0:
		err = runPipeline(ctx, img, stdout)
	default:
		i, err = runVM(img, stdout)
	}
}

func runPoke(img vm.Image, w io.Writer) error {
	if len(poke) != 2 {
		return errors.Errorf("-poke: expected noun,verb, got %v", poke.String())
	}
	v, err := vm.PokeAndRun(img, poke[0], poke[1])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, v)
	return err
}

func runNetwork(ctx context.Context, img vm.Image, cfg *config.Config, w io.Writer) (err error) {
	opts := append(cfg.NetworkOptions(), network.Logger(commonlog.GetLogger("intcode.network")))
	n, err := network.New(netSize, opts...)
	if err != nil {
		return err
	}
	if err = n.Start(ctx, img); err != nil {
		return err
	}
	defer func() {
		if e := n.Stop(); err == nil {
			err = e
		}
	}()
	if relay {
		var y vm.Cell
		if y, err = n.RunRelay(ctx); err == nil {
			_, err = fmt.Fprintln(w, y)
		}
		return err
	}
	p, err := n.RunUntilPacketTo(ctx, cfg.Network.Relay)
	if err == nil {
		_, err = fmt.Fprintln(w, p.Y)
	}
	return err
}

func runPipeline(ctx context.Context, img vm.Image, w io.Writer) error {
	run := pipeline.Run
	if feedback {
		run = pipeline.RunFeedback
	}
	v, err := run(ctx, img, stages...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, v)
	return err
}

func runVM(img vm.Image, w *bufio.Writer) (*vm.Instance, error) {
	var opts []vm.Option
	var text *ascii.Writer
	if asciiMode {
		text = ascii.NewWriter(w)
		opts = append(opts,
			vm.Input(ascii.NewReader(bufio.NewReader(flushReader{os.Stdin, w}))),
			vm.Output(text))
	} else {
		ew := w
		opts = append(opts, vm.Output(vm.WriterFunc(func(v vm.Cell) error {
			ew.WriteString(strconv.FormatInt(int64(v), 10))
			return ew.WriteByte('\n')
		})))
	}
	// -in values are read first
	if len(inputs) > 0 {
		opts = append(opts, vm.Input(vm.Cells(inputs...)))
	}

	i, err := vm.New(img, opts...)
	if err != nil {
		return nil, err
	}
	if trace {
		i.SetOptions(vm.Trace(tracer(i, os.Stderr)))
	}
	err = i.Run()
	if asciiMode && errors.Cause(err) == io.EOF {
		err = nil
	}
	if err != nil {
		return i, err
	}
	if text != nil && len(text.Values()) > 0 {
		vs := make([]string, len(text.Values()))
		for k, v := range text.Values() {
			vs[k] = strconv.FormatInt(int64(v), 10)
		}
		fmt.Fprintln(w, strings.Join(vs, "\n"))
	}
	if dump {
		err = i.Dump(w)
	}
	return i, err
}
