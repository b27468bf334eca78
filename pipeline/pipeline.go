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

// Package pipeline chains Intcode VMs: the output of each stage is the input
// of the next one.
//
// Each stage runs the same program on its own goroutine. Its input is primed
// with a setting value, then the first stage receives 0.
package pipeline

import (
	"context"

	"github.com/db47h/intcode/mailbox"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("intcode.pipeline")

// Run runs a pipeline with one stage per setting and returns the last value
// output by the last stage.
func Run(ctx context.Context, img vm.Image, settings ...vm.Cell) (vm.Cell, error) {
	return run(ctx, img, false, settings)
}

// RunFeedback runs a pipeline where the output of the last stage is also fed
// back to the first stage. It returns the last value output by the last stage
// once all stages have halted.
func RunFeedback(ctx context.Context, img vm.Image, settings ...vm.Cell) (vm.Cell, error) {
	return run(ctx, img, true, settings)
}

func run(ctx context.Context, img vm.Image, feedback bool, settings []vm.Cell) (vm.Cell, error) {
	if len(settings) == 0 {
		return 0, errors.New("pipeline: no stages")
	}
	g, ctx := errgroup.WithContext(ctx)
	boxes := make([]*mailbox.Mailbox, len(settings))
	for k, s := range settings {
		boxes[k] = mailbox.New()
		boxes[k].Push(s)
	}
	boxes[0].Push(0)

	var (
		last vm.Cell
		seen bool
	)
	tail := vm.WriterFunc(func(v vm.Cell) error {
		last, seen = v, true
		if feedback {
			boxes[0].Push(v)
		}
		return nil
	})

	for k := range settings {
		var out vm.Writer = tail
		if k < len(settings)-1 {
			out = boxes[k+1].Writer()
		}
		i, err := vm.New(img, vm.Input(boxes[k].Reader(ctx)), vm.Output(out))
		if err != nil {
			return 0, errors.Wrapf(err, "stage %d", k)
		}
		k := k
		g.Go(func() error {
			if err := i.Run(); err != nil {
				return errors.Wrapf(err, "stage %d", k)
			}
			log.Debugf("stage %d halted after %d instructions", k, i.InstructionCount())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	if !seen {
		return 0, errors.New("pipeline: no output")
	}
	return last, nil
}
