// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pipeline

import (
	"github.com/mlnoga/filmr/internal/backend"
	"github.com/mlnoga/filmr/internal/buffer"
	"github.com/mlnoga/filmr/internal/filmstock"
	"github.com/mlnoga/filmr/internal/simconfig"
)

// stages is the fixed execution order: Linearize, MTF, Halation, Develop,
// Grain, Light Leak, Output. No stage reorders or skips another's place in
// this sequence; each stage internally decides whether it has work to do.
var stages = []backend.Stage{
	linearizeStage,
	mtfStage,
	halationStage,
	developStage,
	grainStage,
	lightLeakStage,
	outputStage,
}

// Process runs the full pipeline against img in place, selecting CPU or
// GPU execution per config.UseGPU (falling back silently to CPU if no GPU
// device is available). img is mutated and also returned for convenience.
func Process(img *buffer.Image, stock filmstock.Stock, cfg simconfig.Config, logf func(string, ...any)) *buffer.Image {
	return ProcessWithProgress(img, stock, cfg, logf, nil)
}

// ProcessWithProgress is Process plus an optional onStage hook invoked
// after each stage completes, for callers (internal/worker) that report
// per-stage progress to subscribers.
func ProcessWithProgress(img *buffer.Image, stock filmstock.Stock, cfg simconfig.Config, logf func(string, ...any), onStage func(name string, index, total int)) *buffer.Image {
	req := &backend.Request{Image: img, Stock: stock, Config: cfg, Logf: logf}

	name := backend.CPU
	if cfg.UseGPU {
		name = backend.GPU
	}
	dispatch, err := backend.Select(name)
	if err != nil {
		dispatch, _ = backend.Select(backend.CPU)
	}

	for i, stage := range stages {
		dispatch.Run(stage, req)
		if onStage != nil {
			onStage(stage.Name(), i+1, len(stages))
		}
	}
	return img
}
