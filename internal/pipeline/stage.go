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

// Package pipeline drives the seven-stage film simulation: Linearize, MTF,
// Halation, Develop, Grain, Light Leak, Output. Stages run in strict
// sequence against one mutable buffer.Image, each reading the buffer's
// semantic state left by the previous stage.
package pipeline

import (
	"github.com/mlnoga/filmr/internal/backend"
	"github.com/mlnoga/filmr/internal/filmrerr"
)

// funcStage adapts a pair of plain functions to the backend.Stage
// interface, so each stage file can stay a flat pair of CPU/GPU functions
// instead of a type per stage.
type funcStage struct {
	name   string
	cpu    func(req *backend.Request)
	gpuRun func(req *backend.Request) error
}

func (s funcStage) Name() string { return s.name }

func (s funcStage) RunCPU(req *backend.Request) { s.cpu(req) }

func (s funcStage) RunGPU(req *backend.Request) error {
	if s.gpuRun == nil {
		return filmrerr.ErrGPUUnavailable
	}
	return s.gpuRun(req)
}
