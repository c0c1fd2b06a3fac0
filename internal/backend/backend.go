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

// Package backend selects between the CPU and GPU pipeline executors. Both
// must produce numerically equivalent results within tolerance; GPU falls
// back silently to CPU whenever a device is unavailable.
package backend

import (
	"strings"

	"github.com/mlnoga/filmr/internal/filmrerr"
)

// Name identifies a backend implementation.
type Name string

const (
	CPU Name = "cpu"
	GPU Name = "gpu"
)

// Normalize maps arbitrary user input (CLI flags, REST request fields) to
// a canonical backend identifier.
func Normalize(name string) Name {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cpu":
		return CPU
	case "gpu", "compute":
		return GPU
	default:
		return Name(name)
	}
}

// Supported returns the backends understood by Select.
func Supported() []Name {
	return []Name{CPU, GPU}
}

// Stage is a single pipeline stage, expressed as a pure transform over the
// buffer plus the request-scoped state (stock, config, precomputed spectral
// matrix) it needs. Both backends execute the same ordered list of stages;
// only the dispatch mechanics differ.
type Stage interface {
	Name() string
	RunCPU(req *Request)
	RunGPU(req *Request) error // returns filmrerr.ErrGPUUnavailable if no device
}

// Select resolves a backend name to a dispatcher. Unknown names yield
// ErrBackendUnknown; GPU availability is only discovered at first dispatch,
// per the "process-wide lazy handle" design note, so Select never itself
// fails for GPU.
func Select(name Name) (Dispatch, error) {
	switch Normalize(string(name)) {
	case CPU:
		return cpuDispatch{}, nil
	case GPU:
		return gpuDispatch{}, nil
	default:
		return nil, filmrerr.Wrapf(filmrerr.ErrBackendUnknown, "%q", name)
	}
}

// Dispatch runs one stage against one request, silently falling back to
// CPU on GPU unavailability.
type Dispatch interface {
	Run(stage Stage, req *Request)
}

type cpuDispatch struct{}

func (cpuDispatch) Run(stage Stage, req *Request) {
	stage.RunCPU(req)
}

type gpuDispatch struct{}

func (gpuDispatch) Run(stage Stage, req *Request) {
	if err := stage.RunGPU(req); err != nil {
		req.Log("gpu dispatch unavailable, falling back to cpu", "stage", stage.Name(), "err", err)
		stage.RunCPU(req)
	}
}
