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

// Package gpu holds the process-wide GPU device and compute-pipeline
// cache. The device is initialized lazily on first use and held for the
// life of the process; see device_gpu.go (build tag "gpu") for the real
// OpenGL-compute-backed implementation and device_stub.go for the default
// build, which always reports unavailability.
package gpu

import "sync"

// Device is the lazily-initialized, process-wide GPU handle. No pipeline
// stage dispatches work to it; every stage runs on the CPU backend.
type Device struct {
	// opaque; set by the build-tag-specific initializer
	handle interface{}
}

var (
	once       sync.Once
	device     *Device
	initErr    error
)

// Acquire returns the process-wide device, initializing it on first call.
// Safe for concurrent use; all callers after the first block on the same
// sync.Once and observe the same result.
func Acquire() (*Device, error) {
	once.Do(func() {
		device, initErr = initDevice()
	})
	return device, initErr
}
