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

//go:build gpu

package gpu

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type glHandle struct {
	window  *glfw.Window
	kernels map[string]uint32
}

func init() {
	// GLFW and the GL context it creates must live on one OS thread for
	// the lifetime of the process.
	runtime.LockOSThread()
}

func initDevice() (*Device, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("gpu: glfw init: %w", err)
	}
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	win, err := glfw.CreateWindow(1, 1, "filmr-compute", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("gpu: create offscreen context: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gpu: gl init: %w", err)
	}
	return &Device{handle: &glHandle{window: win, kernels: map[string]uint32{}}}, nil
}

// DispatchCompute dispatches width/16 x height/16 compute workgroups of the
// named kernel, looked up by name in the device's kernel table. Nothing in
// this package compiles or registers kernel programs, so the table starts
// empty and an unregistered name yields an error.
func (d *Device) DispatchCompute(width, height int, kernel string) error {
	h := d.handle.(*glHandle)
	prog, ok := h.kernels[kernel]
	if !ok {
		return fmt.Errorf("gpu: kernel %q not registered", kernel)
	}
	gl.UseProgram(prog)
	groupsX := (width + 15) / 16
	groupsY := (height + 15) / 16
	gl.DispatchCompute(uint32(groupsX), uint32(groupsY), 1)
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT)
	return nil
}
