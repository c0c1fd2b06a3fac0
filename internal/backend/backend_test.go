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

package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlnoga/filmr/internal/filmrerr"
)

type recordingStage struct {
	cpuCalls int
	gpuErr   error
}

func (s *recordingStage) Name() string { return "recording" }
func (s *recordingStage) RunCPU(req *Request) {
	s.cpuCalls++
}
func (s *recordingStage) RunGPU(req *Request) error {
	return s.gpuErr
}

func TestNormalizeAcceptsAliases(t *testing.T) {
	assert.Equal(t, CPU, Normalize(""))
	assert.Equal(t, CPU, Normalize("CPU"))
	assert.Equal(t, GPU, Normalize("gpu"))
	assert.Equal(t, GPU, Normalize(" Compute "))
}

func TestSelectUnknownBackendErrors(t *testing.T) {
	_, err := Select(Name("quantum"))
	require.Error(t, err)
	assert.ErrorIs(t, err, filmrerr.ErrBackendUnknown)
}

func TestCPUDispatchRunsStageDirectly(t *testing.T) {
	d, err := Select(CPU)
	require.NoError(t, err)
	stage := &recordingStage{}
	d.Run(stage, &Request{})
	assert.Equal(t, 1, stage.cpuCalls)
}

func TestGPUDispatchFallsBackToCPUOnUnavailable(t *testing.T) {
	d, err := Select(GPU)
	require.NoError(t, err)
	stage := &recordingStage{gpuErr: filmrerr.ErrGPUUnavailable}

	var logged bool
	req := &Request{Logf: func(msg string, args ...any) { logged = true }}
	d.Run(stage, req)

	assert.Equal(t, 1, stage.cpuCalls)
	assert.True(t, logged)
}

func TestSupportedListsBothBackends(t *testing.T) {
	assert.ElementsMatch(t, []Name{CPU, GPU}, Supported())
}
