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

package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGaussianPeaksAtCenterWavelength(t *testing.T) {
	s := NewGaussian(540, 30)
	peakIdx := 0
	for i := 1; i < Bins; i++ {
		if s.Power[i] > s.Power[peakIdx] {
			peakIdx = i
		}
	}
	assert.InDelta(t, 540, Wavelength(peakIdx), LambdaStep)
}

func TestZeroFwhmEncodesInsensitivity(t *testing.T) {
	s := NewGaussianWithAmplitude(0, 0, 1.0)
	for _, p := range s.Power {
		assert.Equal(t, 0.0, p)
	}
}

func TestIntegrateProductOfIdenticalFlatSpectraScalesWithBins(t *testing.T) {
	a := NewFlat(2.0)
	b := NewFlat(3.0)
	got := IntegrateProduct(a, b)
	want := 2.0 * 3.0 * float64(Bins) * LambdaStep
	assert.InDelta(t, want, got, 1e-9)
}
