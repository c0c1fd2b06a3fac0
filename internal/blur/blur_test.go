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

package blur

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlnoga/filmr/internal/buffer"
)

func TestRadiusForSigmaMinimumOne(t *testing.T) {
	assert.Equal(t, 1, RadiusForSigma(0.1))
	assert.GreaterOrEqual(t, RadiusForSigma(10), 5)
}

func TestGaussianNoOpForNonPositiveSigma(t *testing.T) {
	img := buffer.New(4, 4)
	img.Set(1, 1, 10, 20, 30)
	Gaussian(img, 0)
	r, g, b := img.At(1, 1)
	assert.Equal(t, float32(10), r)
	assert.Equal(t, float32(20), g)
	assert.Equal(t, float32(30), b)
}

// A single bright point, blurred, should spread its energy to neighbors
// while the total sum in an otherwise-zero image stays constant.
func TestGaussianSpreadsAndConservesEnergy(t *testing.T) {
	img := buffer.New(32, 32)
	img.Set(16, 16, 100, 0, 0)
	sumBefore, _, _ := img.Sum()

	Gaussian(img, 3)

	sumAfter, _, _ := img.Sum()
	assert.InEpsilon(t, sumBefore, sumAfter, 0.01)

	center, _, _ := img.At(16, 16)
	neighbor, _, _ := img.At(17, 16)
	assert.Less(t, float64(neighbor), float64(center))
	assert.Greater(t, float64(neighbor), 0.0)
}
