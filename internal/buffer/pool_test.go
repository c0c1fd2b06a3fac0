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

package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPooledIsZeroed(t *testing.T) {
	img := NewPooled(4, 4)
	r, g, b := img.Sum()
	assert.Equal(t, 0.0, r)
	assert.Equal(t, 0.0, g)
	assert.Equal(t, 0.0, b)
	Release(img)
}

func TestReleaseThenNewPooledReusesBackingArray(t *testing.T) {
	ClearPools()
	img := NewPooled(8, 8)
	img.Set(0, 0, 1, 2, 3)
	backing := &img.Pix[0]
	Release(img)

	img2 := NewPooled(8, 8)
	assert.Same(t, backing, &img2.Pix[0])
	r, _, _ := img2.At(0, 0)
	assert.Equal(t, float32(0), r, "reused buffer must be rezeroed")
}

func TestClearPoolsDropsReusedBacking(t *testing.T) {
	img := NewPooled(16, 16)
	Release(img)
	ClearPools()
	img2 := NewPooled(16, 16)
	assert.NotNil(t, img2.Pix)
}
