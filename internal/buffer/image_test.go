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
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAtRoundTrip(t *testing.T) {
	img := New(3, 2)
	img.Set(2, 1, 1, 2, 3)
	r, g, b := img.At(2, 1)
	assert.Equal(t, float32(1), r)
	assert.Equal(t, float32(2), g)
	assert.Equal(t, float32(3), b)
}

func TestCloneIsIndependent(t *testing.T) {
	img := New(2, 2)
	img.Set(0, 0, 5, 5, 5)
	clone := img.Clone()
	clone.Set(0, 0, 9, 9, 9)
	r, _, _ := img.At(0, 0)
	assert.Equal(t, float32(5), r)
}

func TestRowLength(t *testing.T) {
	img := New(4, 3)
	assert.Len(t, img.Row(1), 12)
}

func TestFromNRGBAToNRGBARoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 150, B: 100, A: 255})

	img := FromNRGBA(src)
	out := img.ToNRGBA()

	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, out.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 200, G: 150, B: 100, A: 255}, out.NRGBAAt(1, 1))
}

func TestSumAccumulatesAllChannels(t *testing.T) {
	img := New(2, 1)
	img.Set(0, 0, 1, 2, 3)
	img.Set(1, 0, 4, 5, 6)
	r, g, b := img.Sum()
	assert.Equal(t, float64(5), r)
	assert.Equal(t, float64(7), g)
	assert.Equal(t, float64(9), b)
}

func TestClampByteBounds(t *testing.T) {
	assert.Equal(t, uint8(0), clampByte(-10))
	assert.Equal(t, uint8(255), clampByte(300))
	assert.Equal(t, uint8(128), clampByte(127.6))
}
