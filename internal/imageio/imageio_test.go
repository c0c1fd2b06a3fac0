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

package imageio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlnoga/filmr/internal/buffer"
)

func TestFormatForPathRecognizesExtensions(t *testing.T) {
	f, err := FormatForPath("/tmp/photo.PNG")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)

	f, err = FormatForPath("photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, JPEG, f)

	_, err = FormatForPath("photo.tga")
	assert.Error(t, err)
}

func TestEncodeDecodePNGRoundTrip(t *testing.T) {
	img := buffer.New(4, 4)
	img.Set(1, 1, 10, 20, 30)
	img.Set(2, 2, 200, 150, 100)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, PNG, 0))

	decoded, err := Decode(&buf, PNG)
	require.NoError(t, err)
	r, g, b := decoded.At(1, 1)
	assert.Equal(t, float32(10), r)
	assert.Equal(t, float32(20), g)
	assert.Equal(t, float32(30), b)
}

func TestEncodeUnsupportedFormatErrors(t *testing.T) {
	img := buffer.New(2, 2)
	var buf bytes.Buffer
	err := Encode(&buf, img, Format("tga"), 0)
	assert.Error(t, err)
}
