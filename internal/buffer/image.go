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

// Package buffer holds the mutable floating point image buffer that the
// pipeline stages read and rewrite in place.
package buffer

import (
	"fmt"
	"image"
	"image/color"
)

// Image is a dense (W,H,3) row-major float32 buffer. Channel order is R,G,B.
// Semantics depend on pipeline position: sRGB, linear light, per-layer
// exposure, or density. A single Image is owned by the pipeline driver for
// the duration of one Process call; stages borrow it mutably in turn.
type Image struct {
	W, H int
	Pix  []float32 // len == W*H*3
}

// New allocates a zeroed image of the given dimensions.
func New(w, h int) *Image {
	return &Image{W: w, H: h, Pix: make([]float32, w*h*3)}
}

// Clone returns a deep copy.
func (img *Image) Clone() *Image {
	out := &Image{W: img.W, H: img.H, Pix: make([]float32, len(img.Pix))}
	copy(out.Pix, img.Pix)
	return out
}

// At returns the pixel at (x,y) as (r,g,b).
func (img *Image) At(x, y int) (r, g, b float32) {
	i := (y*img.W + x) * 3
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
}

// Set writes the pixel at (x,y).
func (img *Image) Set(x, y int, r, g, b float32) {
	i := (y*img.W + x) * 3
	img.Pix[i], img.Pix[i+1], img.Pix[i+2] = r, g, b
}

// Row returns the raw R,G,B-interleaved slice for row y, for callers that
// want to iterate without repeated bounds math.
func (img *Image) Row(y int) []float32 {
	start := y * img.W * 3
	return img.Pix[start : start+img.W*3]
}

// FromNRGBA builds a linear-nothing, byte-valued Image directly from an
// image.Image's sRGB bytes (0..255 range stored as float32, not yet
// linearized). This is the boundary between image decoding (out of core
// scope) and the pipeline's first stage.
func FromNRGBA(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.Set(x, y, float32(r>>8), float32(g>>8), float32(bl>>8))
		}
	}
	return out
}

// ToNRGBA converts a byte-valued (0..255 stored as float32) Image back to
// an image.NRGBA, clamping out-of-range values.
func (img *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.W, img.H))
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			r, g, b := img.At(x, y)
			out.SetNRGBA(x, y, color.NRGBA{
				R: clampByte(r), G: clampByte(g), B: clampByte(b), A: 255,
			})
		}
	}
	return out
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// Sum returns the per-channel sum of all pixel values, used by blur-energy
// invariant tests.
func (img *Image) Sum() (r, g, b float64) {
	for i := 0; i < len(img.Pix); i += 3 {
		r += float64(img.Pix[i])
		g += float64(img.Pix[i+1])
		b += float64(img.Pix[i+2])
	}
	return
}

func (img *Image) String() string {
	return fmt.Sprintf("Image(%dx%d)", img.W, img.H)
}
