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

// Package blur implements a separable Gaussian blur as three iterations of
// horizontal+vertical box blur, with a sliding-window accumulator so each
// pass costs O(W*H) independent of radius.
package blur

import (
	"math"

	"github.com/mlnoga/filmr/internal/backend/cpu"
	"github.com/mlnoga/filmr/internal/buffer"
)

// RadiusForSigma converts a Gaussian sigma into the box-blur radius used by
// three successive passes, via the standard identity w=sqrt(12*sigma^2/3+1),
// r=floor((w-1)/2), clamped to a minimum of 1.
func RadiusForSigma(sigma float32) int {
	const n = 3.0
	w := float32(math.Sqrt(float64(12*sigma*sigma/n + 1)))
	r := int((w - 1) / 2)
	if r < 1 {
		r = 1
	}
	return r
}

// Gaussian blurs img in place with the given sigma (in pixels). A sigma of
// zero or less is a no-op. Three iterations of horizontal-then-vertical box
// blur approximate the true Gaussian closely enough for the tolerances this
// engine targets.
func Gaussian(img *buffer.Image, sigma float32) {
	if sigma <= 0 {
		return
	}
	r := RadiusForSigma(sigma)
	back := buffer.NewPooled(img.W, img.H)
	defer buffer.Release(back)
	for i := 0; i < 3; i++ {
		horizontalPass(img, back, r)
		verticalPass(back, img, r)
	}
}

// horizontalPass blurs src into dst along rows, parallelized across rows.
func horizontalPass(src, dst *buffer.Image, r int) {
	w := src.W
	weight := 1.0 / float32(2*r+1)

	cpu.Parallel(src.H, func(y int) {
		srcRow := src.Row(y)
		dstRow := dst.Row(y)

		var sumR, sumG, sumB float32
		// initial window [-r, r] centered at column 0, left side clamped
		p0r, p0g, p0b := srcRow[0], srcRow[1], srcRow[2]
		sumR += p0r * float32(r)
		sumG += p0g * float32(r)
		sumB += p0b * float32(r)
		for x := 0; x <= r; x++ {
			xi := clampInt(x, w)
			sumR += srcRow[xi*3]
			sumG += srcRow[xi*3+1]
			sumB += srcRow[xi*3+2]
		}

		for x := 0; x < w; x++ {
			dstRow[x*3] = sumR * weight
			dstRow[x*3+1] = sumG * weight
			dstRow[x*3+2] = sumB * weight

			outX := clampInt(x-r, w)
			inX := clampInt(x+r+1, w)
			sumR += srcRow[inX*3] - srcRow[outX*3]
			sumG += srcRow[inX*3+1] - srcRow[outX*3+1]
			sumB += srcRow[inX*3+2] - srcRow[outX*3+2]
		}
	})
}

// verticalPass blurs src into dst along columns, parallelized across columns.
func verticalPass(src, dst *buffer.Image, r int) {
	h := src.H

	cpu.Parallel(src.W, func(x int) {
		var sumR, sumG, sumB float32
		p0r, p0g, p0b := src.At(x, 0)
		sumR += p0r * float32(r)
		sumG += p0g * float32(r)
		sumB += p0b * float32(r)
		for y := 0; y <= r; y++ {
			yi := clampInt(y, h)
			pr, pg, pb := src.At(x, yi)
			sumR += pr
			sumG += pg
			sumB += pb
		}

		weight := 1.0 / float32(2*r+1)
		for y := 0; y < h; y++ {
			dst.Set(x, y, sumR*weight, sumG*weight, sumB*weight)

			outY := clampInt(y-r, h)
			inY := clampInt(y+r+1, h)
			por, pog, pob := src.At(x, outY)
			pir, pig, pib := src.At(x, inY)
			sumR += pir - por
			sumG += pig - pog
			sumB += pib - pob
		}
	})
}

func clampInt(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v > limit-1 {
		return limit - 1
	}
	return v
}

