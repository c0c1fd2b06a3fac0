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

package pipeline

import (
	"github.com/mlnoga/filmr/internal/backend"
	"github.com/mlnoga/filmr/internal/backend/cpu"
	"github.com/mlnoga/filmr/internal/blur"
	"github.com/mlnoga/filmr/internal/buffer"
	"github.com/mlnoga/filmr/internal/colorimetry"
)

var halationStage = funcStage{
	name: "halation",
	cpu:  halationCPU,
}

// halationCPU models light reflecting off the film base back into the
// emulsion: threshold, blur, tint, add back.
func halationCPU(req *backend.Request) {
	h := req.Stock.Halation
	if h.Strength <= 0 {
		return
	}
	img := req.Image
	highlights := buffer.NewPooled(img.W, img.H)
	defer buffer.Release(highlights)
	threshold := float32(h.Threshold)

	cpu.Parallel(img.H, func(y int) {
		for x := 0; x < img.W; x++ {
			r, g, b := img.At(x, y)
			luma := float32(colorimetry.Rec709Luma(float64(r), float64(g), float64(b)))
			if luma < threshold {
				continue
			}
			hr := subClamp(r, threshold)
			hg := subClamp(g, threshold)
			hb := subClamp(b, threshold)
			highlights.Set(x, y, hr, hg, hb)
		}
	})

	blur.Gaussian(highlights, float32(h.Sigma)*float32(img.W))

	strength := float32(h.Strength)
	tintR, tintG, tintB := float32(h.Tint[0]), float32(h.Tint[1]), float32(h.Tint[2])

	cpu.Parallel(img.H, func(y int) {
		for x := 0; x < img.W; x++ {
			hr, hg, hb := highlights.At(x, y)
			r, g, b := img.At(x, y)
			img.Set(x, y,
				r+tintR*strength*hr,
				g+tintG*strength*hg,
				b+tintB*strength*hb)
		}
	})
}

func subClamp(v, threshold float32) float32 {
	d := v - threshold
	if d < 0 {
		return 0
	}
	return d
}
