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
	"math"

	"github.com/mlnoga/filmr/internal/backend"
	"github.com/mlnoga/filmr/internal/backend/cpu"
	"github.com/mlnoga/filmr/internal/colorimetry"
	"github.com/mlnoga/filmr/internal/filmstock"
	"github.com/mlnoga/filmr/internal/simconfig"
)

var outputStage = funcStage{
	name: "output",
	cpu:  outputCPU,
}

// densityToTransmission converts one layer's density to [0,1] transmission,
// including the dye self-absorption correction for D_net > 1.5.
func densityToTransmission(d, dMin float64) float64 {
	dNet := math.Max(d-dMin, 0)
	t := math.Pow(10, -dNet)
	if dNet > 1.5 {
		t *= 1 + (dNet-1.5)*0.02
	}
	return t
}

// outputCPU converts per-layer density back to sRGB bytes.
func outputCPU(req *backend.Request) {
	stock := req.Stock
	curves := [3]filmstock.CharacteristicCurve{stock.RCurve, stock.GCurve, stock.BCurve}
	paperGamma := stock.FilmType.PaperGamma()
	negative := req.Config.OutputMode == simconfig.Negative
	saturation := req.Config.Saturation

	img := req.Image
	cpu.Parallel(img.H, func(y int) {
		for x := 0; x < img.W; x++ {
			dr, dg, db := img.At(x, y)
			d := [3]float64{float64(dr), float64(dg), float64(db)}

			var out [3]float64
			for i := 0; i < 3; i++ {
				t := densityToTransmission(d[i], curves[i].DMin)
				if negative {
					out[i] = clamp01(t)
					continue
				}
				tMax := 1.0
				tMin := math.Pow(10, -(curves[i].DMax - curves[i].DMin))
				v := clamp01((tMax - t) / (tMax - tMin))
				out[i] = math.Pow(v, paperGamma)
			}

			l := colorimetry.Rec709Luma(out[0], out[1], out[2])
			out[0] = colorimetry.SaturationBlend(out[0], l, saturation)
			out[1] = colorimetry.SaturationBlend(out[1], l, saturation)
			out[2] = colorimetry.SaturationBlend(out[2], l, saturation)

			sr := LinearToSRGB(clamp01(out[0])) * 255
			sg := LinearToSRGB(clamp01(out[1])) * 255
			sb := LinearToSRGB(clamp01(out[2])) * 255

			img.Set(x, y, float32(clampByte(sr)), float32(clampByte(sg)), float32(clampByte(sb)))
		}
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampByte(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
